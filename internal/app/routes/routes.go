package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pandu-magang/pandu-backend/internal/app/controllers"
	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/middleware"
	"github.com/pandu-magang/pandu-backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	internController *controllers.InternController,
	departmentController *controllers.DepartmentController,
	institutionController *controllers.InstitutionController,
	evaluationController *controllers.EvaluationController,
	notificationController *controllers.NotificationController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Certificate verification is public so institutions can check serials.
	v1.GET("/certificates/:serial", evaluationController.VerifyCertificate)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// --- Authenticated routes ---
	adminRoles := []string{string(models.RoleAdmin), string(models.RoleSuperadmin)}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	authenticated.Use(authMiddleware.RoleRequired(adminRoles...))
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.GetProfile)
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		interns := authenticated.Group("/interns")
		{
			interns.POST("", internController.CreateIntern)
			interns.GET("", internController.ListInterns)
			// Static segments before the :id wildcard
			interns.GET("/availability", internController.GetAvailability)
			interns.GET("/stats", internController.GetStats)
			interns.POST("/refresh-status", internController.RefreshStatuses)
			interns.GET("/:id", internController.GetInternByID)
			interns.PUT("/:id", internController.UpdateIntern)
			interns.DELETE("/:id", internController.DeleteIntern)
			interns.PATCH("/:id/missing", internController.MarkMissing)

			interns.POST("/:id/evaluations", evaluationController.CreateEvaluation)
			interns.GET("/:id/evaluations", evaluationController.ListEvaluations)
			interns.POST("/:id/certificates", evaluationController.IssueCertificate)
			interns.GET("/:id/certificates", evaluationController.ListCertificates)
		}

		departments := authenticated.Group("/departments")
		{
			departments.GET("", departmentController.GetAllDepartments)
			departments.GET("/:id", departmentController.GetDepartmentByID)
			departments.POST("", departmentController.CreateDepartment)
			departments.PUT("/:id", departmentController.UpdateDepartment)
			departments.DELETE("/:id", departmentController.DeleteDepartment)
		}

		institutions := authenticated.Group("/institutions")
		{
			institutions.GET("", institutionController.ListInstitutions)
			institutions.GET("/:id", institutionController.GetInstitutionByID)
			institutions.POST("", institutionController.CreateInstitution)
			institutions.PUT("/:id", institutionController.UpdateInstitution)
			institutions.DELETE("/:id", institutionController.DeleteInstitution)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.GET("/unread-count", notificationController.CountUnread)
			notifications.PATCH("/read-all", notificationController.MarkAllRead)
			notifications.PATCH("/:id/read", notificationController.MarkRead)
		}

		// Realtime notification stream
		authenticated.GET("/ws/notifications", wsHandler.Serve)
	}

	// --- Superadmin-only routes ---
	superadmin := v1.Group("")
	superadmin.Use(authMiddleware.JWTAuth())
	superadmin.Use(authMiddleware.RoleRequired(string(models.RoleSuperadmin)))
	{
		superadmin.POST("/auth/register", authController.RegisterAdmin)
		superadmin.GET("/auth/admins", authController.ListAdmins)
		superadmin.PUT("/auth/admins/:id", authController.UpdateAdmin)
		superadmin.DELETE("/auth/admins/:id", authController.DeleteAdmin)
	}
}
