package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/app/services"
	"github.com/pandu-magang/pandu-backend/internal/middleware"
	"github.com/pandu-magang/pandu-backend/internal/pkg/helpers"
)

// InternController handles intern record endpoints plus the capacity and
// dashboard queries
type InternController struct {
	internService *services.InternService
}

// NewInternController creates a new InternController
func NewInternController(internService *services.InternService) *InternController {
	return &InternController{
		internService: internService,
	}
}

// parseIDParam parses a numeric path parameter, writing a 400 on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requireUserID extracts the authenticated user, writing a 401 on failure
func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// CreateIntern registers a new intern
// @Summary Register an intern
// @Description Registers a new intern; the initial status is computed from the dates
// @Tags interns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInternRequest true "Intern information"
// @Success 201 {object} dto.APIResponse{data=models.Intern} "Intern registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid dates or request data"
// @Router /interns [post]
func (c *InternController) CreateIntern(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateInternRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid intern data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	intern, err := c.internService.Create(ctx, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      intern,
		Timestamp: time.Now(),
	})
}

// ListInterns returns a filtered page of interns
// @Summary List interns
// @Tags interns
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param departmentId query int false "Filter by department"
// @Param participantType query string false "Filter by participant type"
// @Param search query string false "Search name or institution"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Interns retrieved"
// @Router /interns [get]
func (c *InternController) ListInterns(ctx *gin.Context) {
	filter := dto.InternListFilter{
		ParticipantType: ctx.Query("participantType"),
		Search:          ctx.Query("search"),
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status, err := lifecycle.ParseStatus(statusStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Status = status
	}
	if deptStr := ctx.Query("departmentId"); deptStr != "" {
		deptID, err := strconv.ParseInt(deptStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid departmentId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.DepartmentID = deptID
	}

	page, size := helpers.ParsePaginationParams(ctx)
	interns, pagination, err := c.internService.List(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      interns,
			Pagination: pagination,
		},
		Timestamp: time.Now(),
	})
}

// GetInternByID retrieves one intern with its relations
// @Summary Get intern by ID
// @Tags interns
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Success 200 {object} dto.APIResponse{data=models.Intern} "Intern retrieved"
// @Failure 404 {object} dto.ErrorResponse "Intern not found"
// @Router /interns/{id} [get]
func (c *InternController) GetInternByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	intern, err := c.internService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      intern,
		Timestamp: time.Now(),
	})
}

// UpdateIntern edits an intern record
// @Summary Update an intern
// @Tags interns
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Param request body dto.UpdateInternRequest true "Updated intern information"
// @Success 200 {object} dto.APIResponse{data=models.Intern} "Intern updated"
// @Failure 404 {object} dto.ErrorResponse "Intern not found"
// @Router /interns/{id} [put]
func (c *InternController) UpdateIntern(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInternRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid intern data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	intern, err := c.internService.Update(ctx, id, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      intern,
		Timestamp: time.Now(),
	})
}

// DeleteIntern removes an intern record
// @Summary Delete an intern
// @Tags interns
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Success 204 "Intern deleted"
// @Failure 404 {object} dto.ErrorResponse "Intern not found"
// @Router /interns/{id} [delete]
func (c *InternController) DeleteIntern(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.internService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// MarkMissing flags an intern as missing
// @Summary Mark an intern missing
// @Description Flags the intern as missing; bulk refreshes skip the record until it is edited again
// @Tags interns
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Success 200 {object} dto.APIResponse{data=models.Intern} "Intern marked missing"
// @Failure 404 {object} dto.ErrorResponse "Intern not found"
// @Router /interns/{id}/missing [patch]
func (c *InternController) MarkMissing(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	intern, err := c.internService.MarkMissing(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      intern,
		Timestamp: time.Now(),
	})
}

// RefreshStatuses recomputes every refreshable intern's status
// @Summary Refresh intern statuses
// @Tags interns
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Statuses refreshed"
// @Router /interns/refresh-status [post]
func (c *InternController) RefreshStatuses(ctx *gin.Context) {
	updated, err := c.internService.RefreshStatuses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"updated": updated},
		Timestamp: time.Now(),
	})
}

// GetAvailability answers how many slots are free on a date
// @Summary Slot availability
// @Description Computes the capacity snapshot for the given date. The date parameter is mandatory.
// @Tags interns
// @Security BearerAuth
// @Param date query string true "Query date, YYYY-MM-DD"
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityResponse} "Availability computed"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed date"
// @Router /interns/availability [get]
func (c *InternController) GetAvailability(ctx *gin.Context) {
	availability, err := c.internService.Availability(ctx, ctx.Query("date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      availability,
		Timestamp: time.Now(),
	})
}

// GetStats builds the dashboard aggregate
// @Summary Dashboard statistics
// @Tags interns
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Statistics computed"
// @Router /interns/stats [get]
func (c *InternController) GetStats(ctx *gin.Context) {
	stats, err := c.internService.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}
