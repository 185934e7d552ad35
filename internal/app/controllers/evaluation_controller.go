package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/app/services"
	"github.com/pandu-magang/pandu-backend/internal/middleware"
)

// EvaluationController handles evaluation and completion document endpoints
type EvaluationController struct {
	evaluationService *services.EvaluationService
}

// NewEvaluationController creates a new EvaluationController
func NewEvaluationController(evaluationService *services.EvaluationService) *EvaluationController {
	return &EvaluationController{
		evaluationService: evaluationService,
	}
}

// CreateEvaluation records an assessment and completes the internship
// @Summary Record an evaluation
// @Description Records a performance assessment; the intern is forced to selesai in the same transaction
// @Tags evaluations
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Param request body dto.CreateEvaluationRequest true "Scores"
// @Success 201 {object} dto.APIResponse{data=models.Evaluation} "Evaluation recorded"
// @Failure 404 {object} dto.ErrorResponse "Intern not found"
// @Router /interns/{id}/evaluations [post]
func (c *EvaluationController) CreateEvaluation(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	internID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateEvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid evaluation data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	eval, err := c.evaluationService.CreateEvaluation(ctx, internID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      eval,
		Timestamp: time.Now(),
	})
}

// ListEvaluations lists an intern's evaluations
// @Summary List evaluations
// @Tags evaluations
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Evaluation} "Evaluations retrieved"
// @Router /interns/{id}/evaluations [get]
func (c *EvaluationController) ListEvaluations(ctx *gin.Context) {
	internID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	evaluations, err := c.evaluationService.ListEvaluations(ctx, internID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      evaluations,
		Timestamp: time.Now(),
	})
}

// IssueCertificate issues a completion document to a selesai intern
// @Summary Issue a completion document
// @Tags certificates
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Param request body dto.CreateCertificateRequest true "Document kind"
// @Success 201 {object} dto.APIResponse{data=models.Certificate} "Document issued"
// @Failure 409 {object} dto.ErrorResponse "Intern has not completed the internship"
// @Router /interns/{id}/certificates [post]
func (c *EvaluationController) IssueCertificate(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	internID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid certificate data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	cert, err := c.evaluationService.IssueCertificate(ctx, internID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      cert,
		Timestamp: time.Now(),
	})
}

// ListCertificates lists an intern's issued documents
// @Summary List completion documents
// @Tags certificates
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Certificate} "Documents retrieved"
// @Router /interns/{id}/certificates [get]
func (c *EvaluationController) ListCertificates(ctx *gin.Context) {
	internID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	certificates, err := c.evaluationService.ListCertificates(ctx, internID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      certificates,
		Timestamp: time.Now(),
	})
}

// VerifyCertificate looks a document up by serial number
// @Summary Verify a completion document
// @Tags certificates
// @Param serial path string true "Document serial"
// @Success 200 {object} dto.APIResponse{data=models.Certificate} "Document found"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /certificates/{serial} [get]
func (c *EvaluationController) VerifyCertificate(ctx *gin.Context) {
	serial := ctx.Param("serial")
	cert, err := c.evaluationService.GetCertificateBySerial(ctx, serial)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      cert,
		Timestamp: time.Now(),
	})
}
