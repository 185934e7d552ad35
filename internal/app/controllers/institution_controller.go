package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/app/services"
	"github.com/pandu-magang/pandu-backend/internal/middleware"
)

// InstitutionController handles source institution directory endpoints
type InstitutionController struct {
	institutionService *services.InstitutionService
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(institutionService *services.InstitutionService) *InstitutionController {
	return &InstitutionController{
		institutionService: institutionService,
	}
}

// CreateInstitution adds a directory entry
// @Summary Create an institution
// @Tags institutions
// @Security BearerAuth
// @Param request body dto.InstitutionRequest true "Institution information"
// @Success 201 {object} dto.APIResponse{data=models.Institution} "Institution created"
// @Failure 409 {object} dto.ErrorResponse "Institution already exists"
// @Router /institutions [post]
func (c *InstitutionController) CreateInstitution(ctx *gin.Context) {
	var req dto.InstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institution data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	inst, err := c.institutionService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      inst,
		Timestamp: time.Now(),
	})
}

// ListInstitutions lists directory entries
// @Summary List institutions
// @Tags institutions
// @Security BearerAuth
// @Param type query string false "Filter by type (universitas or sekolah)"
// @Param search query string false "Search by name"
// @Success 200 {object} dto.APIResponse{data=[]models.Institution} "Institutions retrieved"
// @Router /institutions [get]
func (c *InstitutionController) ListInstitutions(ctx *gin.Context) {
	institutions, err := c.institutionService.List(ctx, ctx.Query("type"), ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      institutions,
		Timestamp: time.Now(),
	})
}

// GetInstitutionByID retrieves a directory entry
// @Summary Get institution by ID
// @Tags institutions
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution retrieved"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Router /institutions/{id} [get]
func (c *InstitutionController) GetInstitutionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	inst, err := c.institutionService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      inst,
		Timestamp: time.Now(),
	})
}

// UpdateInstitution edits a directory entry
// @Summary Update an institution
// @Tags institutions
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Param request body dto.InstitutionRequest true "Updated institution information"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution updated"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Router /institutions/{id} [put]
func (c *InstitutionController) UpdateInstitution(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.InstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institution data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	inst, err := c.institutionService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      inst,
		Timestamp: time.Now(),
	})
}

// DeleteInstitution removes a directory entry
// @Summary Delete an institution
// @Tags institutions
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 204 "Institution deleted"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Router /institutions/{id} [delete]
func (c *InstitutionController) DeleteInstitution(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.institutionService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
