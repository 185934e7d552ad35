package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
)

// DepartmentCRUDStore extends the read-only DepartmentStore with writes
type DepartmentCRUDStore interface {
	DepartmentStore
	Create(ctx context.Context, department *models.Department) error
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// DepartmentService handles hosting department operations
type DepartmentService struct {
	departmentRepo DepartmentCRUDStore
	logger         zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo DepartmentCRUDStore, logger zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// Create creates a new department
func (s *DepartmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	department := &models.Department{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("departmentID", department.ID).Str("code", department.Code).Msg("Department created")
	return department, nil
}

// GetByID retrieves a department by ID
func (s *DepartmentService) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// GetAll retrieves all departments
func (s *DepartmentService) GetAll(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// Update updates an existing department
func (s *DepartmentService) Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error) {
	department := &models.Department{
		ID:          id,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete deletes a department. Departments that still host interns are
// refused at the repository level.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}
