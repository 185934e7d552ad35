package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
)

// DepartmentRepository handles database operations for hosting departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	exists, err := r.existsByNameOrCode(ctx, department.Name, department.Code, 0)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	query := `
		INSERT INTO departments (name, code, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err = r.db.QueryRow(ctx, query, department.Name, department.Code, department.Description).Scan(&department.ID)
	if err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT id, name, code, COALESCE(description, '')
		FROM departments
		WHERE id = $1
	`
	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.Code,
		&department.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return &department, nil
}

// GetAll retrieves all departments ordered by name
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT id, name, code, COALESCE(description, '')
		FROM departments
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(
			&department.ID,
			&department.Name,
			&department.Code,
			&department.Description,
		); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	exists, err := r.existsByNameOrCode(ctx, department.Name, department.Code, department.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	query := `
		UPDATE departments
		SET name = $1, code = $2, description = $3
		WHERE id = $4
	`
	cmdTag, err := r.db.Exec(ctx, query,
		department.Name, department.Code, department.Description, department.ID)
	if err != nil {
		return fmt.Errorf("error updating department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// Delete deletes a department by ID. A department that still has interns
// assigned to it cannot be removed.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	var hasInterns bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM interns WHERE department_id = $1)`,
		id).Scan(&hasInterns)
	if err != nil {
		return fmt.Errorf("error checking assigned interns: %w", err)
	}
	if hasInterns {
		return apperrors.ErrDepartmentHasInterns
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// existsByNameOrCode checks whether another department already uses the name or code
func (r *DepartmentRepository) existsByNameOrCode(ctx context.Context, name, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE (name = $1 OR code = $2) AND id != $3)`,
		name, code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}
