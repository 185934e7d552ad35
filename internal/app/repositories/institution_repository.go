package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
	"github.com/pandu-magang/pandu-backend/internal/pkg/dberrors"
)

const institutionColumns = `id, name, type, COALESCE(address, ''), COALESCE(contact, ''), created_at, updated_at`

// InstitutionRepository handles database operations for the source
// institution directory (universities and schools)
type InstitutionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstitutionRepository creates a new institution repository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanInstitution(row pgx.Row) (*models.Institution, error) {
	var inst models.Institution
	err := row.Scan(
		&inst.ID,
		&inst.Name,
		&inst.Type,
		&inst.Address,
		&inst.Contact,
		&inst.CreatedAt,
		&inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// Create inserts a directory entry
func (r *InstitutionRepository) Create(ctx context.Context, inst *models.Institution) error {
	query := `
		INSERT INTO institutions (name, type, address, contact)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		inst.Name, inst.Type, inst.Address, inst.Contact,
	).Scan(&inst.ID, &inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "institutions_name_key") {
			return apperrors.ErrInstitutionAlreadyExists
		}
		return fmt.Errorf("error creating institution: %w", err)
	}
	return nil
}

// GetByID retrieves a directory entry by ID
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	query := fmt.Sprintf(`SELECT %s FROM institutions WHERE id = $1`, institutionColumns)
	inst, err := scanInstitution(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("error retrieving institution: %w", err)
	}
	return inst, nil
}

// List retrieves directory entries, optionally filtered by type and a
// case-insensitive name search
func (r *InstitutionRepository) List(ctx context.Context, instType, search string) ([]*models.Institution, error) {
	builder := r.sb.Select("id", "name", "type",
		"COALESCE(address, '')", "COALESCE(contact, '')", "created_at", "updated_at").
		From("institutions").
		OrderBy("name")

	if instType != "" {
		builder = builder.Where(squirrel.Eq{"type": instType})
	}
	if search != "" {
		builder = builder.Where(squirrel.ILike{"name": "%" + search + "%"})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list institutions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, err
		}
		institutions = append(institutions, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return institutions, nil
}

// Update updates a directory entry
func (r *InstitutionRepository) Update(ctx context.Context, inst *models.Institution) error {
	query := `
		UPDATE institutions
		SET name = $1, type = $2, address = $3, contact = $4, updated_at = NOW()
		WHERE id = $5
	`
	cmdTag, err := r.db.Exec(ctx, query,
		inst.Name, inst.Type, inst.Address, inst.Contact, inst.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "institutions_name_key") {
			return apperrors.ErrInstitutionAlreadyExists
		}
		return fmt.Errorf("error updating institution: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}
	return nil
}

// Delete removes a directory entry. Interns keep the institution name as
// free text, so deletion never cascades into intern records.
func (r *InstitutionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting institution: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}
	return nil
}
