package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
)

// EvaluationRepository handles database operations for intern evaluations
type EvaluationRepository struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{
		db: db,
	}
}

// CreateWithCompletion inserts an evaluation and forces the intern into
// selesai in the same transaction. The status write is unconditional, an
// evaluation ends the internship even when the end date is still ahead.
func (r *EvaluationRepository) CreateWithCompletion(ctx context.Context, eval *models.Evaluation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM interns WHERE id = $1)`, eval.InternID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking intern existence: %w", err)
	}
	if !exists {
		return apperrors.ErrInternNotFound
	}

	query := `
		INSERT INTO evaluations (intern_id, discipline, responsibility, teamwork, initiative, notes, evaluator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, query,
		eval.InternID, eval.Discipline, eval.Responsibility, eval.Teamwork,
		eval.Initiative, eval.Notes, eval.EvaluatorID,
	).Scan(&eval.ID, &eval.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating evaluation: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE interns SET status = $1, updated_at = NOW() WHERE id = $2`,
		lifecycle.StatusSelesai, eval.InternID)
	if err != nil {
		return fmt.Errorf("error completing intern: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByInternID retrieves all evaluations for an intern, newest first
func (r *EvaluationRepository) GetByInternID(ctx context.Context, internID int64) ([]*models.Evaluation, error) {
	query := `
		SELECT id, intern_id, discipline, responsibility, teamwork, initiative, COALESCE(notes, ''), evaluator_id, created_at
		FROM evaluations
		WHERE intern_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, internID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []*models.Evaluation
	for rows.Next() {
		var eval models.Evaluation
		if err := rows.Scan(
			&eval.ID,
			&eval.InternID,
			&eval.Discipline,
			&eval.Responsibility,
			&eval.Teamwork,
			&eval.Initiative,
			&eval.Notes,
			&eval.EvaluatorID,
			&eval.CreatedAt,
		); err != nil {
			return nil, err
		}
		evaluations = append(evaluations, &eval)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return evaluations, nil
}
