package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
	"github.com/pandu-magang/pandu-backend/internal/pkg/dberrors"
	"github.com/pandu-magang/pandu-backend/internal/pkg/logger"
)

// InternRepository handles database operations for intern placement records
type InternRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternRepository creates a new intern repository
func NewInternRepository(db *pgxpool.Pool) *InternRepository {
	return &InternRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const internColumns = `i.id, i.full_name, i.participant_type, i.institution_name, i.institution_type,
	i.department_id, i.mentor_id, i.start_date, i.end_date, i.status,
	i.created_by, i.updated_by, i.created_at, i.updated_at`

func scanIntern(row pgx.Row) (*models.Intern, error) {
	var intern models.Intern
	err := row.Scan(
		&intern.ID,
		&intern.FullName,
		&intern.ParticipantType,
		&intern.InstitutionName,
		&intern.InstitutionType,
		&intern.DepartmentID,
		&intern.MentorID,
		&intern.StartDate,
		&intern.EndDate,
		&intern.Status,
		&intern.CreatedBy,
		&intern.UpdatedBy,
		&intern.CreatedAt,
		&intern.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &intern, nil
}

// Create inserts an intern together with its detail row in one transaction.
func (r *InternRepository) Create(ctx context.Context, intern *models.Intern) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO interns (full_name, participant_type, institution_name, institution_type,
				department_id, mentor_id, start_date, end_date, status, created_by, updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			intern.FullName, intern.ParticipantType, intern.InstitutionName, intern.InstitutionType,
			intern.DepartmentID, intern.MentorID, intern.StartDate, intern.EndDate, intern.Status,
			intern.CreatedBy,
		).Scan(&intern.ID, &intern.CreatedAt, &intern.UpdatedAt)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err, "interns_department_id_fkey") {
				return apperrors.ErrDepartmentNotFound
			}
			if dberrors.IsForeignKeyViolation(err, "interns_mentor_id_fkey") {
				return apperrors.NewCustomError(apperrors.ErrInternNotFound, "Mentor tidak ditemukan")
			}
			return fmt.Errorf("error inserting intern: %w", err)
		}
		return r.replaceDetails(ctx, tx, intern)
	})
}

// Update rewrites an intern row and replaces its detail row in one
// transaction.
func (r *InternRepository) Update(ctx context.Context, intern *models.Intern) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE interns
			SET full_name = $1, participant_type = $2, institution_name = $3, institution_type = $4,
				department_id = $5, mentor_id = $6, start_date = $7, end_date = $8, status = $9,
				updated_by = $10, updated_at = NOW()
			WHERE id = $11
		`
		cmdTag, err := tx.Exec(ctx, query,
			intern.FullName, intern.ParticipantType, intern.InstitutionName, intern.InstitutionType,
			intern.DepartmentID, intern.MentorID, intern.StartDate, intern.EndDate, intern.Status,
			intern.UpdatedBy, intern.ID,
		)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err, "interns_mentor_id_fkey") {
				return apperrors.NewCustomError(apperrors.ErrInternNotFound, "Mentor tidak ditemukan")
			}
			return fmt.Errorf("error updating intern: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrInternNotFound
		}
		return r.replaceDetails(ctx, tx, intern)
	})
}

// replaceDetails drops both detail rows and inserts the one matching the
// current participant type.
func (r *InternRepository) replaceDetails(ctx context.Context, tx pgx.Tx, intern *models.Intern) error {
	if _, err := tx.Exec(ctx, `DELETE FROM intern_students WHERE intern_id = $1`, intern.ID); err != nil {
		return fmt.Errorf("error clearing student detail: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM intern_universities WHERE intern_id = $1`, intern.ID); err != nil {
		return fmt.Errorf("error clearing university detail: %w", err)
	}

	switch intern.ParticipantType {
	case models.ParticipantSiswa:
		if intern.Student == nil {
			return nil
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO intern_students (intern_id, nis, school_name, class)
			VALUES ($1, $2, $3, $4)`,
			intern.ID, intern.Student.NIS, intern.Student.SchoolName, intern.Student.Class)
		if err != nil {
			return fmt.Errorf("error inserting student detail: %w", err)
		}
	case models.ParticipantMahasiswa:
		if intern.University == nil {
			return nil
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO intern_universities (intern_id, nim, major, semester)
			VALUES ($1, $2, $3, $4)`,
			intern.ID, intern.University.NIM, intern.University.Major, intern.University.Semester)
		if err != nil {
			return fmt.Errorf("error inserting university detail: %w", err)
		}
	}
	return nil
}

// Delete removes an intern. Detail rows, evaluations, certificates and
// notifications cascade via foreign keys; mentor_id held by other interns
// nulls out through the self-referencing interns_mentor_id_fkey constraint.
func (r *InternRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM interns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting intern: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternNotFound
	}
	return nil
}

// GetByID retrieves an intern with its department and detail row.
func (r *InternRepository) GetByID(ctx context.Context, id int64) (*models.Intern, error) {
	query := `SELECT ` + internColumns + ` FROM interns i WHERE i.id = $1`
	intern, err := scanIntern(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternNotFound
		}
		return nil, fmt.Errorf("error retrieving intern: %w", err)
	}

	if err := r.loadRelations(ctx, intern); err != nil {
		return nil, err
	}
	return intern, nil
}

func (r *InternRepository) loadRelations(ctx context.Context, intern *models.Intern) error {
	var dept models.Department
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code, COALESCE(description, '') FROM departments WHERE id = $1`,
		intern.DepartmentID,
	).Scan(&dept.ID, &dept.Name, &dept.Code, &dept.Description)
	if err == nil {
		intern.Department = &dept
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error loading department: %w", err)
	}

	switch intern.ParticipantType {
	case models.ParticipantSiswa:
		var det models.StudentDetail
		err = r.db.QueryRow(ctx,
			`SELECT intern_id, nis, school_name, COALESCE(class, '') FROM intern_students WHERE intern_id = $1`,
			intern.ID,
		).Scan(&det.InternID, &det.NIS, &det.SchoolName, &det.Class)
		if err == nil {
			intern.Student = &det
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("error loading student detail: %w", err)
		}
	case models.ParticipantMahasiswa:
		var det models.UniversityDetail
		err = r.db.QueryRow(ctx,
			`SELECT intern_id, nim, major, COALESCE(semester, 0) FROM intern_universities WHERE intern_id = $1`,
			intern.ID,
		).Scan(&det.InternID, &det.NIM, &det.Major, &det.Semester)
		if err == nil {
			intern.University = &det
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("error loading university detail: %w", err)
		}
	}
	return nil
}

// List returns a filtered page of interns plus the unfiltered-by-page total.
func (r *InternRepository) List(ctx context.Context, filter dto.InternListFilter, offset uint64, limit int) ([]*models.Intern, int64, error) {
	base := r.sb.Select(
		"i.id", "i.full_name", "i.participant_type", "i.institution_name", "i.institution_type",
		"i.department_id", "i.mentor_id", "i.start_date", "i.end_date", "i.status",
		"i.created_by", "i.updated_by", "i.created_at", "i.updated_at",
	).From("interns i")

	countQ := r.sb.Select("COUNT(*)").From("interns i")

	conds := squirrel.And{}
	if filter.Status != "" {
		conds = append(conds, squirrel.Eq{"i.status": filter.Status})
	}
	if filter.DepartmentID > 0 {
		conds = append(conds, squirrel.Eq{"i.department_id": filter.DepartmentID})
	}
	if filter.ParticipantType != "" {
		conds = append(conds, squirrel.Eq{"i.participant_type": filter.ParticipantType})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"i.full_name": pattern},
			squirrel.ILike{"i.institution_name": pattern},
		})
	}
	if len(conds) > 0 {
		base = base.Where(conds)
		countQ = countQ.Where(conds)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build intern count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting interns: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("i.start_date DESC", "i.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build intern list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing interns: %w", err)
	}
	defer rows.Close()

	var interns []*models.Intern
	for rows.Next() {
		intern, err := scanIntern(rows)
		if err != nil {
			return nil, 0, err
		}
		interns = append(interns, intern)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return interns, total, nil
}

// SetStatus overwrites the persisted status of a single intern. Used by the
// missing override and by administrative edits; the evaluation path forces
// selesai through EvaluationRepository instead.
func (r *InternRepository) SetStatus(ctx context.Context, id int64, status lifecycle.Status, updatedBy int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE interns SET status = $1, updated_by = $2, updated_at = NOW() WHERE id = $3`,
		status, updatedBy, id)
	if err != nil {
		return fmt.Errorf("error setting intern status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternNotFound
	}
	return nil
}

// RefreshStatuses recomputes the status of every refreshable record as of the
// given date in one set-based statement. The CASE expression is the SQL twin
// of lifecycle.Resolve and the NOT IN guard the twin of
// lifecycle.AutoRefreshable (selesai is terminal, missing a sticky manual
// override); a change to either function must be mirrored here. Running it
// twice with the same asOf changes nothing the second time.
func (r *InternRepository) RefreshStatuses(ctx context.Context, asOf time.Time) (int64, error) {
	var affected int64
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE interns
			SET status = CASE
					WHEN $1::date < start_date THEN 'not_yet'
					WHEN $1::date > end_date THEN 'selesai'
					WHEN $1::date >= end_date - $2::int THEN 'almost'
					ELSE 'aktif'
				END::intern_status,
				updated_at = NOW()
			WHERE status NOT IN ('selesai', 'missing')
			  AND status IS DISTINCT FROM CASE
					WHEN $1::date < start_date THEN 'not_yet'
					WHEN $1::date > end_date THEN 'selesai'
					WHEN $1::date >= end_date - $2::int THEN 'almost'
					ELSE 'aktif'
				END::intern_status`,
			asOf, lifecycle.AlmostWindowDays)
		if err != nil {
			return fmt.Errorf("error refreshing intern statuses: %w", err)
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		logger.Info().Int64("updated", affected).Time("asOf", asOf).Msg("Intern statuses refreshed")
	}
	return affected, nil
}

// CountActiveOn counts aktif interns whose interval covers the query date.
func (r *InternRepository) CountActiveOn(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM interns
		WHERE status = 'aktif' AND start_date <= $1 AND end_date >= $1`,
		date).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting active interns: %w", err)
	}
	return n, nil
}

// CountUpcomingBy counts not_yet interns whose start date has been reached.
// Records past their start date that have not been refreshed yet still count
// against capacity here.
func (r *InternRepository) CountUpcomingBy(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM interns
		WHERE status = 'not_yet' AND start_date <= $1`,
		date).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting upcoming interns: %w", err)
	}
	return n, nil
}

// LeavingWithin lists almost interns ending inside [date, date+lookahead],
// ordered by ascending end date.
func (r *InternRepository) LeavingWithin(ctx context.Context, date time.Time, lookaheadDays int) ([]lifecycle.LeavingIntern, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.full_name, COALESCE(d.name, ''), i.end_date
		FROM interns i
		LEFT JOIN departments d ON d.id = i.department_id
		WHERE i.status = 'almost' AND i.end_date BETWEEN $1 AND $1::date + $2::int
		ORDER BY i.end_date ASC`,
		date, lookaheadDays)
	if err != nil {
		return nil, fmt.Errorf("error listing leaving interns: %w", err)
	}
	defer rows.Close()

	var leaving []lifecycle.LeavingIntern
	for rows.Next() {
		var li lifecycle.LeavingIntern
		if err := rows.Scan(&li.ID, &li.Name, &li.DepartmentName, &li.EndDate); err != nil {
			return nil, err
		}
		leaving = append(leaving, li)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leaving, nil
}

// CountByBucket returns the coarse dashboard counters. aktif and almost fold
// into the active bucket.
func (r *InternRepository) CountByBucket(ctx context.Context) (total, active, completed, missing int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status IN ('aktif', 'almost')),
			COUNT(*) FILTER (WHERE status = 'selesai'),
			COUNT(*) FILTER (WHERE status = 'missing')
		FROM interns`).Scan(&total, &active, &completed, &missing)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("error counting intern buckets: %w", err)
	}
	return total, active, completed, missing, nil
}

// ActiveCountByType breaks the active bucket down by participant type.
func (r *InternRepository) ActiveCountByType(ctx context.Context) ([]dto.CountByLabel, error) {
	return r.countGroups(ctx, `
		SELECT participant_type, COUNT(*)
		FROM interns
		WHERE status IN ('aktif', 'almost')
		GROUP BY participant_type
		ORDER BY participant_type`)
}

// ActiveCountByDepartment breaks the active bucket down by department name.
func (r *InternRepository) ActiveCountByDepartment(ctx context.Context) ([]dto.CountByLabel, error) {
	return r.countGroups(ctx, `
		SELECT COALESCE(d.name, 'Tanpa Bidang'), COUNT(*)
		FROM interns i
		LEFT JOIN departments d ON d.id = i.department_id
		WHERE i.status IN ('aktif', 'almost')
		GROUP BY d.name
		ORDER BY COUNT(*) DESC`)
}

func (r *InternRepository) countGroups(ctx context.Context, query string) ([]dto.CountByLabel, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying intern breakdown: %w", err)
	}
	defer rows.Close()

	var out []dto.CountByLabel
	for rows.Next() {
		var c dto.CountByLabel
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EndingSoon lists all almost interns ordered by ascending end date for the
// "completing soon" dashboard table.
func (r *InternRepository) EndingSoon(ctx context.Context) ([]dto.EndingSoonEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.full_name, COALESCE(d.name, ''), i.end_date
		FROM interns i
		LEFT JOIN departments d ON d.id = i.department_id
		WHERE i.status = 'almost'
		ORDER BY i.end_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing ending-soon interns: %w", err)
	}
	defer rows.Close()

	var out []dto.EndingSoonEntry
	for rows.Next() {
		var e dto.EndingSoonEntry
		if err := rows.Scan(&e.ID, &e.FullName, &e.DepartmentName, &e.EndDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// inTx runs fn in a transaction, raising the lock-wait timeout to tolerate
// contention with concurrent intern edits.
func (r *InternRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SET LOCAL lock_timeout = '10s'`); err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
