package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
	"github.com/pandu-magang/pandu-backend/internal/pkg/dberrors"
)

// CertificateRepository handles database operations for completion documents
type CertificateRepository struct {
	db *pgxpool.Pool
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{
		db: db,
	}
}

// Create issues a completion document record. The intern must be in selesai
// status; the check and the insert share a transaction so a concurrent status
// change cannot slip a certificate onto an unfinished internship.
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status lifecycle.Status
	err = tx.QueryRow(ctx,
		`SELECT status FROM interns WHERE id = $1 FOR SHARE`, cert.InternID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrInternNotFound
		}
		return fmt.Errorf("error checking intern status: %w", err)
	}
	if status != lifecycle.StatusSelesai {
		return apperrors.ErrInternNotCompleted
	}

	query := `
		INSERT INTO certificates (intern_id, serial, kind, issued_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, issued_at
	`
	err = tx.QueryRow(ctx, query,
		cert.InternID, cert.Serial, cert.Kind, cert.IssuedBy,
	).Scan(&cert.ID, &cert.IssuedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "certificates_serial_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating certificate: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByInternID retrieves all documents issued to an intern, newest first
func (r *CertificateRepository) GetByInternID(ctx context.Context, internID int64) ([]*models.Certificate, error) {
	query := `
		SELECT id, intern_id, serial, kind, issued_by, issued_at
		FROM certificates
		WHERE intern_id = $1
		ORDER BY issued_at DESC
	`
	rows, err := r.db.Query(ctx, query, internID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certificates []*models.Certificate
	for rows.Next() {
		var cert models.Certificate
		if err := rows.Scan(
			&cert.ID,
			&cert.InternID,
			&cert.Serial,
			&cert.Kind,
			&cert.IssuedBy,
			&cert.IssuedAt,
		); err != nil {
			return nil, err
		}
		certificates = append(certificates, &cert)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return certificates, nil
}

// GetBySerial retrieves a document by its serial number
func (r *CertificateRepository) GetBySerial(ctx context.Context, serial string) (*models.Certificate, error) {
	query := `
		SELECT id, intern_id, serial, kind, issued_by, issued_at
		FROM certificates
		WHERE serial = $1
	`
	var cert models.Certificate
	err := r.db.QueryRow(ctx, query, serial).Scan(
		&cert.ID,
		&cert.InternID,
		&cert.Serial,
		&cert.Kind,
		&cert.IssuedBy,
		&cert.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}
	return &cert, nil
}

// CountIssuedInYear counts documents issued in a calendar year. Used to build
// sequential serial numbers.
func (r *CertificateRepository) CountIssuedInYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM certificates WHERE EXTRACT(YEAR FROM issued_at) = $1`,
		year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting certificates: %w", err)
	}
	return count, nil
}
