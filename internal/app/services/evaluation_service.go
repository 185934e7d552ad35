package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
)

// EvaluationStore persists evaluations
type EvaluationStore interface {
	CreateWithCompletion(ctx context.Context, eval *models.Evaluation) error
	GetByInternID(ctx context.Context, internID int64) ([]*models.Evaluation, error)
}

// CertificateStore persists completion documents
type CertificateStore interface {
	Create(ctx context.Context, cert *models.Certificate) error
	GetByInternID(ctx context.Context, internID int64) ([]*models.Certificate, error)
	GetBySerial(ctx context.Context, serial string) (*models.Certificate, error)
	CountIssuedInYear(ctx context.Context, year int) (int64, error)
}

// EvaluationService handles evaluations and completion documents
type EvaluationService struct {
	evaluationRepo  EvaluationStore
	certificateRepo CertificateStore
	logger          zerolog.Logger
	now             func() time.Time
}

// NewEvaluationService creates a new EvaluationService
func NewEvaluationService(
	evaluationRepo EvaluationStore,
	certificateRepo CertificateStore,
	logger zerolog.Logger,
) *EvaluationService {
	return &EvaluationService{
		evaluationRepo:  evaluationRepo,
		certificateRepo: certificateRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateEvaluation records an assessment and completes the internship. The
// status write rides in the repository transaction, so a recorded evaluation
// always leaves the intern in selesai even when the end date is still ahead.
func (s *EvaluationService) CreateEvaluation(ctx context.Context, internID, evaluatorID int64, req *dto.CreateEvaluationRequest) (*models.Evaluation, error) {
	eval := &models.Evaluation{
		InternID:       internID,
		Discipline:     req.Discipline,
		Responsibility: req.Responsibility,
		Teamwork:       req.Teamwork,
		Initiative:     req.Initiative,
		Notes:          req.Notes,
		EvaluatorID:    evaluatorID,
	}
	if err := s.evaluationRepo.CreateWithCompletion(ctx, eval); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("internID", internID).Int64("evaluationID", eval.ID).Msg("Evaluation recorded, internship completed")
	return eval, nil
}

// ListEvaluations retrieves an intern's evaluations
func (s *EvaluationService) ListEvaluations(ctx context.Context, internID int64) ([]*models.Evaluation, error) {
	return s.evaluationRepo.GetByInternID(ctx, internID)
}

// serialAttempts bounds the retries when two concurrent issuances compute the
// same serial number and race on the unique constraint.
const serialAttempts = 3

// IssueCertificate issues a numbered completion document to a selesai intern.
// The serial is derived from a count, so a concurrent issuance can claim it
// first; losers recount and retry instead of surfacing the collision.
func (s *EvaluationService) IssueCertificate(ctx context.Context, internID, issuedBy int64, req *dto.CreateCertificateRequest) (*models.Certificate, error) {
	kind := models.CertificateKind(req.Kind)

	var lastErr error
	for attempt := 0; attempt < serialAttempts; attempt++ {
		serial, err := s.nextSerial(ctx, kind)
		if err != nil {
			return nil, err
		}

		cert := &models.Certificate{
			InternID: internID,
			Serial:   serial,
			Kind:     kind,
			IssuedBy: issuedBy,
		}
		err = s.certificateRepo.Create(ctx, cert)
		if err == nil {
			s.logger.Info().Int64("internID", internID).Str("serial", serial).Msg("Completion document issued")
			return cert, nil
		}
		if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil, err
		}
		lastErr = err
		s.logger.Warn().Str("serial", serial).Int("attempt", attempt+1).Msg("Serial number already claimed, retrying")
	}
	return nil, lastErr
}

// ListCertificates retrieves an intern's issued documents
func (s *EvaluationService) ListCertificates(ctx context.Context, internID int64) ([]*models.Certificate, error) {
	return s.certificateRepo.GetByInternID(ctx, internID)
}

// GetCertificateBySerial looks a document up for verification
func (s *EvaluationService) GetCertificateBySerial(ctx context.Context, serial string) (*models.Certificate, error) {
	return s.certificateRepo.GetBySerial(ctx, serial)
}

// nextSerial builds the next sequential serial number in the archival format
// used on the printed documents, e.g. 012/SM-PANDU/IX/2026.
func (s *EvaluationService) nextSerial(ctx context.Context, kind models.CertificateKind) (string, error) {
	now := s.now()
	count, err := s.certificateRepo.CountIssuedInYear(ctx, now.Year())
	if err != nil {
		return "", err
	}

	prefix := "SM-PANDU"
	if kind == models.CertificateKindReceipt {
		prefix = "TT-PANDU"
	}
	return fmt.Sprintf("%03d/%s/%s/%d", count+1, prefix, romanMonth(now.Month()), now.Year()), nil
}

var romanMonths = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

func romanMonth(m time.Month) string {
	return romanMonths[int(m)-1]
}
