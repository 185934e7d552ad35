package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
)

type fakeEvaluationStore struct {
	evaluations []*models.Evaluation
	createErr   error
}

func (f *fakeEvaluationStore) CreateWithCompletion(ctx context.Context, eval *models.Evaluation) error {
	if f.createErr != nil {
		return f.createErr
	}
	eval.ID = int64(len(f.evaluations) + 1)
	eval.CreatedAt = time.Now()
	f.evaluations = append(f.evaluations, eval)
	return nil
}

func (f *fakeEvaluationStore) GetByInternID(ctx context.Context, internID int64) ([]*models.Evaluation, error) {
	var out []*models.Evaluation
	for _, e := range f.evaluations {
		if e.InternID == internID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCertificateStore struct {
	certificates []*models.Certificate
	issuedInYear int64
	createErr    error
	// takenSerials simulates rows another writer committed between the count
	// and the insert; creating one of these trips the unique constraint.
	takenSerials map[string]bool
}

func (f *fakeCertificateStore) Create(ctx context.Context, cert *models.Certificate) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.takenSerials[cert.Serial] {
		// The winner's row is visible to the next count.
		f.issuedInYear++
		return apperrors.ErrResourceAlreadyExists
	}
	cert.ID = int64(len(f.certificates) + 1)
	cert.IssuedAt = time.Now()
	f.certificates = append(f.certificates, cert)
	return nil
}

func (f *fakeCertificateStore) GetByInternID(ctx context.Context, internID int64) ([]*models.Certificate, error) {
	var out []*models.Certificate
	for _, c := range f.certificates {
		if c.InternID == internID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCertificateStore) GetBySerial(ctx context.Context, serial string) (*models.Certificate, error) {
	for _, c := range f.certificates {
		if c.Serial == serial {
			return c, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeCertificateStore) CountIssuedInYear(ctx context.Context, year int) (int64, error) {
	return f.issuedInYear, nil
}

func newTestEvaluationService(evals *fakeEvaluationStore, certs *fakeCertificateStore, asOf string) *EvaluationService {
	svc := NewEvaluationService(evals, certs, zerolog.Nop())
	svc.now = func() time.Time { return testDate(asOf) }
	return svc
}

func TestEvaluationServiceCreate_RecordsScores(t *testing.T) {
	evals := &fakeEvaluationStore{}
	svc := newTestEvaluationService(evals, &fakeCertificateStore{}, "2026-09-01")

	req := &dto.CreateEvaluationRequest{
		Discipline:     90,
		Responsibility: 85,
		Teamwork:       88,
		Initiative:     80,
		Notes:          "Sangat baik",
	}
	eval, err := svc.CreateEvaluation(context.Background(), 3, 7, req)
	if err != nil {
		t.Fatalf("CreateEvaluation returned error: %v", err)
	}
	if eval.ID == 0 {
		t.Error("evaluation ID was not assigned")
	}
	if eval.InternID != 3 || eval.EvaluatorID != 7 {
		t.Errorf("intern/evaluator = %d/%d, want 3/7", eval.InternID, eval.EvaluatorID)
	}
	if eval.Discipline != 90 {
		t.Errorf("discipline = %d, want 90", eval.Discipline)
	}
}

func TestEvaluationServiceCreate_PropagatesError(t *testing.T) {
	evals := &fakeEvaluationStore{createErr: apperrors.ErrInternNotFound}
	svc := newTestEvaluationService(evals, &fakeCertificateStore{}, "2026-09-01")

	_, err := svc.CreateEvaluation(context.Background(), 99, 7, &dto.CreateEvaluationRequest{})
	if !errors.Is(err, apperrors.ErrInternNotFound) {
		t.Errorf("CreateEvaluation = %v, want ErrInternNotFound", err)
	}
}

func TestIssueCertificate_SerialFormat(t *testing.T) {
	certs := &fakeCertificateStore{issuedInYear: 11}
	svc := newTestEvaluationService(&fakeEvaluationStore{}, certs, "2026-09-15")

	cert, err := svc.IssueCertificate(context.Background(), 3, 7, &dto.CreateCertificateRequest{Kind: "certificate"})
	if err != nil {
		t.Fatalf("IssueCertificate returned error: %v", err)
	}
	if cert.Serial != "012/SM-PANDU/IX/2026" {
		t.Errorf("serial = %s, want 012/SM-PANDU/IX/2026", cert.Serial)
	}
	if cert.Kind != models.CertificateKindCertificate {
		t.Errorf("kind = %s, want certificate", cert.Kind)
	}
}

func TestIssueCertificate_ReceiptPrefix(t *testing.T) {
	certs := &fakeCertificateStore{issuedInYear: 0}
	svc := newTestEvaluationService(&fakeEvaluationStore{}, certs, "2026-01-05")

	cert, err := svc.IssueCertificate(context.Background(), 3, 7, &dto.CreateCertificateRequest{Kind: "receipt"})
	if err != nil {
		t.Fatalf("IssueCertificate returned error: %v", err)
	}
	if cert.Serial != "001/TT-PANDU/I/2026" {
		t.Errorf("serial = %s, want 001/TT-PANDU/I/2026", cert.Serial)
	}
}

func TestIssueCertificate_RetriesOnSerialCollision(t *testing.T) {
	certs := &fakeCertificateStore{
		issuedInYear: 11,
		takenSerials: map[string]bool{"012/SM-PANDU/IX/2026": true},
	}
	svc := newTestEvaluationService(&fakeEvaluationStore{}, certs, "2026-09-15")

	cert, err := svc.IssueCertificate(context.Background(), 3, 7, &dto.CreateCertificateRequest{Kind: "certificate"})
	if err != nil {
		t.Fatalf("IssueCertificate returned error: %v", err)
	}
	if cert.Serial != "013/SM-PANDU/IX/2026" {
		t.Errorf("serial = %s, want 013/SM-PANDU/IX/2026 after recount", cert.Serial)
	}
}

func TestIssueCertificate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	certs := &fakeCertificateStore{
		issuedInYear: 11,
		takenSerials: map[string]bool{
			"012/SM-PANDU/IX/2026": true,
			"013/SM-PANDU/IX/2026": true,
			"014/SM-PANDU/IX/2026": true,
		},
	}
	svc := newTestEvaluationService(&fakeEvaluationStore{}, certs, "2026-09-15")

	_, err := svc.IssueCertificate(context.Background(), 3, 7, &dto.CreateCertificateRequest{Kind: "certificate"})
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("IssueCertificate = %v, want ErrResourceAlreadyExists", err)
	}
}

func TestIssueCertificate_RequiresCompletedIntern(t *testing.T) {
	certs := &fakeCertificateStore{createErr: apperrors.ErrInternNotCompleted}
	svc := newTestEvaluationService(&fakeEvaluationStore{}, certs, "2026-09-15")

	_, err := svc.IssueCertificate(context.Background(), 3, 7, &dto.CreateCertificateRequest{Kind: "certificate"})
	if !errors.Is(err, apperrors.ErrInternNotCompleted) {
		t.Errorf("IssueCertificate = %v, want ErrInternNotCompleted", err)
	}
}

func TestGetCertificateBySerial(t *testing.T) {
	certs := &fakeCertificateStore{}
	svc := newTestEvaluationService(&fakeEvaluationStore{}, certs, "2026-09-15")

	issued, err := svc.IssueCertificate(context.Background(), 3, 7, &dto.CreateCertificateRequest{Kind: "certificate"})
	if err != nil {
		t.Fatalf("IssueCertificate returned error: %v", err)
	}

	found, err := svc.GetCertificateBySerial(context.Background(), issued.Serial)
	if err != nil {
		t.Fatalf("GetCertificateBySerial returned error: %v", err)
	}
	if found.InternID != 3 {
		t.Errorf("InternID = %d, want 3", found.InternID)
	}

	if _, err := svc.GetCertificateBySerial(context.Background(), "000/SM-PANDU/I/1999"); err == nil {
		t.Error("unknown serial expected error, got nil")
	}
}
