package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
	"github.com/pandu-magang/pandu-backend/internal/pkg/helpers"
	"github.com/pandu-magang/pandu-backend/internal/pkg/validation"
)

// InternStore is the slice of the intern repository the service needs
type InternStore interface {
	Create(ctx context.Context, intern *models.Intern) error
	Update(ctx context.Context, intern *models.Intern) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Intern, error)
	List(ctx context.Context, filter dto.InternListFilter, offset uint64, limit int) ([]*models.Intern, int64, error)
	SetStatus(ctx context.Context, id int64, status lifecycle.Status, updatedBy int64) error
	RefreshStatuses(ctx context.Context, asOf time.Time) (int64, error)
	CountActiveOn(ctx context.Context, date time.Time) (int, error)
	CountUpcomingBy(ctx context.Context, date time.Time) (int, error)
	LeavingWithin(ctx context.Context, date time.Time, lookaheadDays int) ([]lifecycle.LeavingIntern, error)
	CountByBucket(ctx context.Context) (total, active, completed, missing int, err error)
	ActiveCountByType(ctx context.Context) ([]dto.CountByLabel, error)
	ActiveCountByDepartment(ctx context.Context) ([]dto.CountByLabel, error)
	EndingSoon(ctx context.Context) ([]dto.EndingSoonEntry, error)
}

// DepartmentStore is the slice of the department repository other services need
type DepartmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// InternService handles intern placement records and the capacity engine
type InternService struct {
	internRepo     InternStore
	departmentRepo DepartmentStore
	slotLimit      int
	logger         zerolog.Logger
	now            func() time.Time
}

// NewInternService creates a new InternService. slotLimit <= 0 falls back to
// the default office-wide limit.
func NewInternService(
	internRepo InternStore,
	departmentRepo DepartmentStore,
	slotLimit int,
	logger zerolog.Logger,
) *InternService {
	if slotLimit <= 0 {
		slotLimit = lifecycle.DefaultSlotLimit
	}
	return &InternService{
		internRepo:     internRepo,
		departmentRepo: departmentRepo,
		slotLimit:      slotLimit,
		logger:         logger,
		now:            time.Now,
	}
}

// Create registers a new intern. The initial status is computed from the
// dates, never taken from the client.
func (s *InternService) Create(ctx context.Context, req *dto.CreateInternRequest, createdBy int64) (*models.Intern, error) {
	start, end, err := s.parseDateRange(req.TanggalMasuk, req.TanggalKeluar)
	if err != nil {
		return nil, err
	}
	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	intern := &models.Intern{
		FullName:        req.FullName,
		ParticipantType: models.ParticipantType(req.ParticipantType),
		InstitutionName: req.InstitutionName,
		InstitutionType: models.InstitutionType(req.InstitutionType),
		DepartmentID:    req.DepartmentID,
		MentorID:        req.MentorID,
		StartDate:       start,
		EndDate:         end,
		Status:          lifecycle.Resolve(start, end, s.now()),
		CreatedBy:       createdBy,
		UpdatedBy:       createdBy,
	}
	applyDetailRequests(intern, req.Student, req.University)
	if err := validateDetails(intern); err != nil {
		return nil, err
	}

	if err := s.internRepo.Create(ctx, intern); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("internID", intern.ID).Str("status", string(intern.Status)).Msg("Intern registered")
	return s.internRepo.GetByID(ctx, intern.ID)
}

// Update edits an intern. An explicit status in the request is applied
// verbatim; otherwise the status is recomputed from the new dates.
func (s *InternService) Update(ctx context.Context, id int64, req *dto.UpdateInternRequest, updatedBy int64) (*models.Intern, error) {
	start, end, err := s.parseDateRange(req.TanggalMasuk, req.TanggalKeluar)
	if err != nil {
		return nil, err
	}
	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	intern, err := s.internRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	intern.FullName = req.FullName
	intern.ParticipantType = models.ParticipantType(req.ParticipantType)
	intern.InstitutionName = req.InstitutionName
	intern.InstitutionType = models.InstitutionType(req.InstitutionType)
	intern.DepartmentID = req.DepartmentID
	intern.MentorID = req.MentorID
	intern.StartDate = start
	intern.EndDate = end
	intern.UpdatedBy = updatedBy
	if req.Status != "" {
		status, err := lifecycle.ParseStatus(req.Status)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Status tidak valid")
		}
		intern.Status = status
	} else {
		intern.Status = lifecycle.Resolve(start, end, s.now())
	}
	applyDetailRequests(intern, req.Student, req.University)
	if err := validateDetails(intern); err != nil {
		return nil, err
	}

	if err := s.internRepo.Update(ctx, intern); err != nil {
		return nil, err
	}
	return s.internRepo.GetByID(ctx, id)
}

// Delete removes an intern record and its dependents
func (s *InternService) Delete(ctx context.Context, id int64) error {
	return s.internRepo.Delete(ctx, id)
}

// GetByID retrieves one intern with its relations
func (s *InternService) GetByID(ctx context.Context, id int64) (*models.Intern, error) {
	return s.internRepo.GetByID(ctx, id)
}

// List returns a filtered page of interns
func (s *InternService) List(ctx context.Context, filter dto.InternListFilter, page, size int) ([]*models.Intern, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	interns, total, err := s.internRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return interns, helpers.NewPaginationInfo(total, page, size), nil
}

// MarkMissing flags an intern as missing. The flag is sticky: bulk refreshes
// skip missing records, only an explicit edit brings one back.
func (s *InternService) MarkMissing(ctx context.Context, id, updatedBy int64) (*models.Intern, error) {
	if err := s.internRepo.SetStatus(ctx, id, lifecycle.StatusMissing, updatedBy); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("internID", id).Msg("Intern marked missing")
	return s.internRepo.GetByID(ctx, id)
}

// RefreshStatuses recomputes every refreshable intern's status as of today
func (s *InternService) RefreshStatuses(ctx context.Context) (int64, error) {
	return s.internRepo.RefreshStatuses(ctx, s.now())
}

// Availability answers "how many slots are free on this date". Statuses are
// refreshed first so the counts reflect the calendar, then the snapshot is
// computed from the persisted statuses.
func (s *InternService) Availability(ctx context.Context, dateStr string) (*dto.AvailabilityResponse, error) {
	if dateStr == "" {
		return nil, apperrors.NewBadRequestError("Parameter date wajib diisi")
	}
	date, err := helpers.ParseDate(dateStr)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Tanggal tidak valid, format harus YYYY-MM-DD")
	}

	if _, err := s.internRepo.RefreshStatuses(ctx, s.now()); err != nil {
		return nil, err
	}

	active, err := s.internRepo.CountActiveOn(ctx, date)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.internRepo.CountUpcomingBy(ctx, date)
	if err != nil {
		return nil, err
	}
	leaving, err := s.internRepo.LeavingWithin(ctx, date, lifecycle.AlmostWindowDays)
	if err != nil {
		return nil, err
	}

	snapshot := lifecycle.Evaluate(active, upcoming, leaving, s.slotLimit)
	return &dto.AvailabilityResponse{
		Date:     helpers.FormatDate(date),
		Snapshot: snapshot,
	}, nil
}

// Stats builds the dashboard aggregate, refreshing statuses first
func (s *InternService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	if _, err := s.internRepo.RefreshStatuses(ctx, s.now()); err != nil {
		return nil, err
	}

	total, active, completed, missing, err := s.internRepo.CountByBucket(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.internRepo.ActiveCountByType(ctx)
	if err != nil {
		return nil, err
	}
	byDept, err := s.internRepo.ActiveCountByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	endingSoon, err := s.internRepo.EndingSoon(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		Total:        total,
		Active:       active,
		Completed:    completed,
		Missing:      missing,
		ActiveByType: byType,
		ActiveByDept: byDept,
		EndingSoon:   endingSoon,
	}, nil
}

// parseDateRange parses both wire dates and enforces start <= end
func (s *InternService) parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := helpers.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("Tanggal tidak valid, format harus YYYY-MM-DD")
	}
	end, err := helpers.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("Tanggal tidak valid, format harus YYYY-MM-DD")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func applyDetailRequests(intern *models.Intern, student *dto.StudentDetailRequest, university *dto.UniversityDetailRequest) {
	intern.Student = nil
	intern.University = nil
	switch intern.ParticipantType {
	case models.ParticipantSiswa:
		if student != nil {
			intern.Student = &models.StudentDetail{
				NIS:        student.NIS,
				SchoolName: student.SchoolName,
				Class:      student.Class,
			}
		}
	case models.ParticipantMahasiswa:
		if university != nil {
			intern.University = &models.UniversityDetail{
				NIM:      university.NIM,
				Major:    university.Major,
				Semester: university.Semester,
			}
		}
	}
}

// validateDetails checks the identifier formats of the type-specific detail
// rows. Details themselves are optional.
func validateDetails(intern *models.Intern) error {
	if intern.Student != nil {
		ok := validation.NewStringValidation(intern.Student.NIS).
			WithPattern(validation.CompiledPatterns.NIS).
			Validate()
		if !ok {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "NIS tidak valid")
		}
	}
	if intern.University != nil {
		ok := validation.NewStringValidation(intern.University.NIM).
			WithPattern(validation.CompiledPatterns.NIM).
			Validate()
		if !ok {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "NIM tidak valid")
		}
	}
	return nil
}
