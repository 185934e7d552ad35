package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
)

func testDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fakeInternStore is a hand-rolled InternStore double. Only the fields a test
// sets are consulted.
type fakeInternStore struct {
	interns map[int64]*models.Intern
	nextID  int64

	refreshCalls int
	setStatusArg lifecycle.Status

	activeCount   int
	upcomingCount int
	leaving       []lifecycle.LeavingIntern
}

func newFakeInternStore() *fakeInternStore {
	return &fakeInternStore{interns: map[int64]*models.Intern{}, nextID: 1}
}

func (f *fakeInternStore) Create(ctx context.Context, intern *models.Intern) error {
	intern.ID = f.nextID
	f.nextID++
	cp := *intern
	f.interns[intern.ID] = &cp
	return nil
}

func (f *fakeInternStore) Update(ctx context.Context, intern *models.Intern) error {
	if _, ok := f.interns[intern.ID]; !ok {
		return apperrors.ErrInternNotFound
	}
	cp := *intern
	f.interns[intern.ID] = &cp
	return nil
}

func (f *fakeInternStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.interns[id]; !ok {
		return apperrors.ErrInternNotFound
	}
	delete(f.interns, id)
	// Mirrors interns_mentor_id_fkey ON DELETE SET NULL.
	for _, other := range f.interns {
		if other.MentorID != nil && *other.MentorID == id {
			other.MentorID = nil
		}
	}
	return nil
}

func (f *fakeInternStore) GetByID(ctx context.Context, id int64) (*models.Intern, error) {
	intern, ok := f.interns[id]
	if !ok {
		return nil, apperrors.ErrInternNotFound
	}
	cp := *intern
	return &cp, nil
}

func (f *fakeInternStore) List(ctx context.Context, filter dto.InternListFilter, offset uint64, limit int) ([]*models.Intern, int64, error) {
	var out []*models.Intern
	for _, intern := range f.interns {
		out = append(out, intern)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInternStore) SetStatus(ctx context.Context, id int64, status lifecycle.Status, updatedBy int64) error {
	intern, ok := f.interns[id]
	if !ok {
		return apperrors.ErrInternNotFound
	}
	f.setStatusArg = status
	intern.Status = status
	intern.UpdatedBy = updatedBy
	return nil
}

func (f *fakeInternStore) RefreshStatuses(ctx context.Context, asOf time.Time) (int64, error) {
	f.refreshCalls++
	return 0, nil
}

func (f *fakeInternStore) CountActiveOn(ctx context.Context, date time.Time) (int, error) {
	return f.activeCount, nil
}

func (f *fakeInternStore) CountUpcomingBy(ctx context.Context, date time.Time) (int, error) {
	return f.upcomingCount, nil
}

func (f *fakeInternStore) LeavingWithin(ctx context.Context, date time.Time, lookaheadDays int) ([]lifecycle.LeavingIntern, error) {
	return f.leaving, nil
}

func (f *fakeInternStore) CountByBucket(ctx context.Context) (int, int, int, int, error) {
	total := len(f.interns)
	var active, completed, missing int
	for _, intern := range f.interns {
		switch intern.Status {
		case lifecycle.StatusAktif, lifecycle.StatusAlmost:
			active++
		case lifecycle.StatusSelesai:
			completed++
		case lifecycle.StatusMissing:
			missing++
		}
	}
	return total, active, completed, missing, nil
}

func (f *fakeInternStore) ActiveCountByType(ctx context.Context) ([]dto.CountByLabel, error) {
	return nil, nil
}

func (f *fakeInternStore) ActiveCountByDepartment(ctx context.Context) ([]dto.CountByLabel, error) {
	return nil, nil
}

func (f *fakeInternStore) EndingSoon(ctx context.Context) ([]dto.EndingSoonEntry, error) {
	return nil, nil
}

type fakeDepartmentStore struct {
	departments map[int64]*models.Department
}

func (f *fakeDepartmentStore) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	dept, ok := f.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return dept, nil
}

func newTestInternService(store *fakeInternStore, asOf string) *InternService {
	depts := &fakeDepartmentStore{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Pengembangan Aplikasi", Code: "APP"},
	}}
	svc := NewInternService(store, depts, 50, zerolog.Nop())
	svc.now = func() time.Time { return testDate(asOf) }
	return svc
}

func validCreateRequest() *dto.CreateInternRequest {
	return &dto.CreateInternRequest{
		FullName:        "Budi Santoso",
		ParticipantType: "mahasiswa",
		InstitutionName: "Universitas Indonesia",
		InstitutionType: "universitas",
		DepartmentID:    1,
		TanggalMasuk:    "2026-09-10",
		TanggalKeluar:   "2026-10-10",
		University: &dto.UniversityDetailRequest{
			NIM:   "2026010001",
			Major: "Informatika",
		},
	}
}

func TestInternServiceCreate_ComputesInitialStatus(t *testing.T) {
	cases := []struct {
		name string
		asOf string
		want lifecycle.Status
	}{
		{"before start", "2026-09-01", lifecycle.StatusNotYet},
		{"mid interval", "2026-09-20", lifecycle.StatusAktif},
		{"inside almost window", "2026-10-05", lifecycle.StatusAlmost},
		{"after end", "2026-10-11", lifecycle.StatusSelesai},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := newFakeInternStore()
			svc := newTestInternService(store, c.asOf)

			intern, err := svc.Create(context.Background(), validCreateRequest(), 7)
			if err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
			if intern.Status != c.want {
				t.Errorf("initial status = %s, want %s", intern.Status, c.want)
			}
			if intern.CreatedBy != 7 {
				t.Errorf("CreatedBy = %d, want 7", intern.CreatedBy)
			}
		})
	}
}

func TestInternServiceCreate_UnknownDepartment(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-01")

	req := validCreateRequest()
	req.DepartmentID = 99
	if _, err := svc.Create(context.Background(), req, 7); !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Errorf("Create with unknown department = %v, want ErrDepartmentNotFound", err)
	}
}

func TestInternServiceCreate_DateValidation(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-01")

	req := validCreateRequest()
	req.TanggalMasuk = "10-09-2026"
	if _, err := svc.Create(context.Background(), req, 7); err == nil {
		t.Error("Create with malformed date expected error, got nil")
	}

	req = validCreateRequest()
	req.TanggalMasuk = "2026-10-20"
	req.TanggalKeluar = "2026-10-10"
	if _, err := svc.Create(context.Background(), req, 7); !errors.Is(err, apperrors.ErrInvalidDateRange) {
		t.Errorf("Create with inverted range = %v, want ErrInvalidDateRange", err)
	}
}

func TestInternServiceCreate_InvalidNIM(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-01")

	req := validCreateRequest()
	req.University.NIM = "abc"
	if _, err := svc.Create(context.Background(), req, 7); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Create with malformed NIM = %v, want ErrValidationFailed", err)
	}
}

func TestInternServiceUpdate_ExplicitStatusWins(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-20")

	created, err := svc.Create(context.Background(), validCreateRequest(), 7)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	req := &dto.UpdateInternRequest{
		FullName:        created.FullName,
		ParticipantType: "mahasiswa",
		InstitutionName: created.InstitutionName,
		InstitutionType: "universitas",
		DepartmentID:    1,
		TanggalMasuk:    "2026-09-10",
		TanggalKeluar:   "2026-10-10",
		Status:          "selesai", // dates alone would say aktif
	}
	updated, err := svc.Update(context.Background(), created.ID, req, 8)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != lifecycle.StatusSelesai {
		t.Errorf("explicit status was not applied, got %s", updated.Status)
	}
}

func TestInternServiceUpdate_RecomputesWhenStatusOmitted(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-20")

	created, err := svc.Create(context.Background(), validCreateRequest(), 7)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	// Mark missing, then an edit without an explicit status recomputes from
	// the dates and brings the intern back.
	if _, err := svc.MarkMissing(context.Background(), created.ID, 8); err != nil {
		t.Fatalf("MarkMissing returned error: %v", err)
	}

	req := &dto.UpdateInternRequest{
		FullName:        created.FullName,
		ParticipantType: "mahasiswa",
		InstitutionName: created.InstitutionName,
		InstitutionType: "universitas",
		DepartmentID:    1,
		TanggalMasuk:    "2026-09-10",
		TanggalKeluar:   "2026-10-10",
	}
	updated, err := svc.Update(context.Background(), created.ID, req, 8)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != lifecycle.StatusAktif {
		t.Errorf("recomputed status = %s, want aktif", updated.Status)
	}
}

func TestInternServiceUpdate_InvalidStatus(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-20")

	created, err := svc.Create(context.Background(), validCreateRequest(), 7)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	req := &dto.UpdateInternRequest{
		FullName:        created.FullName,
		ParticipantType: "mahasiswa",
		InstitutionName: created.InstitutionName,
		InstitutionType: "universitas",
		DepartmentID:    1,
		TanggalMasuk:    "2026-09-10",
		TanggalKeluar:   "2026-10-10",
		Status:          "finished",
	}
	if _, err := svc.Update(context.Background(), created.ID, req, 8); err == nil {
		t.Error("Update with unknown status expected error, got nil")
	}
}

func TestInternServiceMarkMissing(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-20")

	created, err := svc.Create(context.Background(), validCreateRequest(), 7)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	intern, err := svc.MarkMissing(context.Background(), created.ID, 8)
	if err != nil {
		t.Fatalf("MarkMissing returned error: %v", err)
	}
	if intern.Status != lifecycle.StatusMissing {
		t.Errorf("status = %s, want missing", intern.Status)
	}
	if store.setStatusArg != lifecycle.StatusMissing {
		t.Errorf("SetStatus called with %s, want missing", store.setStatusArg)
	}
}

func TestInternServiceDelete_ClearsMentorReferenceOnMentee(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-20")

	mentor, err := svc.Create(context.Background(), validCreateRequest(), 7)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	menteeReq := validCreateRequest()
	menteeReq.FullName = "Sari Dewi"
	menteeReq.University.NIM = "2026010002"
	menteeReq.MentorID = &mentor.ID
	mentee, err := svc.Create(context.Background(), menteeReq, 7)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if mentee.MentorID == nil || *mentee.MentorID != mentor.ID {
		t.Fatal("mentee was not linked to its mentor")
	}

	if err := svc.Delete(context.Background(), mentor.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	// The mentee record survives with the mentor reference nulled out.
	kept, err := svc.GetByID(context.Background(), mentee.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if kept.MentorID != nil {
		t.Errorf("MentorID = %d, want nil after the mentor record is deleted", *kept.MentorID)
	}
}

func TestInternServiceAvailability_ValidatesDate(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-01")

	if _, err := svc.Availability(context.Background(), ""); err == nil {
		t.Error("Availability with empty date expected error, got nil")
	}
	if _, err := svc.Availability(context.Background(), "01-09-2026"); err == nil {
		t.Error("Availability with malformed date expected error, got nil")
	}
	if store.refreshCalls != 0 {
		t.Errorf("refresh ran %d times before validation, want 0", store.refreshCalls)
	}
}

func TestInternServiceAvailability_RefreshesThenEvaluates(t *testing.T) {
	store := newFakeInternStore()
	store.activeCount = 45
	store.upcomingCount = 3
	store.leaving = []lifecycle.LeavingIntern{
		{ID: 1, Name: "A", EndDate: testDate("2026-09-05")},
		{ID: 2, Name: "B", EndDate: testDate("2026-09-06")},
	}
	svc := newTestInternService(store, "2026-09-01")

	resp, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("Availability returned error: %v", err)
	}
	if store.refreshCalls != 1 {
		t.Errorf("refresh ran %d times, want 1", store.refreshCalls)
	}
	if resp.Date != "2026-09-01" {
		t.Errorf("Date = %s, want 2026-09-01", resp.Date)
	}

	snap := resp.Snapshot
	if snap.TotalOccupied != 48 {
		t.Errorf("TotalOccupied = %d, want 48", snap.TotalOccupied)
	}
	if snap.AvailableSlots != 2 {
		t.Errorf("AvailableSlots = %d, want 2", snap.AvailableSlots)
	}
	if snap.SoonAvailableSlots != 2 {
		t.Errorf("SoonAvailableSlots = %d, want 2", snap.SoonAvailableSlots)
	}
	if snap.TotalAvailableSlots != 0 {
		t.Errorf("TotalAvailableSlots = %d, want 0", snap.TotalAvailableSlots)
	}
	if snap.IsAvailable {
		t.Error("IsAvailable = true, want false")
	}
}

func TestInternServiceStats_RefreshesFirst(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-20")

	if _, err := svc.Create(context.Background(), validCreateRequest(), 7); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	store.refreshCalls = 0

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if store.refreshCalls != 1 {
		t.Errorf("refresh ran %d times, want 1", store.refreshCalls)
	}
	if stats.Total != 1 || stats.Active != 1 {
		t.Errorf("stats = total %d active %d, want 1/1", stats.Total, stats.Active)
	}
}

func TestInternServiceCreate_SiswaDetailSelection(t *testing.T) {
	store := newFakeInternStore()
	svc := newTestInternService(store, "2026-09-01")

	req := validCreateRequest()
	req.ParticipantType = "siswa"
	req.InstitutionType = "sekolah"
	req.University = nil
	req.Student = &dto.StudentDetailRequest{NIS: "20260001", SchoolName: "SMKN 1", Class: "XII RPL"}

	intern, err := svc.Create(context.Background(), req, 7)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if intern.Student == nil || intern.Student.NIS != "20260001" {
		t.Error("student detail was not attached")
	}
	if intern.University != nil {
		t.Error("university detail should be nil for siswa")
	}
}
