package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
	"github.com/pandu-magang/pandu-backend/internal/app/models"
)

type fakeNotificationStore struct {
	batches   []int64 // intern IDs passed to CreateEndingSoonBatch
	perBatch  int64   // rows reported created per batch
	deleted   int64
	markedAll int64
}

func (f *fakeNotificationStore) CreateEndingSoonBatch(ctx context.Context, recipientIDs []int64, internID int64, title, body string) (int64, error) {
	f.batches = append(f.batches, internID)
	return f.perBatch, nil
}

func (f *fakeNotificationStore) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id, recipientID int64) error {
	return nil
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	return f.markedAll, nil
}

func (f *fakeNotificationStore) DeleteReadOlderThan(ctx context.Context, days int) (int64, error) {
	return f.deleted, nil
}

type fakeRecipientLister struct {
	ids []int64
}

func (f *fakeRecipientLister) ListActiveIDs(ctx context.Context) ([]int64, error) {
	return f.ids, nil
}

type fakeLeavingLister struct {
	refreshCalls int
	leaving      []lifecycle.LeavingIntern
}

func (f *fakeLeavingLister) RefreshStatuses(ctx context.Context, asOf time.Time) (int64, error) {
	f.refreshCalls++
	return 0, nil
}

func (f *fakeLeavingLister) LeavingWithin(ctx context.Context, date time.Time, lookaheadDays int) ([]lifecycle.LeavingIntern, error) {
	return f.leaving, nil
}

type fakePusher struct {
	pushed []int64
}

func (f *fakePusher) PushToUser(userID int64, payload interface{}) {
	f.pushed = append(f.pushed, userID)
}

func TestScanEndingSoon_NotifiesEveryAdminPerIntern(t *testing.T) {
	store := &fakeNotificationStore{perBatch: 2}
	interns := &fakeLeavingLister{leaving: []lifecycle.LeavingIntern{
		{ID: 10, Name: "Budi", DepartmentName: "APP", EndDate: testDate("2026-09-05")},
		{ID: 11, Name: "Sari", DepartmentName: "INFRA", EndDate: testDate("2026-09-07")},
	}}
	pusher := &fakePusher{}
	svc := NewNotificationService(store, &fakeRecipientLister{ids: []int64{1, 2}}, interns, pusher, zerolog.Nop())

	if err := svc.ScanEndingSoon(context.Background()); err != nil {
		t.Fatalf("ScanEndingSoon returned error: %v", err)
	}
	if interns.refreshCalls != 1 {
		t.Errorf("refresh ran %d times, want 1", interns.refreshCalls)
	}
	if len(store.batches) != 2 {
		t.Fatalf("batches created for %d interns, want 2", len(store.batches))
	}
	// One push per recipient per intern with fresh notifications.
	if len(pusher.pushed) != 4 {
		t.Errorf("pushed %d events, want 4", len(pusher.pushed))
	}
}

func TestScanEndingSoon_QuietWhenNothingCreated(t *testing.T) {
	// The repository reports zero rows when every admin was already notified.
	store := &fakeNotificationStore{perBatch: 0}
	interns := &fakeLeavingLister{leaving: []lifecycle.LeavingIntern{
		{ID: 10, Name: "Budi", DepartmentName: "APP", EndDate: testDate("2026-09-05")},
	}}
	pusher := &fakePusher{}
	svc := NewNotificationService(store, &fakeRecipientLister{ids: []int64{1, 2}}, interns, pusher, zerolog.Nop())

	if err := svc.ScanEndingSoon(context.Background()); err != nil {
		t.Fatalf("ScanEndingSoon returned error: %v", err)
	}
	if len(pusher.pushed) != 0 {
		t.Errorf("pushed %d events, want 0", len(pusher.pushed))
	}
}

func TestScanEndingSoon_NoLeavingInterns(t *testing.T) {
	store := &fakeNotificationStore{perBatch: 1}
	interns := &fakeLeavingLister{}
	svc := NewNotificationService(store, &fakeRecipientLister{ids: []int64{1}}, interns, nil, zerolog.Nop())

	if err := svc.ScanEndingSoon(context.Background()); err != nil {
		t.Fatalf("ScanEndingSoon returned error: %v", err)
	}
	if len(store.batches) != 0 {
		t.Errorf("batches created with empty window, want 0, got %d", len(store.batches))
	}
}

func TestCleanupOld_Passthrough(t *testing.T) {
	store := &fakeNotificationStore{deleted: 7}
	svc := NewNotificationService(store, &fakeRecipientLister{}, &fakeLeavingLister{}, nil, zerolog.Nop())

	deleted, err := svc.CleanupOld(context.Background(), 90)
	if err != nil {
		t.Fatalf("CleanupOld returned error: %v", err)
	}
	if deleted != 7 {
		t.Errorf("deleted = %d, want 7", deleted)
	}
}
