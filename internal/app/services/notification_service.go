package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
	"github.com/pandu-magang/pandu-backend/internal/pkg/helpers"
)

// NotificationStore persists per-user notifications
type NotificationStore interface {
	CreateEndingSoonBatch(ctx context.Context, recipientIDs []int64, internID int64, title, body string) (int64, error)
	ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
	DeleteReadOlderThan(ctx context.Context, days int) (int64, error)
}

// RecipientLister yields the users who should receive broadcast alerts
type RecipientLister interface {
	ListActiveIDs(ctx context.Context) ([]int64, error)
}

// LeavingLister yields interns whose internships end soon
type LeavingLister interface {
	RefreshStatuses(ctx context.Context, asOf time.Time) (int64, error)
	LeavingWithin(ctx context.Context, date time.Time, lookaheadDays int) ([]lifecycle.LeavingIntern, error)
}

// Pusher delivers a realtime event to a connected user, if any
type Pusher interface {
	PushToUser(userID int64, payload interface{})
}

// NotificationService handles per-user notifications and the ending-soon scan
type NotificationService struct {
	notificationRepo NotificationStore
	userRepo         RecipientLister
	internRepo       LeavingLister
	pusher           Pusher
	logger           zerolog.Logger
	now              func() time.Time
}

// NewNotificationService creates a new NotificationService. pusher may be nil
// when realtime delivery is disabled.
func NewNotificationService(
	notificationRepo NotificationStore,
	userRepo RecipientLister,
	internRepo LeavingLister,
	pusher Pusher,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		internRepo:       internRepo,
		pusher:           pusher,
		logger:           logger,
		now:              time.Now,
	}
}

// List retrieves a page of the user's notifications
func (s *NotificationService) List(ctx context.Context, recipientID int64, unreadOnly bool, page, size int) ([]*models.Notification, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	notifications, total, err := s.notificationRepo.ListByRecipient(ctx, recipientID, unreadOnly, limit, int(offset))
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return notifications, helpers.NewPaginationInfo(total, page, size), nil
}

// CountUnread counts the user's unread notifications
func (s *NotificationService) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, recipientID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

// ScanEndingSoon refreshes statuses, finds interns ending within the lookahead
// window and alerts every active admin once per intern. Run hourly by the
// scheduler; the batch insert deduplicates so repeated runs stay quiet.
func (s *NotificationService) ScanEndingSoon(ctx context.Context) error {
	asOf := s.now()
	if _, err := s.internRepo.RefreshStatuses(ctx, asOf); err != nil {
		return fmt.Errorf("error refreshing statuses before scan: %w", err)
	}

	leaving, err := s.internRepo.LeavingWithin(ctx, asOf, lifecycle.AlmostWindowDays)
	if err != nil {
		return fmt.Errorf("error listing ending interns: %w", err)
	}
	if len(leaving) == 0 {
		return nil
	}

	recipients, err := s.userRepo.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("error listing recipients: %w", err)
	}

	for _, li := range leaving {
		title := "Magang segera berakhir"
		body := fmt.Sprintf("Masa magang %s (%s) berakhir pada %s",
			li.Name, li.DepartmentName, helpers.FormatDate(li.EndDate))

		created, err := s.notificationRepo.CreateEndingSoonBatch(ctx, recipients, li.ID, title, body)
		if err != nil {
			return err
		}
		if created > 0 {
			s.logger.Info().Int64("internID", li.ID).Int64("created", created).Msg("Ending-soon notifications created")
			if s.pusher != nil {
				for _, recipientID := range recipients {
					s.pusher.PushToUser(recipientID, map[string]interface{}{
						"type":     string(models.NotificationInternEnding),
						"internId": li.ID,
						"title":    title,
						"body":     body,
					})
				}
			}
		}
	}
	return nil
}

// CleanupOld deletes read notifications older than the given number of days
func (s *NotificationService) CleanupOld(ctx context.Context, days int) (int64, error) {
	deleted, err := s.notificationRepo.DeleteReadOlderThan(ctx, days)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("Old notifications cleaned up")
	}
	return deleted, nil
}
