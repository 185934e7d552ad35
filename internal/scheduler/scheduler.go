package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const jobTimeout = 5 * time.Minute

// Retention windows for the cleanup job
const (
	notificationRetentionDays = 90
)

// StatusRefresher recomputes lifecycle statuses from the calendar
type StatusRefresher interface {
	RefreshStatuses(ctx context.Context) (int64, error)
}

// EndingSoonScanner creates ending-soon notifications for admins
type EndingSoonScanner interface {
	ScanEndingSoon(ctx context.Context) error
	CleanupOld(ctx context.Context, olderThanDays int) (int64, error)
}

// TokenCleaner purges dead refresh tokens
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// Scheduler runs the background jobs that keep statuses and notifications
// current without an operator pressing the refresh endpoint.
type Scheduler struct {
	cron     *cron.Cron
	interns  StatusRefresher
	notifier EndingSoonScanner
	tokens   TokenCleaner
	logger   zerolog.Logger
}

// New creates a scheduler. Jobs are registered by Start.
func New(interns StatusRefresher, notifier EndingSoonScanner, tokens TokenCleaner, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		interns:  interns,
		notifier: notifier,
		tokens:   tokens,
		logger:   logger,
	}
}

// Start registers the cron entries and starts the scheduler in its own
// goroutine. refreshSpec drives status refresh plus the ending-soon scan,
// cleanupSpec drives retention cleanup.
func (s *Scheduler) Start(refreshSpec, cleanupSpec string) error {
	if _, err := s.cron.AddFunc(refreshSpec, s.refreshJob); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(cleanupSpec, s.cleanupJob); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info().
		Str("refreshSpec", refreshSpec).
		Str("cleanupSpec", cleanupSpec).
		Msg("Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) refreshJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	updated, err := s.interns.RefreshStatuses(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled status refresh failed")
	} else if updated > 0 {
		s.logger.Info().Int64("updated", updated).Msg("Scheduled status refresh applied")
	}

	if err := s.notifier.ScanEndingSoon(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Ending-soon scan failed")
	}
}

func (s *Scheduler) cleanupJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.notifier.CleanupOld(ctx, notificationRetentionDays)
	if err != nil {
		s.logger.Error().Err(err).Msg("Notification cleanup failed")
	} else if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("Old notifications removed")
	}

	purged, err := s.tokens.CleanupExpiredTokens(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Token cleanup failed")
	} else if purged > 0 {
		s.logger.Info().Int64("purged", purged).Msg("Dead refresh tokens purged")
	}
}
