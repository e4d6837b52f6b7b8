// Package jobs holds the scheduled background work.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusvibes/backend/internal/repositories"
	"github.com/robfig/cron/v3"
)

// activeWindow is how far back a user's last activity may lie to still count
// as active.
const activeWindow = 5 * time.Minute

// ActiveUserSampler periodically counts recently active users and stores the
// sample in the analytics time series.
type ActiveUserSampler struct {
	users     repositories.UserRepository
	analytics repositories.AnalyticsRepository
	logger    *slog.Logger
	cron      *cron.Cron
}

// NewActiveUserSampler creates the sampler.
func NewActiveUserSampler(users repositories.UserRepository, analytics repositories.AnalyticsRepository, logger *slog.Logger) *ActiveUserSampler {
	return &ActiveUserSampler{
		users:     users,
		analytics: analytics,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the sampler every five minutes.
func (s *ActiveUserSampler) Start() error {
	if _, err := s.cron.AddFunc("*/5 * * * *", s.sample); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sample to finish.
func (s *ActiveUserSampler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ActiveUserSampler) sample() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.users.CountActiveSince(ctx, time.Now().Add(-activeWindow))
	if err != nil {
		s.logger.Error("count active users", "error", err)
		return
	}
	if err := s.analytics.RecordActivity(count); err != nil {
		s.logger.Error("record user activity", "error", err)
	}
}
