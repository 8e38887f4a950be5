package api

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/daytrack/internal/logger"
)

// midnightSpec fires at the start of every calendar day.
const midnightSpec = "0 0 * * *"

// Scheduler runs the daily rollover at midnight in the tracker's timezone,
// so stored tasks reset even when no request arrives.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(h *Handler) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(h.tracker.Location()))
	if _, err := c.AddFunc(midnightSpec, func() { h.RolloverNow() }); err != nil {
		return nil, fmt.Errorf("failed to schedule daily rollover: %w", err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running rollover to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Next returns when the rollover fires next after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(t)
}

// RolloverNow applies a pending rollover and returns how many recurring
// tasks were reset.
func (h *Handler) RolloverNow() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	reset, err := h.tracker.Rollover()
	if err != nil {
		logger.Error("Scheduled rollover failed", "error", err)
		return 0
	}
	logger.Info("Scheduled rollover", "reset", reset)
	return reset
}
