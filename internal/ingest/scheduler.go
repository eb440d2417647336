package ingest

import (
	"context"
	"log"
	"time"
)

// Housekeeper is the storage the scheduler keeps tidy.
type Housekeeper interface {
	CleanupOldFeedPayloads(retentionDays int) (int64, error)
	CleanupSessions(maxIdle time.Duration) (int64, error)
}

// Scheduler runs periodic maintenance next to the HTTP server: it expires the
// feed payload archive and idle sessions.
type Scheduler struct {
	store         Housekeeper
	loc           *time.Location
	retentionDays int
	sessionIdle   time.Duration
	interval      time.Duration
	lastRun       time.Time
}

func NewScheduler(store Housekeeper, loc *time.Location, retentionDays int, sessionIdle time.Duration) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		store:         store,
		loc:           loc,
		retentionDays: retentionDays,
		sessionIdle:   sessionIdle,
		interval:      1 * time.Hour,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	s.runDailyJobsIfNeeded(time.Now())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: shutting down")
			return
		case now := <-ticker.C:
			s.runDailyJobsIfNeeded(now)
		}
	}
}

// runDailyJobsIfNeeded prunes once per local calendar day.
func (s *Scheduler) runDailyJobsIfNeeded(now time.Time) bool {
	local := now.In(s.loc)
	if !s.lastRun.IsZero() {
		last := s.lastRun.In(s.loc)
		if last.YearDay() == local.YearDay() && last.Year() == local.Year() {
			return false
		}
	}
	s.lastRun = now
	s.RunOnce()
	return true
}

// RunOnce prunes immediately. Failures are logged, never fatal.
func (s *Scheduler) RunOnce() {
	if s.retentionDays > 0 {
		n, err := s.store.CleanupOldFeedPayloads(s.retentionDays)
		if err != nil {
			log.Printf("scheduler: cleanup feed payloads: %v", err)
		} else if n > 0 {
			log.Printf("scheduler: removed %d feed payloads older than %d days", n, s.retentionDays)
		}
	}

	if s.sessionIdle > 0 {
		n, err := s.store.CleanupSessions(s.sessionIdle)
		if err != nil {
			log.Printf("scheduler: cleanup sessions: %v", err)
		} else if n > 0 {
			log.Printf("scheduler: removed %d idle sessions", n)
		}
	}
}
