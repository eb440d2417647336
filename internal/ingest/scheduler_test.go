package ingest

import (
	"errors"
	"testing"
	"time"
)

type fakeHousekeeper struct {
	payloadCalls []int
	sessionCalls []time.Duration
	err          error
}

func (f *fakeHousekeeper) CleanupOldFeedPayloads(days int) (int64, error) {
	f.payloadCalls = append(f.payloadCalls, days)
	return 3, f.err
}

func (f *fakeHousekeeper) CleanupSessions(maxIdle time.Duration) (int64, error) {
	f.sessionCalls = append(f.sessionCalls, maxIdle)
	return 1, f.err
}

func TestSchedulerRunsOncePerDay(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Casablanca")
	if err != nil {
		t.Fatalf("load timezone: %v", err)
	}
	hk := &fakeHousekeeper{}
	s := NewScheduler(hk, loc, 30, 30*24*time.Hour)

	day1 := time.Date(2025, 6, 6, 9, 0, 0, 0, loc)
	if !s.runDailyJobsIfNeeded(day1) {
		t.Fatal("first run skipped")
	}
	if s.runDailyJobsIfNeeded(day1.Add(5 * time.Hour)) {
		t.Error("ran twice on the same day")
	}
	if !s.runDailyJobsIfNeeded(day1.Add(24 * time.Hour)) {
		t.Error("did not run on the next day")
	}

	if len(hk.payloadCalls) != 2 || hk.payloadCalls[0] != 30 {
		t.Errorf("payload cleanups = %v, want [30 30]", hk.payloadCalls)
	}
	if len(hk.sessionCalls) != 2 || hk.sessionCalls[0] != 30*24*time.Hour {
		t.Errorf("session cleanups = %v", hk.sessionCalls)
	}
}

func TestSchedulerDisabledJobs(t *testing.T) {
	hk := &fakeHousekeeper{err: errors.New("locked")}
	s := NewScheduler(hk, nil, 0, 0)

	s.RunOnce()

	if len(hk.payloadCalls) != 0 || len(hk.sessionCalls) != 0 {
		t.Errorf("disabled jobs ran: %v %v", hk.payloadCalls, hk.sessionCalls)
	}
}
