// Package scheduler drives periodic re-evaluation of derived records.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers a refresh function on a fixed interval. Start is
// idempotent: calling it twice never creates duplicate timers. Stop
// cancels the recurring trigger and a stopped scheduler may be started
// again.
type Scheduler struct {
	mu       sync.Mutex
	c        *cron.Cron
	interval time.Duration
	refresh  func()
	started  bool
}

// New creates a scheduler that invokes refresh every interval once started
func New(interval time.Duration, refresh func()) *Scheduler {
	return &Scheduler{interval: interval, refresh: refresh}
}

// Start begins the recurring trigger. No-op when already running.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if s.interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", s.interval)
	}
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), s.refresh); err != nil {
		return err
	}
	c.Start()
	s.c = c
	s.started = true
	return nil
}

// Stop cancels the recurring trigger. No-op when not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.c.Stop()
	s.c = nil
	s.started = false
}

// Running reports whether the trigger is active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
