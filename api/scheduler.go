/*
scheduler.go - Periodic ledger checkpoints

PURPOSE:
  When per-request auto-save is off, mutations stay in memory until someone
  calls POST /api/ledger/save. The SaveScheduler closes that gap by saving
  the ledger on a fixed interval, but only if it changed since the last save.

DESIGN:
  - One background goroutine driven by a time.Ticker
  - Skips the save when the handler reports no unsaved changes
  - Failures are logged and retried on the next tick

CONFIGURATION:
  - Interval: server.save_interval (0 disables the scheduler)

USAGE:
  scheduler := NewSaveScheduler(handler, 5*time.Minute)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: Handler.SaveIfDirty
*/
package api

import (
	"context"
	"sync"
	"time"
)

// SaveScheduler saves a handler's ledger periodically.
type SaveScheduler struct {
	Handler  *Handler
	Interval time.Duration

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSaveScheduler creates a scheduler; it does nothing until Start.
func NewSaveScheduler(handler *Handler, interval time.Duration) *SaveScheduler {
	return &SaveScheduler{
		Handler:  handler,
		Interval: interval,
	}
}

// Start begins the scheduler. A non-positive interval leaves it disabled.
func (s *SaveScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Interval <= 0 {
		s.Handler.Log.Debug().Msg("save scheduler disabled")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.Interval)
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run()

	s.Handler.Log.Info().Dur("interval", s.Interval).Msg("save scheduler started")
}

// Stop halts the scheduler and waits for an in-flight save.
func (s *SaveScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
	s.Handler.Log.Info().Msg("save scheduler stopped")
}

func (s *SaveScheduler) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ticker.C:
			s.RunNow(context.Background())
		case <-s.stop:
			return
		}
	}
}

// RunNow performs one checkpoint immediately and reports whether it saved.
func (s *SaveScheduler) RunNow(ctx context.Context) bool {
	saved, err := s.Handler.SaveIfDirty(ctx)
	if err != nil {
		s.Handler.Log.Error().Err(err).Msg("scheduled save failed")
		return false
	}
	if saved {
		s.Handler.Log.Debug().Msg("scheduled save completed")
	}
	return saved
}
