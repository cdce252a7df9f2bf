// Package scheduler drives periodic cost refreshes: it invokes the fetcher
// on a timer, aggregates results into cost views, and applies capped
// exponential backoff on failure. At most one fetch is in flight at a time;
// triggers arriving mid-fetch coalesce into a single immediate follow-up.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/akshayareddy2629/BillWatch/internal/model"
	"github.com/akshayareddy2629/BillWatch/internal/pipeline"
)

// Fetcher produces raw cost reports. Implementations must honor ctx
// cancellation and deadline.
type Fetcher interface {
	Fetch(ctx context.Context) (model.CostReport, error)
}

// Event is delivered on the scheduler's event channel. Exactly one of View
// and Err is set: View on every successful refresh, Err once per entry into
// backoff (not repeated on every failed retry).
type Event struct {
	View *model.CostView
	Err  error
}

type state int

const (
	stateIdle state = iota
	stateFetching
	stateBackoff
)

// Config controls scheduler timing.
type Config struct {
	// Interval between successful refreshes.
	Interval time.Duration
	// FetchTimeout bounds a single fetch attempt; exceeding it counts as
	// a failure. Defaults to the smaller of Interval and 20s.
	FetchTimeout time.Duration
	// MaxBackoff caps the failure delay. Defaults to 4x Interval.
	MaxBackoff time.Duration
	// EventsBuffer sizes the event channel. Defaults to 8.
	EventsBuffer int
}

// Scheduler owns the refresh loop for one fetcher.
type Scheduler struct {
	cfg      Config
	fetcher  Fetcher
	events   chan Event
	refresh  chan struct{}
	reconfig chan time.Duration

	// MaxBackoff was defaulted from the interval, so interval changes
	// keep it at 4x the current interval.
	defaultedBackoff bool

	mu   sync.RWMutex
	last *model.CostView
}

type fetchResult struct {
	report model.CostReport
	err    error
}

// New returns a scheduler with defaults applied. Run must be called to
// start refreshing.
func New(fetcher Fetcher, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 20 * time.Second
		if cfg.Interval < cfg.FetchTimeout {
			cfg.FetchTimeout = cfg.Interval
		}
	}
	defaultedBackoff := cfg.MaxBackoff <= 0
	if defaultedBackoff {
		cfg.MaxBackoff = 4 * cfg.Interval
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 8
	}

	return &Scheduler{
		cfg:              cfg,
		fetcher:          fetcher,
		events:           make(chan Event, cfg.EventsBuffer),
		refresh:          make(chan struct{}, 1),
		reconfig:         make(chan time.Duration, 1),
		defaultedBackoff: defaultedBackoff,
	}
}

// Events returns the channel refresh results are delivered on. Consumers
// read it from a single context (the UI event loop); the scheduler never
// mutates display state directly.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// RefreshNow requests an immediate refresh. Non-blocking; requests made
// while a fetch is already pending or in flight coalesce.
func (s *Scheduler) RefreshNow() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// SetInterval changes the steady-state refresh interval, e.g. after a
// config file reload. Applies at the next reschedule; a fetch already in
// flight is not interrupted. Non-positive durations are ignored.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	// Latest wins; drop any value the loop has not picked up yet.
	select {
	case <-s.reconfig:
	default:
	}
	select {
	case s.reconfig <- d:
	default:
	}
}

// LastView returns the most recent successful view, or nil before the
// first success. Retained across failures (stale-data policy).
func (s *Scheduler) LastView() *model.CostView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// SeedView pre-populates the stale view, e.g. from the on-disk snapshot
// cache, so a display has something to show before the first fetch lands.
func (s *Scheduler) SeedView(v model.CostView) {
	s.mu.Lock()
	s.last = &v
	s.mu.Unlock()
}

// Run executes the refresh loop until ctx is canceled. The first fetch
// starts immediately. No event is delivered after cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	var (
		st       = stateIdle
		inflight chan fetchResult
		pending  bool
		failures int
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			if st == stateFetching {
				pending = true
				continue
			}
			st = stateFetching
			inflight = s.startFetch(ctx)

		case <-s.refresh:
			if st == stateFetching {
				pending = true
				continue
			}
			stopTimer(timer)
			st = stateFetching
			inflight = s.startFetch(ctx)

		case d := <-s.reconfig:
			s.applyInterval(d)
			if st == stateIdle {
				stopTimer(timer)
				timer.Reset(d)
			}

		case res := <-inflight:
			inflight = nil
			if ctx.Err() != nil {
				return ctx.Err()
			}

			if res.err != nil {
				// Keep the previous view; only announce the
				// outage on the first failure of a streak.
				entering := st == stateFetching && failures == 0
				failures++
				st = stateBackoff
				pending = false
				if entering {
					if err := s.emit(ctx, Event{Err: res.err}); err != nil {
						return err
					}
				}
				timer.Reset(s.backoffDelay(failures))
				continue
			}

			view := pipeline.Aggregate(res.report.Records, res.report.Total, res.report.FetchedAt)
			s.mu.Lock()
			s.last = &view
			s.mu.Unlock()

			failures = 0
			st = stateIdle
			if err := s.emit(ctx, Event{View: &view}); err != nil {
				return err
			}

			if pending {
				pending = false
				timer.Reset(0)
			} else {
				timer.Reset(s.cfg.Interval)
			}
		}
	}
}

// applyInterval installs a reloaded interval; a defaulted backoff cap
// follows it (4x), an explicitly configured one is left alone. Called
// only from the Run loop.
func (s *Scheduler) applyInterval(d time.Duration) {
	s.cfg.Interval = d
	if s.defaultedBackoff {
		s.cfg.MaxBackoff = 4 * d
	}
}

func (s *Scheduler) startFetch(ctx context.Context) chan fetchResult {
	done := make(chan fetchResult, 1)
	go func() {
		fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
		report, err := s.fetcher.Fetch(fctx)
		done <- fetchResult{report: report, err: err}
	}()
	return done
}

func (s *Scheduler) emit(ctx context.Context, ev Event) error {
	// Checked before the select: with buffer space free, the select
	// could otherwise pick the send even after cancellation.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	select {
	case s.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// backoffDelay doubles from a quarter interval (floored at 5s) per
// consecutive failure, capped at MaxBackoff.
func (s *Scheduler) backoffDelay(failures int) time.Duration {
	d := s.cfg.Interval / 4
	if d < 5*time.Second {
		d = 5 * time.Second
	}
	for i := 1; i < failures; i++ {
		d *= 2
		if d >= s.cfg.MaxBackoff {
			return s.cfg.MaxBackoff
		}
	}
	if d > s.cfg.MaxBackoff {
		d = s.cfg.MaxBackoff
	}
	return d
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
