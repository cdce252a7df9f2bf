package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akshayareddy2629/BillWatch/internal/model"
)

// fetchFunc adapts a function to the Fetcher interface.
type fetchFunc func(ctx context.Context) (model.CostReport, error)

func (f fetchFunc) Fetch(ctx context.Context) (model.CostReport, error) { return f(ctx) }

func report(total float64) model.CostReport {
	return model.CostReport{
		Records:   []model.CostRecord{{Service: "Amazon EC2", Cost: total}},
		Total:     total,
		FetchedAt: time.Now(),
	}
}

func fastConfig() Config {
	return Config{
		Interval:     30 * time.Millisecond,
		FetchTimeout: time.Second,
		MaxBackoff:   10 * time.Millisecond,
	}
}

func TestFirstFetchDeliversView(t *testing.T) {
	s := New(fetchFunc(func(context.Context) (model.CostReport, error) {
		return report(42), nil
	}), fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	select {
	case ev := <-s.Events():
		if ev.View == nil {
			t.Fatalf("first event = %+v, want view", ev)
		}
		if ev.View.MonthToDate != 42 {
			t.Fatalf("MonthToDate = %v, want 42", ev.View.MonthToDate)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no view delivered")
	}

	if lv := s.LastView(); lv == nil || lv.MonthToDate != 42 {
		t.Fatalf("LastView = %+v, want total 42", lv)
	}
}

func TestFailuresEmitOneErrorThenRecover(t *testing.T) {
	var calls atomic.Int32
	s := New(fetchFunc(func(context.Context) (model.CostReport, error) {
		if n := calls.Add(1); n <= 3 {
			return model.CostReport{}, errors.New("socket timeout")
		}
		return report(7), nil
	}), fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// First event: the offline notification, exactly once for the streak.
	select {
	case ev := <-s.Events():
		if ev.Err == nil {
			t.Fatalf("first event = %+v, want error", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error event")
	}

	// Next event must be the recovery view: no per-retry error events,
	// no update callbacks during the failures.
	select {
	case ev := <-s.Events():
		if ev.View == nil {
			t.Fatalf("post-backoff event = %+v, want view (got repeated error?)", ev)
		}
		if ev.View.MonthToDate != 7 {
			t.Fatalf("recovered MonthToDate = %v, want 7", ev.View.MonthToDate)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("never recovered from backoff")
	}

	if calls.Load() != 4 {
		t.Fatalf("fetch calls = %d, want 4 (3 failures + success)", calls.Load())
	}
}

func TestStaleViewRetainedAcrossFailure(t *testing.T) {
	var calls atomic.Int32
	s := New(fetchFunc(func(context.Context) (model.CostReport, error) {
		if calls.Add(1) == 1 {
			return report(99), nil
		}
		return model.CostReport{}, errors.New("throttled")
	}), fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	<-s.Events() // first success

	select {
	case ev := <-s.Events():
		if ev.Err == nil {
			t.Fatalf("expected error event, got %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error event after failure")
	}

	if lv := s.LastView(); lv == nil || lv.MonthToDate != 99 {
		t.Fatalf("stale view lost on failure: %+v", lv)
	}
}

func TestSingleFlight(t *testing.T) {
	var (
		active  atomic.Int32
		maxSeen atomic.Int32
		release = make(chan struct{})
	)
	s := New(fetchFunc(func(ctx context.Context) (model.CostReport, error) {
		n := active.Add(1)
		if m := maxSeen.Load(); n > m {
			maxSeen.Store(n)
		}
		select {
		case <-release:
		case <-ctx.Done():
		}
		active.Add(-1)
		return report(1), nil
	}), Config{Interval: 10 * time.Millisecond, FetchTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// Hammer triggers while the first fetch is blocked.
	for i := 0; i < 10; i++ {
		s.RefreshNow()
		time.Sleep(5 * time.Millisecond)
	}
	close(release)

	select {
	case <-s.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never completed")
	}

	if maxSeen.Load() != 1 {
		t.Fatalf("max concurrent fetches = %d, want 1", maxSeen.Load())
	}
}

func TestCoalescedTriggerRunsAfterFetch(t *testing.T) {
	var calls atomic.Int32
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	s := New(fetchFunc(func(context.Context) (model.CostReport, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-release
		}
		return report(1), nil
	}), Config{Interval: time.Hour, FetchTimeout: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	<-firstStarted
	s.RefreshNow() // queued while fetching
	close(release)

	// Two views: the blocked fetch, then the coalesced follow-up.
	for i := 0; i < 2; i++ {
		select {
		case ev := <-s.Events():
			if ev.View == nil {
				t.Fatalf("event %d = %+v, want view", i, ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("missing view %d (coalesced trigger dropped?)", i)
		}
	}

	if calls.Load() != 2 {
		t.Fatalf("fetch calls = %d, want 2", calls.Load())
	}
}

func TestFetchTimeoutTreatedAsFailure(t *testing.T) {
	var calls atomic.Int32
	s := New(fetchFunc(func(ctx context.Context) (model.CostReport, error) {
		if calls.Add(1) == 1 {
			<-ctx.Done() // hang until the per-attempt timeout fires
			return model.CostReport{}, ctx.Err()
		}
		return report(3), nil
	}), Config{
		Interval:     20 * time.Millisecond,
		FetchTimeout: 10 * time.Millisecond,
		MaxBackoff:   10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	select {
	case ev := <-s.Events():
		if ev.Err == nil {
			t.Fatalf("timeout event = %+v, want error", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout not surfaced as failure")
	}

	select {
	case ev := <-s.Events():
		if ev.View == nil || ev.View.MonthToDate != 3 {
			t.Fatalf("recovery event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no recovery after timeout")
	}
}

func TestStopDeliversNothingAfterCancel(t *testing.T) {
	s := New(fetchFunc(func(context.Context) (model.CostReport, error) {
		return report(1), nil
	}), fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	<-s.Events()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}

	// Drain anything buffered before cancellation, then confirm silence.
	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				return
			}
			_ = ev // events buffered pre-cancel are acceptable
		case <-deadline:
			return
		}
	}
}

func TestSeedView(t *testing.T) {
	s := New(fetchFunc(func(context.Context) (model.CostReport, error) {
		return report(1), nil
	}), fastConfig())

	s.SeedView(model.CostView{MonthToDate: 55})
	if lv := s.LastView(); lv == nil || lv.MonthToDate != 55 {
		t.Fatalf("seeded view = %+v", lv)
	}
}

func TestBackoffDelayCapped(t *testing.T) {
	s := New(fetchFunc(func(context.Context) (model.CostReport, error) {
		return model.CostReport{}, errors.New("nope")
	}), Config{Interval: 40 * time.Second, MaxBackoff: 2 * time.Minute, FetchTimeout: time.Second})

	if d := s.backoffDelay(1); d != 10*time.Second {
		t.Fatalf("backoffDelay(1) = %v, want 10s (interval/4)", d)
	}
	if d := s.backoffDelay(2); d != 20*time.Second {
		t.Fatalf("backoffDelay(2) = %v, want 20s", d)
	}
	if d := s.backoffDelay(10); d != 2*time.Minute {
		t.Fatalf("backoffDelay(10) = %v, want cap", d)
	}

	// Short intervals floor at 5s before the cap applies
	s2 := New(nil, Config{Interval: 12 * time.Second, FetchTimeout: time.Second})
	if d := s2.backoffDelay(1); d != 5*time.Second {
		t.Fatalf("floored backoffDelay(1) = %v, want 5s", d)
	}
}

func TestSetIntervalAppliedAtReschedule(t *testing.T) {
	var calls atomic.Int64
	s := New(fetchFunc(func(context.Context) (model.CostReport, error) {
		calls.Add(1)
		return report(1), nil
	}), Config{Interval: time.Hour, FetchTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// Consume the first view, then shrink the interval from an hour to
	// a few milliseconds; the next refresh should arrive promptly.
	select {
	case <-s.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no initial view")
	}
	s.SetInterval(5 * time.Millisecond)

	select {
	case ev := <-s.Events():
		if ev.View == nil {
			t.Fatalf("event = %+v, want view", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("shrunk interval not applied")
	}
	if n := calls.Load(); n < 2 {
		t.Fatalf("calls = %d, want at least 2", n)
	}
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	s := New(nil, fastConfig())
	s.SetInterval(0)
	s.SetInterval(-time.Second)
	select {
	case d := <-s.reconfig:
		t.Fatalf("reconfig received %v, want nothing", d)
	default:
	}
}

func TestEmitRefusesAfterCancel(t *testing.T) {
	s := New(nil, fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Buffer space is free, so only the up-front ctx check prevents
	// the send from racing the cancellation.
	if err := s.emit(ctx, Event{View: &model.CostView{}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("emit after cancel = %v, want context.Canceled", err)
	}
	select {
	case ev := <-s.events:
		t.Fatalf("event %+v enqueued after cancel", ev)
	default:
	}
}

func TestApplyIntervalTracksDefaultedBackoffCap(t *testing.T) {
	s := New(nil, Config{Interval: 40 * time.Second, FetchTimeout: time.Second})
	if s.cfg.MaxBackoff != 160*time.Second {
		t.Fatalf("defaulted MaxBackoff = %v, want 160s", s.cfg.MaxBackoff)
	}

	s.applyInterval(8 * time.Second)
	if s.cfg.MaxBackoff != 32*time.Second {
		t.Fatalf("MaxBackoff after reload = %v, want 32s", s.cfg.MaxBackoff)
	}
	if d := s.backoffDelay(10); d != 32*time.Second {
		t.Fatalf("backoffDelay(10) = %v, want new cap", d)
	}

	// An explicit cap is the operator's choice and survives reloads.
	s2 := New(nil, Config{Interval: 40 * time.Second, MaxBackoff: 2 * time.Minute, FetchTimeout: time.Second})
	s2.applyInterval(8 * time.Second)
	if s2.cfg.MaxBackoff != 2*time.Minute {
		t.Fatalf("explicit MaxBackoff changed to %v", s2.cfg.MaxBackoff)
	}
}
