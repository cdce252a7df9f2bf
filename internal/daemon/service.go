// Package daemon provides the long-running background cost monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/akshayareddy2629/BillWatch/internal/config"
	"github.com/akshayareddy2629/BillWatch/internal/model"
	"github.com/akshayareddy2629/BillWatch/internal/scheduler"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Settings     config.Settings
	Addr         string
	EventsBuffer int
}

// Event is emitted whenever the cost state changes.
type Event struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"` // "cost_update" or "offline"
	Timestamp time.Time       `json:"timestamp"`
	View      *model.CostView `json:"view,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time       `json:"started_at"`
	LastUpdateAt    time.Time       `json:"last_update_at"`
	IntervalSec     int             `json:"interval_sec"`
	Budget          float64         `json:"budget"`
	Severity        string          `json:"severity,omitempty"`
	Mode            string          `json:"mode"`
	Updates         int64           `json:"updates"`
	View            *model.CostView `json:"view,omitempty"`
	LastError       string          `json:"last_error,omitempty"`
	EventCount      int             `json:"event_count"`
	SubscriberCount int             `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg   Config
	sched *scheduler.Scheduler

	mu           sync.RWMutex
	startedAt    time.Time
	lastUpdateAt time.Time
	updates      int64
	lastError    string
	view         *model.CostView
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service that republishes the scheduler's refresh
// events over HTTP and SSE.
func New(cfg Config, sched *scheduler.Scheduler) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8944"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}

	return &Service{
		cfg:       cfg,
		sched:     sched,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts the HTTP endpoints and the refresh loop until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	schedDone := make(chan error, 1)
	go func() { schedDone <- s.sched.Run(ctx) }()

	shutdown := func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}

	for {
		select {
		case <-ctx.Done():
			return shutdown()
		case ev := <-s.sched.Events():
			s.consume(ev)
		case err := <-schedDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				_ = shutdown()
				return fmt.Errorf("daemon refresh loop: %w", err)
			}
			return shutdown()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) consume(ev scheduler.Event) {
	now := time.Now()

	s.mu.Lock()
	var out Event
	if ev.Err != nil {
		s.lastError = ev.Err.Error()
		s.nextEventID++
		out = Event{
			ID:        s.nextEventID,
			Type:      "offline",
			Timestamp: now,
			Error:     ev.Err.Error(),
		}
		log.Printf("billwatch daemon fetch error: %v", ev.Err)
	} else {
		s.view = ev.View
		s.lastUpdateAt = now
		s.updates++
		s.lastError = ""
		s.nextEventID++
		out = Event{
			ID:        s.nextEventID,
			Type:      "cost_update",
			Timestamp: now,
			View:      ev.View,
		}
	}
	s.mu.Unlock()

	s.publishEvent(out)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		StartedAt:       s.startedAt,
		LastUpdateAt:    s.lastUpdateAt,
		IntervalSec:     s.cfg.Settings.RefreshIntervalSec,
		Budget:          s.cfg.Settings.Budget,
		Mode:            string(s.cfg.Settings.Mode),
		Updates:         s.updates,
		View:            s.view,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
	if s.view != nil {
		st.Severity = model.ClassifySeverity(s.view.MonthToDate, s.cfg.Settings.Budget).String()
	}
	return st
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send the current state immediately so clients don't wait a cycle.
	st := s.snapshotStatus()
	writeSSE(w, Event{
		Type:      "cost_update",
		Timestamp: time.Now(),
		View:      st.View,
		Error:     st.LastError,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
