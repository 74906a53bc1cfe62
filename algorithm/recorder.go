package algorithm

import (
	"context"
	"errors"
	"sync"
)

// Recorder is an Observer that keeps every delivered event.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// OnEvent implements Observer.
func (r *Recorder) OnEvent(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)

	return out
}

// Kinds returns the kinds of the recorded events, in order.
func (r *Recorder) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind()
	}

	return out
}

// Count returns how many recorded events have kind k.
func (r *Recorder) Count(k EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind() == k {
			n++
		}
	}

	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Drain pulls events from src until the run terminates. It returns nil once
// ErrNoMoreEvents is reached and the first other error otherwise.
func Drain(ctx context.Context, src EventSource) error {
	for {
		_, err := src.NextEvent(ctx)
		if errors.Is(err, ErrNoMoreEvents) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
