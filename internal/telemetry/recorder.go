package telemetry

import (
	"fmt"
	"sync"
	"time"

	"filepick/filedialog"
)

// StartupEvent captures startup timing.
type StartupEvent struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
}

// DialogEvent captures how long one dialog stayed on screen and how it ended.
type DialogEvent struct {
	RequestID  string
	Mode       filedialog.Mode
	Outcome    filedialog.State
	ShownAt    time.Time
	ResolvedAt time.Time
	Duration   time.Duration
}

type shownState struct {
	mode    filedialog.Mode
	shownAt time.Time
}

// DefaultEventLimit bounds how many resolved dialog events are retained.
const DefaultEventLimit = 256

// Recorder tracks startup and dialog latency events in memory. It satisfies
// filedialog.Observer.
type Recorder struct {
	mu     sync.Mutex
	shown  map[string]shownState
	events []DialogEvent
	counts map[filedialog.State]int
	limit  int
}

// NewRecorder creates a telemetry recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		shown:  make(map[string]shownState),
		counts: make(map[filedialog.State]int),
		limit:  DefaultEventLimit,
	}
}

// MarkStartupComplete computes startup duration from a provided start time.
func (r *Recorder) MarkStartupComplete(startedAt time.Time) StartupEvent {
	completedAt := time.Now()
	if completedAt.Before(startedAt) {
		completedAt = startedAt
	}
	return StartupEvent{
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		Duration:    completedAt.Sub(startedAt),
	}
}

// DialogShown stores the time a dialog went on screen.
func (r *Recorder) DialogShown(requestID string, mode filedialog.Mode, shownAt time.Time) error {
	if requestID == "" {
		return fmt.Errorf("request ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.shown[requestID] = shownState{mode: mode, shownAt: shownAt}
	return nil
}

// DialogResolved closes a shown dialog and records its event.
func (r *Recorder) DialogResolved(requestID string, outcome filedialog.State, resolvedAt time.Time) error {
	if requestID == "" {
		return fmt.Errorf("request ID is required")
	}
	if !outcome.Terminal() {
		return fmt.Errorf("outcome %s is not terminal", outcome)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.shown[requestID]
	if !ok {
		return fmt.Errorf("request %s was not shown", requestID)
	}
	delete(r.shown, requestID)
	if resolvedAt.Before(state.shownAt) {
		resolvedAt = state.shownAt
	}

	r.counts[outcome]++
	r.events = append(r.events, DialogEvent{
		RequestID:  requestID,
		Mode:       state.mode,
		Outcome:    outcome,
		ShownAt:    state.shownAt,
		ResolvedAt: resolvedAt,
		Duration:   resolvedAt.Sub(state.shownAt),
	})
	if overflow := len(r.events) - r.limit; overflow > 0 {
		r.events = append(r.events[:0], r.events[overflow:]...)
	}
	return nil
}

// Events returns retained dialog events, oldest first.
func (r *Recorder) Events() []DialogEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DialogEvent(nil), r.events...)
}

// OutcomeCount returns how many dialogs ended in outcome since creation.
func (r *Recorder) OutcomeCount(outcome filedialog.State) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[outcome]
}

// Pending returns how many dialogs are currently on screen.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shown)
}
