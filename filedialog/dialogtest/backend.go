// Package dialogtest provides a scriptable filedialog.Backend for tests that
// cannot drive a real native picker.
package dialogtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"filepick/filedialog"
)

// ErrNotSelectable is returned when a scripted path does not match the
// request's filters. A native picker would never let the user confirm it.
var ErrNotSelectable = errors.New("path not selectable under active filters")

// ErrNoOutcome is returned when a dialog is shown with nothing queued.
var ErrNoOutcome = errors.New("no scripted outcome queued")

type outcomeKind int

const (
	confirm outcomeKind = iota
	cancel
	failCreate
	failShow
)

type outcome struct {
	kind outcomeKind
	path string
	err  error
}

// Backend replays queued outcomes in order, one per prepared dialog.
type Backend struct {
	mu       sync.Mutex
	outcomes []outcome
	prepared []filedialog.Options
	showing  int
	peak     int
	shows    int

	// Gate, when set, holds every Show until a value is received or the
	// channel is closed.
	Gate chan struct{}
	// Entered, when set, receives one value each time Show starts.
	Entered chan struct{}
}

// New returns an empty backend.
func New() *Backend {
	return &Backend{}
}

// Confirm queues a confirmation of path.
func (b *Backend) Confirm(path string) *Backend {
	return b.push(outcome{kind: confirm, path: path})
}

// Cancel queues a user cancellation.
func (b *Backend) Cancel() *Backend {
	return b.push(outcome{kind: cancel})
}

// FailCreate queues a failure while preparing the dialog.
func (b *Backend) FailCreate(err error) *Backend {
	return b.push(outcome{kind: failCreate, err: err})
}

// FailShow queues a failure while showing the dialog.
func (b *Backend) FailShow(err error) *Backend {
	return b.push(outcome{kind: failShow, err: err})
}

func (b *Backend) push(o outcome) *Backend {
	b.mu.Lock()
	b.outcomes = append(b.outcomes, o)
	b.mu.Unlock()
	return b
}

// Prepared returns the options of every dialog prepared so far.
func (b *Backend) Prepared() []filedialog.Options {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]filedialog.Options(nil), b.prepared...)
}

// LastOptions returns the options of the most recent dialog.
func (b *Backend) LastOptions() (filedialog.Options, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.prepared) == 0 {
		return filedialog.Options{}, false
	}
	return b.prepared[len(b.prepared)-1], true
}

// PeakShowing returns the largest number of dialogs shown at once.
func (b *Backend) PeakShowing() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.peak
}

// Shows returns how many dialogs have been shown.
func (b *Backend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Prepare implements filedialog.Backend.
func (b *Backend) Prepare(ctx context.Context, opts filedialog.Options) (filedialog.Dialog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prepared = append(b.prepared, opts)
	if len(b.outcomes) == 0 {
		return &dialog{backend: b, opts: opts, outcome: outcome{kind: failShow, err: ErrNoOutcome}}, nil
	}
	next := b.outcomes[0]
	b.outcomes = b.outcomes[1:]
	if next.kind == failCreate {
		return nil, next.err
	}
	return &dialog{backend: b, opts: opts, outcome: next}, nil
}

type dialog struct {
	backend *Backend
	opts    filedialog.Options
	outcome outcome
}

func (d *dialog) Show(ctx context.Context) (string, error) {
	b := d.backend
	b.mu.Lock()
	b.showing++
	b.shows++
	if b.showing > b.peak {
		b.peak = b.showing
	}
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.showing--
		b.mu.Unlock()
	}()

	if b.Entered != nil {
		b.Entered <- struct{}{}
	}
	if b.Gate != nil {
		select {
		case <-b.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	switch d.outcome.kind {
	case cancel:
		return "", filedialog.ErrCancelled
	case failShow:
		return "", d.outcome.err
	}
	if d.opts.Mode != filedialog.ModeFolder && !filedialog.MatchesAny(d.opts.Filters, d.outcome.path) {
		return "", fmt.Errorf("%w: %s", ErrNotSelectable, d.outcome.path)
	}
	return d.outcome.path, nil
}
