package filedialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Titles used when a request is run without one.
const (
	DefaultOpenTitle   = "Open a file"
	DefaultSaveTitle   = "Save a file"
	DefaultFolderTitle = "Select a folder"
)

// State is the lifecycle position of a request.
type State int

const (
	StateCreated State = iota
	StateConfigured
	StateShown
	StateConfirmed
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConfigured:
		return "configured"
	case StateShown:
		return "shown"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateCancelled || s == StateFailed
}

type request struct {
	lease *Lease
	mode  Mode
	id    string

	mu    sync.Mutex
	state State
}

func newRequest(lease *Lease, mode Mode) (*request, error) {
	if !lease.usable() {
		return nil, ErrContextUnavailable
	}
	return &request{
		lease: lease,
		mode:  mode,
		id:    uuid.NewString(),
		state: StateCreated,
	}, nil
}

// ID identifies the request in logs and telemetry.
func (r *request) ID() string {
	return r.id
}

// State returns the current lifecycle state.
func (r *request) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *request) setState(state State) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
}

func (r *request) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateCreated {
		return ErrRequestFinished
	}
	r.state = StateConfigured
	return nil
}

func (r *request) run(ctx context.Context, filters []Filter, title string) (string, bool, error) {
	if err := r.begin(); err != nil {
		return "", false, err
	}
	if !r.lease.usable() {
		r.setState(StateFailed)
		return "", false, ErrContextUnavailable
	}
	if err := checkDuplicateExtensions(filters); err != nil {
		r.setState(StateFailed)
		return "", false, err
	}

	manager := r.lease.manager
	logger := manager.logger.With("requestId", r.id, "mode", r.mode.String())

	opts := Options{
		Mode:             r.mode,
		Title:            r.titleOrDefault(title),
		DefaultDir:       r.lease.DefaultDir(),
		Window:           r.lease.Window(),
		Filters:          append([]Filter(nil), filters...),
		ShowHidden:       manager.showHidden,
		ConfirmOverwrite: manager.confirmOverwrite && r.mode == ModeSave,
	}

	dialog, err := manager.backend.Prepare(ctx, opts)
	if err == nil && dialog == nil {
		err = errors.New("backend returned no dialog")
	}
	if err != nil {
		r.setState(StateFailed)
		return "", false, fmt.Errorf("%w: %w", ErrDialogCreationFailed, err)
	}

	r.setState(StateShown)
	r.notifyShown(logger)
	logger.Debug("file dialog shown", "title", opts.Title, "defaultDir", opts.DefaultDir, "filters", len(opts.Filters))

	path, err := dialog.Show(ctx)
	path = strings.TrimSpace(path)
	switch {
	case errors.Is(err, ErrCancelled), err == nil && path == "":
		r.resolve(logger, StateCancelled)
		return "", false, nil
	case err != nil:
		r.resolve(logger, StateFailed)
		return "", false, fmt.Errorf("%w: %w", ErrDialogInvocationFailed, err)
	case !filepath.IsAbs(path):
		r.resolve(logger, StateFailed)
		return "", false, fmt.Errorf("%w: backend returned relative path %q", ErrDialogInvocationFailed, path)
	}

	r.resolve(logger, StateConfirmed)
	manager.remember(path, r.mode)
	return path, true, nil
}

func (r *request) titleOrDefault(title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	switch r.mode {
	case ModeSave:
		return DefaultSaveTitle
	case ModeFolder:
		return DefaultFolderTitle
	default:
		return DefaultOpenTitle
	}
}

func (r *request) notifyShown(logger *slog.Logger) {
	observer := r.lease.manager.observer
	if observer == nil {
		return
	}
	if err := observer.DialogShown(r.id, r.mode, time.Now()); err != nil {
		logger.Debug("file dialog observer rejected shown event", "error", err)
	}
}

func (r *request) resolve(logger *slog.Logger, state State) {
	r.setState(state)
	logger.Debug("file dialog resolved", "state", state.String())
	observer := r.lease.manager.observer
	if observer == nil {
		return
	}
	if err := observer.DialogResolved(r.id, state, time.Now()); err != nil {
		logger.Debug("file dialog observer rejected resolved event", "error", err)
	}
}

// OpenRequest picks one existing file.
type OpenRequest struct {
	*request
}

// NewOpenRequest binds an open request to an acquired lease.
func NewOpenRequest(lease *Lease) (*OpenRequest, error) {
	r, err := newRequest(lease, ModeOpen)
	if err != nil {
		return nil, err
	}
	return &OpenRequest{request: r}, nil
}

// Open shows the dialog. With no filters every file is selectable; an empty
// title uses DefaultOpenTitle. ok is false when the user cancelled.
func (r *OpenRequest) Open(ctx context.Context, filters []Filter, title string) (path string, ok bool, err error) {
	return r.run(ctx, filters, title)
}

// SaveRequest picks a destination file, which need not exist yet.
type SaveRequest struct {
	*request
}

// NewSaveRequest binds a save request to an acquired lease.
func NewSaveRequest(lease *Lease) (*SaveRequest, error) {
	r, err := newRequest(lease, ModeSave)
	if err != nil {
		return nil, err
	}
	return &SaveRequest{request: r}, nil
}

// Save shows the dialog. ok is false when the user cancelled.
func (r *SaveRequest) Save(ctx context.Context, filters []Filter, title string) (path string, ok bool, err error) {
	return r.run(ctx, filters, title)
}

// FolderRequest picks one existing directory.
type FolderRequest struct {
	*request
}

// NewFolderRequest binds a folder request to an acquired lease.
func NewFolderRequest(lease *Lease) (*FolderRequest, error) {
	r, err := newRequest(lease, ModeFolder)
	if err != nil {
		return nil, err
	}
	return &FolderRequest{request: r}, nil
}

// OpenFolder shows the dialog. ok is false when the user cancelled.
func (r *FolderRequest) OpenFolder(ctx context.Context, title string) (path string, ok bool, err error) {
	return r.run(ctx, nil, title)
}
