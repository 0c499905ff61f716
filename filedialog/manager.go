package filedialog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Observer receives request lifecycle timestamps.
type Observer interface {
	DialogShown(requestID string, mode Mode, shownAt time.Time) error
	DialogResolved(requestID string, state State, resolvedAt time.Time) error
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for request lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithObserver attaches a lifecycle observer such as a telemetry recorder.
func WithObserver(observer Observer) Option {
	return func(m *Manager) {
		m.observer = observer
	}
}

// WithShowHidden makes dialogs list hidden files where the backend supports it.
func WithShowHidden(show bool) Option {
	return func(m *Manager) {
		m.showHidden = show
	}
}

// WithConfirmOverwrite makes save dialogs ask before replacing an existing file.
func WithConfirmOverwrite(confirm bool) Option {
	return func(m *Manager) {
		m.confirmOverwrite = confirm
	}
}

// WithRememberLastDirectory moves the default directory to the parent of
// every confirmed selection.
func WithRememberLastDirectory(remember bool) Option {
	return func(m *Manager) {
		m.rememberLastDir = remember
	}
}

// Manager owns the dialog context shared by all requests: the default
// directory, the owning window and the guard that keeps dialogs serialized.
type Manager struct {
	backend          Backend
	logger           *slog.Logger
	observer         Observer
	showHidden       bool
	confirmOverwrite bool
	rememberLastDir  bool

	guard *semaphore.Weighted

	mu          sync.RWMutex
	initialized bool
	defaultDir  string
	window      any
}

// NewManager creates an uninitialized manager for backend.
func NewManager(backend Backend, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		logger:  slog.Default(),
		guard:   semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize stores the default directory and owning window. It may be
// called once; later calls fail with ErrAlreadyInitialized and change nothing.
func (m *Manager) Initialize(defaultDir string, window any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return ErrAlreadyInitialized
	}
	m.defaultDir = defaultDir
	m.window = window
	m.initialized = true
	m.logger.Debug("file dialog context initialized", "defaultDir", defaultDir)
	return nil
}

// Initialized reports whether Initialize has succeeded.
func (m *Manager) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// DefaultDir returns the directory new dialogs start in.
func (m *Manager) DefaultDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultDir
}

// Acquire waits for exclusive use of the dialog context. The wait ends early
// when ctx is done. Callers must Release the lease.
func (m *Manager) Acquire(ctx context.Context) (*Lease, error) {
	if !m.Initialized() {
		return nil, ErrNotInitialized
	}
	if err := m.guard.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire file dialog context: %w", err)
	}
	return &Lease{manager: m}, nil
}

// Open asks the user for an existing file.
func (m *Manager) Open(ctx context.Context, filters []Filter, title string) (string, bool, error) {
	lease, err := m.Acquire(ctx)
	if err != nil {
		return "", false, err
	}
	defer lease.Release()

	request, err := NewOpenRequest(lease)
	if err != nil {
		return "", false, err
	}
	return request.Open(ctx, filters, title)
}

// Save asks the user for a destination file.
func (m *Manager) Save(ctx context.Context, filters []Filter, title string) (string, bool, error) {
	lease, err := m.Acquire(ctx)
	if err != nil {
		return "", false, err
	}
	defer lease.Release()

	request, err := NewSaveRequest(lease)
	if err != nil {
		return "", false, err
	}
	return request.Save(ctx, filters, title)
}

// OpenFolder asks the user for an existing directory.
func (m *Manager) OpenFolder(ctx context.Context, title string) (string, bool, error) {
	lease, err := m.Acquire(ctx)
	if err != nil {
		return "", false, err
	}
	defer lease.Release()

	request, err := NewFolderRequest(lease)
	if err != nil {
		return "", false, err
	}
	return request.OpenFolder(ctx, title)
}

func (m *Manager) remember(path string, mode Mode) {
	if !m.rememberLastDir {
		return
	}
	dir := path
	if mode != ModeFolder {
		dir = filepath.Dir(path)
	}
	m.mu.Lock()
	m.defaultDir = dir
	m.mu.Unlock()
}

// Lease is exclusive access to a Manager's dialog context.
type Lease struct {
	manager *Manager

	mu       sync.Mutex
	released bool
}

// Release gives the context back. Calling it more than once is harmless.
func (l *Lease) Release() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return
	}
	l.released = true
	l.manager.guard.Release(1)
}

// DefaultDir returns the directory dialogs built from this lease start in.
func (l *Lease) DefaultDir() string {
	return l.manager.DefaultDir()
}

// Window returns the owning window handle.
func (l *Lease) Window() any {
	l.manager.mu.RLock()
	defer l.manager.mu.RUnlock()
	return l.manager.window
}

func (l *Lease) usable() bool {
	if l == nil || l.manager == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.released
}
