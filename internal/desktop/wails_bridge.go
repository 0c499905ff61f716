package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"filepick/filedialog"
	"filepick/internal/settings"
	"filepick/internal/telemetry"
)

// FilterSpec is one file type filter as sent by the frontend.
type FilterSpec struct {
	Extension string `json:"extension"`
	Label     string `json:"label"`
}

// DialogService captures the dialog operations used by Wails bindings.
type DialogService interface {
	Initialize(defaultDir string, window any) error
	Open(ctx context.Context, filters []filedialog.Filter, title string) (string, bool, error)
	Save(ctx context.Context, filters []filedialog.Filter, title string) (string, bool, error)
	OpenFolder(ctx context.Context, title string) (string, bool, error)
}

// WailsBridge exposes native file dialogs to the Wails frontend.
type WailsBridge struct {
	dialogs   DialogService
	settings  settings.DialogSettings
	telemetry *telemetry.Recorder
	logger    *slog.Logger

	mu         sync.RWMutex
	ctx        context.Context
	started    bool
	startupErr error
}

// NewWailsBridge creates a binding bridge for a dialog service.
func NewWailsBridge(dialogs DialogService, cfg settings.DialogSettings, recorder *telemetry.Recorder) *WailsBridge {
	if recorder == nil {
		recorder = telemetry.NewRecorder()
	}
	return &WailsBridge{
		dialogs:   dialogs,
		settings:  cfg,
		telemetry: recorder,
		logger:    slog.Default(),
		ctx:       context.Background(),
	}
}

// Startup is called by Wails at app startup. The Wails context becomes the
// owning window handle of every dialog.
func (b *WailsBridge) Startup(ctx context.Context) {
	startedAt := time.Now()

	b.mu.Lock()
	b.ctx = ctx
	b.started = true
	b.startupErr = b.dialogs.Initialize(b.settings.DefaultDirectory, ctx)
	startupErr := b.startupErr
	b.mu.Unlock()

	if startupErr != nil {
		b.logger.Error("file dialog bridge startup failed", "error", startupErr)
		return
	}
	event := b.telemetry.MarkStartupComplete(startedAt)
	b.logger.Info(
		"file dialog bridge started",
		"defaultDirectory", b.settings.DefaultDirectory,
		"startupDurationMs", event.Duration.Milliseconds(),
	)
}

// Shutdown is called by Wails at app shutdown.
func (b *WailsBridge) Shutdown(ctx context.Context) {
	b.mu.Lock()
	b.started = false
	b.mu.Unlock()

	b.logger.Info(
		"file dialog bridge stopped",
		"confirmed", b.telemetry.OutcomeCount(filedialog.StateConfirmed),
		"cancelled", b.telemetry.OutcomeCount(filedialog.StateCancelled),
		"failed", b.telemetry.OutcomeCount(filedialog.StateFailed),
		"pending", b.telemetry.Pending(),
	)
}

// StartupError returns the startup error string if startup failed.
func (b *WailsBridge) StartupError() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.startupErr == nil {
		return ""
	}
	return b.startupErr.Error()
}

// ChooseFile opens a native file picker. An empty path means the user cancelled.
func (b *WailsBridge) ChooseFile(filters []FilterSpec, title string) (string, error) {
	ctx, err := b.requestContext()
	if err != nil {
		return "", err
	}
	converted, err := convertFilters(filters)
	if err != nil {
		return "", fmt.Errorf("choose file: %w", err)
	}
	path, _, err := b.dialogs.Open(ctx, converted, title)
	if err != nil {
		return "", fmt.Errorf("choose file: %w", err)
	}
	return path, nil
}

// ChooseSaveFile opens a native save picker. An empty path means the user cancelled.
func (b *WailsBridge) ChooseSaveFile(filters []FilterSpec, title string) (string, error) {
	ctx, err := b.requestContext()
	if err != nil {
		return "", err
	}
	converted, err := convertFilters(filters)
	if err != nil {
		return "", fmt.Errorf("choose save file: %w", err)
	}
	path, _, err := b.dialogs.Save(ctx, converted, title)
	if err != nil {
		return "", fmt.Errorf("choose save file: %w", err)
	}
	return path, nil
}

// ChooseFolder opens a native directory picker. An empty path means the user cancelled.
func (b *WailsBridge) ChooseFolder(title string) (string, error) {
	ctx, err := b.requestContext()
	if err != nil {
		return "", err
	}
	path, _, err := b.dialogs.OpenFolder(ctx, title)
	if err != nil {
		return "", fmt.Errorf("choose folder: %w", err)
	}
	return path, nil
}

// RecentDialogs returns timing for recently resolved dialogs, oldest first.
func (b *WailsBridge) RecentDialogs() []DialogSummary {
	events := b.telemetry.Events()
	summaries := make([]DialogSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, DialogSummary{
			Mode:       event.Mode.String(),
			Outcome:    event.Outcome.String(),
			DurationMS: event.Duration.Milliseconds(),
		})
	}
	return summaries
}

// DialogSummary is the frontend view of one resolved dialog.
type DialogSummary struct {
	Mode       string `json:"mode"`
	Outcome    string `json:"outcome"`
	DurationMS int64  `json:"durationMs"`
}

func (b *WailsBridge) requestContext() (context.Context, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.started {
		return nil, fmt.Errorf("wails bridge is not started")
	}
	if b.startupErr != nil {
		return nil, fmt.Errorf("wails bridge startup failed: %w", b.startupErr)
	}
	return b.ctx, nil
}

func convertFilters(specs []FilterSpec) ([]filedialog.Filter, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	filters := make([]filedialog.Filter, 0, len(specs))
	for _, spec := range specs {
		filter, err := filedialog.NewFilter(spec.Extension, spec.Label)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}
	return filters, nil
}
