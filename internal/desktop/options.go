package desktop

import (
	"log/slog"

	"filepick/filedialog"
	"filepick/internal/settings"
	"filepick/internal/telemetry"
)

// ManagerOptions maps host settings onto file dialog manager options.
func ManagerOptions(cfg settings.DialogSettings, recorder *telemetry.Recorder, logger *slog.Logger) []filedialog.Option {
	opts := []filedialog.Option{
		filedialog.WithShowHidden(cfg.ShowHiddenFiles),
		filedialog.WithConfirmOverwrite(cfg.ConfirmOverwrite),
		filedialog.WithRememberLastDirectory(cfg.RememberLastDirectory),
	}
	if logger != nil {
		opts = append(opts, filedialog.WithLogger(logger))
	}
	if recorder != nil {
		opts = append(opts, filedialog.WithObserver(recorder))
	}
	return opts
}
