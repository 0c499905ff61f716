//go:build wails

package main

import (
	"embed"
	"log/slog"
	"os"

	"filepick/filedialog"
	"filepick/filedialog/wailsdialog"
	"filepick/internal/desktop"
	"filepick/internal/settings"
	"filepick/internal/telemetry"

	"github.com/lmittmann/tint"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg := settings.Load(settings.DialogSettings{
		Backend:               settings.BackendWails,
		DefaultDirectory:      os.Getenv("FILEPICK_DIR"),
		ConfirmOverwrite:      true,
		RememberLastDirectory: settings.ParseBool(os.Getenv("FILEPICK_REMEMBER_DIR")),
		LogLevel:              os.Getenv("FILEPICK_LOG_LEVEL"),
	})
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: settings.ParseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	recorder := telemetry.NewRecorder()
	manager := filedialog.NewManager(wailsdialog.New(), desktop.ManagerOptions(cfg, recorder, logger)...)
	bridge := desktop.NewWailsBridge(manager, cfg, recorder)

	if err := wails.Run(&options.App{
		Title:      "filepick",
		Width:      720,
		Height:     480,
		MinWidth:   480,
		MinHeight:  320,
		OnStartup:  bridge.Startup,
		OnShutdown: bridge.Shutdown,
		Bind: []interface{}{
			bridge,
		},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
	}); err != nil {
		slog.Error("wails runtime failed", "error", err)
	}
}
