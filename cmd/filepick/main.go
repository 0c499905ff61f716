//go:build !wails

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"filepick/filedialog"
	"filepick/filedialog/zenitydialog"
	"filepick/internal/desktop"
	"filepick/internal/settings"
	"filepick/internal/telemetry"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
)

// exitNoSelection is the exit status when the user dismisses the dialog.
const exitNoSelection = 2

var errNoSelection = errors.New("no selection")

// CLI represents the filepick command line.
type CLI struct {
	Backend          string `env:"FILEPICK_BACKEND" default:"zenity" enum:"zenity,native" help:"Dialog backend (${enum})."`
	Dir              string `env:"FILEPICK_DIR" help:"Starting directory. Defaults to the home directory."`
	Attach           string `help:"Owning window handle (HWND on Windows, window ID or PID elsewhere)."`
	ShowHidden       bool   `help:"List hidden files."`
	ConfirmOverwrite bool   `default:"true" negatable:"" help:"Ask before replacing an existing file when saving."`
	RememberDir      bool   `name:"remember-dir" env:"FILEPICK_REMEMBER_DIR" help:"Start each later dialog in the folder of the previous selection."`
	LogLevel         string `env:"FILEPICK_LOG_LEVEL" default:"warn" help:"Log level."`

	Open   OpenCmd   `cmd:"" help:"Pick an existing file."`
	Save   SaveCmd   `cmd:"" help:"Pick a destination file."`
	Folder FolderCmd `cmd:"" help:"Pick an existing folder."`
}

// FilterFlags is shared by the open and save commands.
type FilterFlags struct {
	Filter []string `short:"f" sep:"none" placeholder:"EXT[=LABEL]" help:"Restrict to an extension, e.g. p5path=\"P5R Freecam Path\". Repeatable."`
	Title  string   `short:"t" help:"Dialog title."`
}

// OpenCmd picks an existing file.
type OpenCmd struct {
	FilterFlags
}

// Run shows an open dialog.
func (c *OpenCmd) Run(ctx context.Context, manager *filedialog.Manager, out io.Writer) error {
	filters, err := parseFilters(c.Filter)
	if err != nil {
		return err
	}
	path, ok, err := manager.Open(ctx, filters, c.Title)
	return report(out, path, ok, err)
}

// SaveCmd picks a destination file.
type SaveCmd struct {
	FilterFlags
}

// Run shows a save dialog.
func (c *SaveCmd) Run(ctx context.Context, manager *filedialog.Manager, out io.Writer) error {
	filters, err := parseFilters(c.Filter)
	if err != nil {
		return err
	}
	path, ok, err := manager.Save(ctx, filters, c.Title)
	return report(out, path, ok, err)
}

// FolderCmd picks an existing directory.
type FolderCmd struct {
	Title string `short:"t" help:"Dialog title."`
}

// Run shows a folder dialog.
func (c *FolderCmd) Run(ctx context.Context, manager *filedialog.Manager, out io.Writer) error {
	path, ok, err := manager.OpenFolder(ctx, c.Title)
	return report(out, path, ok, err)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("filepick"),
		kong.Description("Ask the user for a file or folder with a native dialog."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, kctx, &cli)
	if errors.Is(err, errNoSelection) {
		stop()
		os.Exit(exitNoSelection)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, kctx *kong.Context, cli *CLI) error {
	cfg := settings.Load(cli.dialogSettings())
	logger := createCLILogger(cfg.LogLevel)

	backend, err := newBackend(cfg.Backend)
	if err != nil {
		return err
	}
	window, err := parseWindowHandle(cli.Attach)
	if err != nil {
		return err
	}

	recorder := telemetry.NewRecorder()
	manager := filedialog.NewManager(backend, desktop.ManagerOptions(cfg, recorder, logger)...)
	if err := manager.Initialize(cfg.DefaultDirectory, window); err != nil {
		return fmt.Errorf("initialize dialogs: %w", err)
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	err = kctx.Run(manager)
	for _, event := range recorder.Events() {
		logger.Debug("dialog finished", "mode", event.Mode.String(), "outcome", event.Outcome.String(), "durationMs", event.Duration.Milliseconds())
	}
	return err
}

func (cli *CLI) dialogSettings() settings.DialogSettings {
	return settings.DialogSettings{
		Backend:               cli.Backend,
		DefaultDirectory:      cli.Dir,
		ShowHiddenFiles:       cli.ShowHidden,
		ConfirmOverwrite:      cli.ConfirmOverwrite,
		RememberLastDirectory: cli.RememberDir,
		LogLevel:              cli.LogLevel,
	}
}

func newBackend(name string) (filedialog.Backend, error) {
	switch name {
	case settings.BackendZenity:
		return zenitydialog.New(), nil
	case settings.BackendNative:
		return newNativeBackend()
	default:
		return nil, fmt.Errorf("backend %q is only available inside a desktop window", name)
	}
}

func report(out io.Writer, path string, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return errNoSelection
	}
	_, err = fmt.Fprintln(out, path)
	return err
}

// createCLILogger writes colored logs to stderr so stdout carries only the path.
func createCLILogger(logLevel string) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: settings.ParseLogLevel(logLevel),
	}))
}
