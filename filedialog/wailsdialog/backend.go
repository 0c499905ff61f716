// Package wailsdialog shows dialogs through the Wails v2 runtime. The window
// handle is the application context Wails passes to OnStartup.
package wailsdialog

import (
	"context"
	"errors"
	"fmt"

	"filepick/filedialog"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ErrWindowNotContext is returned when the window handle is not the Wails
// application context.
var ErrWindowNotContext = errors.New("wails window handle must be the application context")

// Backend implements filedialog.Backend on top of runtime dialogs.
type Backend struct {
	openFile      func(ctx context.Context, opts runtime.OpenDialogOptions) (string, error)
	openDirectory func(ctx context.Context, opts runtime.OpenDialogOptions) (string, error)
	saveFile      func(ctx context.Context, opts runtime.SaveDialogOptions) (string, error)
}

// New returns a backend bound to the Wails runtime.
func New() *Backend {
	return &Backend{
		openFile:      runtime.OpenFileDialog,
		openDirectory: runtime.OpenDirectoryDialog,
		saveFile:      runtime.SaveFileDialog,
	}
}

// Prepare implements filedialog.Backend.
func (b *Backend) Prepare(ctx context.Context, opts filedialog.Options) (filedialog.Dialog, error) {
	appCtx, ok := opts.Window.(context.Context)
	if !ok || appCtx == nil {
		return nil, fmt.Errorf("%w: got %T", ErrWindowNotContext, opts.Window)
	}

	filters := convertFilters(opts.Filters)
	switch opts.Mode {
	case filedialog.ModeOpen:
		dialogOpts := runtime.OpenDialogOptions{
			DefaultDirectory: opts.DefaultDir,
			Title:            opts.Title,
			Filters:          filters,
			ShowHiddenFiles:  opts.ShowHidden,
		}
		return filedialog.DialogFunc(func(context.Context) (string, error) {
			return b.openFile(appCtx, dialogOpts)
		}), nil
	case filedialog.ModeFolder:
		dialogOpts := runtime.OpenDialogOptions{
			DefaultDirectory:     opts.DefaultDir,
			Title:                opts.Title,
			ShowHiddenFiles:      opts.ShowHidden,
			CanCreateDirectories: true,
		}
		return filedialog.DialogFunc(func(context.Context) (string, error) {
			return b.openDirectory(appCtx, dialogOpts)
		}), nil
	case filedialog.ModeSave:
		dialogOpts := runtime.SaveDialogOptions{
			DefaultDirectory:     opts.DefaultDir,
			Title:                opts.Title,
			Filters:              filters,
			ShowHiddenFiles:      opts.ShowHidden,
			CanCreateDirectories: true,
		}
		return filedialog.DialogFunc(func(context.Context) (string, error) {
			return b.saveFile(appCtx, dialogOpts)
		}), nil
	default:
		return nil, fmt.Errorf("unsupported dialog mode %s", opts.Mode)
	}
}

func convertFilters(filters []filedialog.Filter) []runtime.FileFilter {
	if len(filters) == 0 {
		return nil
	}
	converted := make([]runtime.FileFilter, 0, len(filters))
	for _, filter := range filters {
		converted = append(converted, runtime.FileFilter{
			DisplayName: fmt.Sprintf("%s (%s)", filter.DisplayName(), filter.Pattern()),
			Pattern:     filter.Pattern(),
		})
	}
	return converted
}
