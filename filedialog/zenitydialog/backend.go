// Package zenitydialog shows dialogs with github.com/ncruces/zenity.
//
// The window handle is passed to zenity.Attach: an HWND (uintptr) on
// Windows, a process ID or application name on macOS, and a window ID on
// other Unix systems. A nil window leaves the dialog unparented.
package zenitydialog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"filepick/filedialog"

	"github.com/ncruces/zenity"
)

// Backend implements filedialog.Backend on top of zenity.
type Backend struct {
	selectFile     func(options ...zenity.Option) (string, error)
	selectFileSave func(options ...zenity.Option) (string, error)
}

// New returns a zenity backed dialog backend.
func New() *Backend {
	return &Backend{
		selectFile:     zenity.SelectFile,
		selectFileSave: zenity.SelectFileSave,
	}
}

// Prepare implements filedialog.Backend.
func (b *Backend) Prepare(ctx context.Context, opts filedialog.Options) (filedialog.Dialog, error) {
	show := b.selectFile
	switch opts.Mode {
	case filedialog.ModeOpen, filedialog.ModeFolder:
	case filedialog.ModeSave:
		show = b.selectFileSave
	default:
		return nil, fmt.Errorf("unsupported dialog mode %s", opts.Mode)
	}

	options := buildOptions(opts)
	return filedialog.DialogFunc(func(ctx context.Context) (string, error) {
		path, err := show(append(options[:len(options):len(options)], zenity.Context(ctx))...)
		if errors.Is(err, zenity.ErrCanceled) {
			return "", filedialog.ErrCancelled
		}
		return path, err
	}), nil
}

func buildOptions(opts filedialog.Options) []zenity.Option {
	options := []zenity.Option{zenity.Title(opts.Title)}
	if opts.DefaultDir != "" {
		options = append(options, zenity.Filename(asDirectory(opts.DefaultDir)))
	}
	if opts.Window != nil {
		options = append(options, zenity.Attach(opts.Window))
	}
	if opts.Mode == filedialog.ModeFolder {
		options = append(options, zenity.Directory())
	}
	if filters := convertFilters(opts.Filters); len(filters) > 0 {
		options = append(options, filters)
	}
	if opts.ShowHidden {
		options = append(options, zenity.ShowHidden())
	}
	if opts.ConfirmOverwrite {
		options = append(options, zenity.ConfirmOverwrite())
	}
	return options
}

func convertFilters(filters []filedialog.Filter) zenity.FileFilters {
	if len(filters) == 0 {
		return nil
	}
	converted := make(zenity.FileFilters, 0, len(filters))
	for _, filter := range filters {
		converted = append(converted, zenity.FileFilter{
			Name:     filter.DisplayName(),
			Patterns: []string{filter.Pattern()},
			CaseFold: true,
		})
	}
	return converted
}

// asDirectory appends a separator so zenity treats dir as the starting
// location rather than a preselected file name.
func asDirectory(dir string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir
	}
	return dir + string(os.PathSeparator)
}
