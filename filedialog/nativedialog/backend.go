//go:build dialog

package nativedialog

import (
	"context"
	"errors"
	"fmt"

	"filepick/filedialog"

	"github.com/sqweek/dialog"
)

// Backend implements filedialog.Backend on top of sqweek/dialog.
type Backend struct{}

// New returns a sqweek backed dialog backend.
func New() *Backend {
	return &Backend{}
}

// Prepare implements filedialog.Backend.
func (b *Backend) Prepare(ctx context.Context, opts filedialog.Options) (filedialog.Dialog, error) {
	switch opts.Mode {
	case filedialog.ModeOpen, filedialog.ModeSave:
		builder := fileBuilder(opts)
		if opts.Mode == filedialog.ModeSave {
			return filedialog.DialogFunc(func(context.Context) (string, error) {
				return translate(builder.Save())
			}), nil
		}
		return filedialog.DialogFunc(func(context.Context) (string, error) {
			return translate(builder.Load())
		}), nil
	case filedialog.ModeFolder:
		builder := directoryBuilder(opts)
		return filedialog.DialogFunc(func(context.Context) (string, error) {
			return translate(builder.Browse())
		}), nil
	default:
		return nil, fmt.Errorf("unsupported dialog mode %s", opts.Mode)
	}
}

func fileBuilder(opts filedialog.Options) *dialog.FileBuilder {
	builder := dialog.File().Title(opts.Title)
	if opts.DefaultDir != "" {
		builder = builder.SetStartDir(opts.DefaultDir)
	}
	for _, filter := range opts.Filters {
		builder = builder.Filter(filter.DisplayName(), filter.Extension())
	}
	return builder
}

func directoryBuilder(opts filedialog.Options) *dialog.DirectoryBuilder {
	builder := dialog.Directory().Title(opts.Title)
	if opts.DefaultDir != "" {
		builder = builder.SetStartDir(opts.DefaultDir)
	}
	return builder
}

func translate(path string, err error) (string, error) {
	if errors.Is(err, dialog.ErrCancelled) {
		return "", filedialog.ErrCancelled
	}
	return path, err
}
