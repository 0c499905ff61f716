//go:build !dialog

package main

import (
	"errors"

	"filepick/filedialog"
)

func newNativeBackend() (filedialog.Backend, error) {
	return nil, errors.New("native backend not available in this build; rebuild with -tags dialog")
}
