//go:build dialog

package main

import (
	"filepick/filedialog"
	"filepick/filedialog/nativedialog"
)

func newNativeBackend() (filedialog.Backend, error) {
	return nativedialog.New(), nil
}
