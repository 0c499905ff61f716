//go:build windows

package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseWindowHandle reads an HWND given in decimal or 0x-prefixed hex.
func parseWindowHandle(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	hwnd, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("parse window handle %q: %w", raw, err)
	}
	return uintptr(hwnd), nil
}
