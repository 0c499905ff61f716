//go:build !windows

package main

import (
	"strconv"
	"strings"
)

// parseWindowHandle reads a numeric window ID or PID. Anything else is kept
// as a string, which macOS treats as an application name.
func parseWindowHandle(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if id, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return int(id), nil
	}
	return raw, nil
}
