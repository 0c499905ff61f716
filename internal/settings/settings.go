package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DialogSettings stores how the host drives native file dialogs.
type DialogSettings struct {
	Backend               string `json:"backend"`          // zenity, native or wails.
	DefaultDirectory      string `json:"defaultDirectory"` // Starting folder. Empty = user home.
	ShowHiddenFiles       bool   `json:"showHiddenFiles"`
	ConfirmOverwrite      bool   `json:"confirmOverwrite"`
	RememberLastDirectory bool   `json:"rememberLastDirectory"`
	LogLevel              string `json:"logLevel"`
}

const (
	BackendZenity = "zenity"
	BackendNative = "native"
	BackendWails  = "wails"

	DefaultBackend  = BackendZenity
	DefaultLogLevel = "warn"
)

// Defaults returns DialogSettings with sensible defaults.
func Defaults() DialogSettings {
	return DialogSettings{
		Backend:          DefaultBackend,
		DefaultDirectory: homeDirectory(),
		ConfirmOverwrite: true,
		LogLevel:         DefaultLogLevel,
	}
}

// WithDefaults fills zero-value fields with defaults.
func WithDefaults(s DialogSettings) DialogSettings {
	d := Defaults()
	if strings.TrimSpace(s.Backend) == "" {
		s.Backend = d.Backend
	}
	if strings.TrimSpace(s.DefaultDirectory) == "" {
		s.DefaultDirectory = d.DefaultDirectory
	}
	if strings.TrimSpace(s.LogLevel) == "" {
		s.LogLevel = d.LogLevel
	}
	// ConfirmOverwrite defaults to true but a zero value can't be told apart
	// from an explicit false, so it is left alone here.
	return s
}

// Validate normalizes names and paths, replacing unknown values with defaults.
func Validate(s DialogSettings) DialogSettings {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case BackendZenity, BackendNative, BackendWails:
	default:
		s.Backend = DefaultBackend
	}

	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	case "warning":
		s.LogLevel = "warn"
	default:
		s.LogLevel = DefaultLogLevel
	}

	s.DefaultDirectory = expandHome(strings.TrimSpace(s.DefaultDirectory))
	if s.DefaultDirectory != "" {
		s.DefaultDirectory = filepath.Clean(s.DefaultDirectory)
	}
	return s
}

// Load returns validated settings with defaults applied.
func Load(s DialogSettings) DialogSettings {
	return Validate(WithDefaults(s))
}

// ParseLogLevel converts a log level name to slog.Level. Unknown names map to warn.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseBool reads a boolean environment value such as "1", "true" or "off".
// Empty or unrecognized values are false.
func ParseBool(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "on", "yes":
		return true
	}
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home := homeDirectory()
	if home == "" {
		return path
	}
	return filepath.Join(home, path[1:])
}

func homeDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
