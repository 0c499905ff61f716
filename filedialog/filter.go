package filedialog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// extensionRules rejects anything a native picker could misread as a pattern
// or a path. Separators are checked separately so the error names them.
const extensionRules = "required,startsnotwith=.,excludesall=*?;: \t\x00"

var validate = validator.New()

// Filter restricts a dialog to one file extension.
type Filter struct {
	extension string
	label     string
}

// NewFilter builds a filter for extension (without the leading dot).
func NewFilter(extension string, label string) (Filter, error) {
	if strings.ContainsAny(extension, `/\`) {
		return Filter{}, fmt.Errorf("%w: %q contains a path separator", ErrInvalidExtension, extension)
	}
	if err := validate.Var(extension, extensionRules); err != nil {
		return Filter{}, fmt.Errorf("%w: %q: %w", ErrInvalidExtension, extension, err)
	}
	return Filter{extension: extension, label: strings.TrimSpace(label)}, nil
}

// MustFilter is like NewFilter but panics on an invalid extension.
func MustFilter(extension string, label string) Filter {
	filter, err := NewFilter(extension, label)
	if err != nil {
		panic(err)
	}
	return filter
}

// Extension returns the extension without a leading dot.
func (f Filter) Extension() string {
	return f.extension
}

// Label returns the label given at construction.
func (f Filter) Label() string {
	return f.label
}

// Pattern returns the glob form, e.g. "*.txt".
func (f Filter) Pattern() string {
	return "*." + f.extension
}

// DisplayName returns the label, or the pattern when no label was given.
func (f Filter) DisplayName() string {
	if f.label == "" {
		return f.Pattern()
	}
	return f.label
}

// Matches reports whether the file name in path ends in ".ext" with at least
// one character before the dot. The comparison ignores case.
func (f Filter) Matches(path string) bool {
	if f.extension == "" {
		return false
	}
	name := strings.ToLower(filepath.Base(path))
	suffix := "." + strings.ToLower(f.extension)
	return len(name) > len(suffix) && strings.HasSuffix(name, suffix)
}

// MatchesAny reports whether path is selectable under filters.
// An empty filter list selects everything.
func MatchesAny(filters []Filter, path string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, filter := range filters {
		if filter.Matches(path) {
			return true
		}
	}
	return false
}

func checkDuplicateExtensions(filters []Filter) error {
	seen := make(map[string]struct{}, len(filters))
	for _, filter := range filters {
		if filter.extension == "" {
			return fmt.Errorf("%w: zero-value filter", ErrInvalidExtension)
		}
		key := strings.ToLower(filter.extension)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate extension %q", ErrInvalidExtension, filter.extension)
		}
		seen[key] = struct{}{}
	}
	return nil
}
