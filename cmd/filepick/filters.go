package main

import (
	"strings"

	"filepick/filedialog"
)

// parseFilters turns "ext=label" (or bare "ext") flag values into filters.
func parseFilters(values []string) ([]filedialog.Filter, error) {
	if len(values) == 0 {
		return nil, nil
	}
	filters := make([]filedialog.Filter, 0, len(values))
	for _, value := range values {
		ext, label, _ := strings.Cut(value, "=")
		filter, err := filedialog.NewFilter(strings.TrimSpace(ext), label)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}
	return filters, nil
}
