package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a field-level validation error. Fields maps a request field name
// to a human-readable message.
type Error struct {
	Fields map[string]string
}

// Error returns the field errors joined in field-name order.
func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return strings.Join(parts, "; ")
}
