package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Ordering is one `field` / `-field` term of an `ordering` query parameter.
type Ordering struct {
	Field     string
	Ascending bool
}

// IntPtr returns a pointer to a copy of i.
func IntPtr(i int) *int { return &i }
