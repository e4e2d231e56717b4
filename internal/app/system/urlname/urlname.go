// internal/app/system/urlname/urlname.go
//
// Package urlname converts display names to the URL slugs used by the
// public by-url lookup endpoints.
package urlname

import "strings"

// Format lowercases a name and joins its words with dashes:
// "Alpha Tau" -> "alpha-tau".
func Format(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "-")
}
