// internal/app/system/normalize/normalize.go
//
// Package normalize provides small input-normalization helpers used by
// stores and handlers so the same value always lands in the database in
// the same shape.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a query or form value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Tag trims a tag. Tags are case-sensitive, so only surrounding
// whitespace is removed.
func Tag(s string) string {
	return strings.TrimSpace(s)
}
