// internal/app/system/fieldmask/fieldmask.go
//
// Package fieldmask applies a proposed set of changes against a
// statically declared whitelist of mutable field names. Any key outside
// the whitelist rejects the whole update, so a request body can never
// touch fields the endpoint did not explicitly open up.
package fieldmask

import (
	"fmt"
	"sort"
)

// Mask is the set of field names one endpoint allows to change.
type Mask map[string]struct{}

// New builds a Mask from field names.
func New(fields ...string) Mask {
	m := make(Mask, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return m
}

// Apply validates changes against the mask and returns only the allowed
// entries. It fails on the first unknown key and on an empty change set,
// leaving the caller's aggregate untouched in both cases.
func (m Mask) Apply(changes map[string]any) (map[string]any, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	// Deterministic error messages regardless of map iteration order.
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(changes))
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return nil, fmt.Errorf("field %q cannot be updated", k)
		}
		out[k] = changes[k]
	}
	return out, nil
}
