package driver

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Registry maps driver codes and aliases to drivers.
//
// A Registry is built once with NewRegistry and is read-only afterwards, so
// lookups need no locking.
type Registry struct {
	byCode  map[string]Driver
	drivers []Driver
}

// NewRegistry builds a registry from the given drivers.
// Codes and aliases are matched case-insensitively and must be unique.
func NewRegistry(drivers ...Driver) (*Registry, error) {
	r := &Registry{byCode: make(map[string]Driver)}

	for _, d := range drivers {
		keys := append([]string{d.Type()}, d.Aliases()...)
		own := make(map[string]bool, len(keys))
		for _, key := range keys {
			k := normalizeCode(key)
			if existing, ok := r.byCode[k]; ok && !own[k] {
				return nil, &DuplicateDriverError{Code: key, Existing: existing.Type(), Incoming: d.Type()}
			}
			own[k] = true
			r.byCode[k] = d
		}
		r.drivers = append(r.drivers, d)
	}

	sort.Slice(r.drivers, func(i, j int) bool {
		return r.drivers[i].Type() < r.drivers[j].Type()
	})
	return r, nil
}

// Get returns the driver registered under code or one of its aliases.
func (r *Registry) Get(code string) (Driver, error) {
	if d, ok := r.Lookup(code); ok {
		return d, nil
	}
	return nil, &UnknownDriverError{Type: code, Available: r.List()}
}

// Lookup is like Get but reports a miss with a boolean.
func (r *Registry) Lookup(code string) (Driver, bool) {
	d, ok := r.byCode[normalizeCode(code)]
	return d, ok
}

// IsRegistered checks if a code or alias is known.
func (r *Registry) IsRegistered(code string) bool {
	_, ok := r.Lookup(code)
	return ok
}

// List returns the primary codes of all drivers (sorted).
func (r *Registry) List() []string {
	codes := make([]string, len(r.drivers))
	for i, d := range r.drivers {
		codes[i] = d.Type()
	}
	return codes
}

// Drivers returns all drivers sorted by code.
func (r *Registry) Drivers() []Driver {
	out := make([]Driver, len(r.drivers))
	copy(out, r.drivers)
	return out
}

// normalizeCode case-folds code. A Caser is stateful, so one is made per call.
func normalizeCode(code string) string {
	return cases.Fold().String(strings.TrimSpace(code))
}
