package docxtpl

import (
	"fmt"
	"sort"
	"strings"
)

// FieldMap maps placeholder keys to literal replacement values. Keys are
// case-insensitive and unique; iteration order is longest key first (ties
// broken lexicographically) so that no key can match inside the token of a
// longer key that contains it.
type FieldMap struct {
	keys   []string
	values map[string]string
	sorted bool
}

// NewFieldMap returns an empty field map.
func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]string)}
}

// FieldMapFrom builds a field map from a plain map. Keys that collide
// case-insensitively are rejected.
func FieldMapFrom(fields map[string]string) (*FieldMap, error) {
	m := NewFieldMap()
	// Plain map iteration is randomized; insert in sorted order so error
	// reporting is deterministic.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := m.Set(name, fields[name]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Set adds a key/value pair. The key is stored upper-cased; duplicates
// (case-insensitive) and empty keys are errors.
func (m *FieldMap) Set(key, value string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return fmt.Errorf("field key must not be empty")
	}
	if _, exists := m.values[key]; exists {
		return fmt.Errorf("duplicate field key %q", key)
	}
	m.values[key] = value
	m.keys = append(m.keys, key)
	m.sorted = false
	return nil
}

// Len returns the number of keys.
func (m *FieldMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in substitution order: longest first, ties
// lexicographic. The order is deterministic across runs.
func (m *FieldMap) Keys() []string {
	if !m.sorted {
		sort.Slice(m.keys, func(i, j int) bool {
			if len(m.keys[i]) != len(m.keys[j]) {
				return len(m.keys[i]) > len(m.keys[j])
			}
			return m.keys[i] < m.keys[j]
		})
		m.sorted = true
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Value looks up a key case-insensitively.
func (m *FieldMap) Value(key string) (string, bool) {
	v, ok := m.values[strings.ToUpper(strings.TrimSpace(key))]
	return v, ok
}
