package coeff

import (
	"sort"

	"github.com/phmalek/hoomd-blue/internal/md"
)

// Set maps parameter names to values for one type or type pair.
type Set map[string]float64

func (s Set) Clone() Set {
	c := make(Set, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Missing returns the required names absent from s, in the order given.
func (s Set) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := s[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Table is a coefficient table keyed by md.TypeKey.
type Table struct {
	entries map[md.TypeKey]Set
	touched map[md.TypeKey]struct{}
}

func NewTable() *Table {
	return &Table{
		entries: make(map[md.TypeKey]Set),
		touched: make(map[md.TypeKey]struct{}),
	}
}

// Set merges params into the entry for key, creating it when absent.
func (t *Table) Set(key md.TypeKey, params Set) {
	entry, ok := t.entries[key]
	if !ok {
		entry = make(Set, len(params))
		t.entries[key] = entry
	}
	for name, v := range params {
		entry[name] = v
	}
	t.touched[key] = struct{}{}
}

// Get returns a copy of the entry for key.
func (t *Table) Get(key md.TypeKey) (Set, bool) {
	entry, ok := t.entries[key]
	if !ok {
		return nil, false
	}
	return entry.Clone(), true
}

func (t *Table) Value(key md.TypeKey, name string) (float64, bool) {
	entry, ok := t.entries[key]
	if !ok {
		return 0, false
	}
	v, ok := entry[name]
	return v, ok
}

func (t *Table) Touched(key md.TypeKey) bool {
	_, ok := t.touched[key]
	return ok
}

// Remove drops the entry for key and reports whether it existed.
func (t *Table) Remove(key md.TypeKey) bool {
	if _, ok := t.entries[key]; !ok {
		return false
	}
	delete(t.entries, key)
	delete(t.touched, key)
	return true
}

// Keys returns the populated keys in ascending (A, B) order.
func (t *Table) Keys() []md.TypeKey {
	keys := make([]md.TypeKey, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}
		return keys[i].B < keys[j].B
	})
	return keys
}

func (t *Table) Len() int { return len(t.entries) }
