package coeff

import "sort"

var required = map[string][]string{}

// Register fixes the required parameter names for a force variant.
// Registering the same variant twice replaces the earlier names.
func Register(variant string, names ...string) {
	c := make([]string, len(names))
	copy(c, names)
	required[variant] = c
}

// RequiredNames returns the parameter names a variant needs for every key.
func RequiredNames(variant string) ([]string, bool) {
	names, ok := required[variant]
	if !ok {
		return nil, false
	}
	c := make([]string, len(names))
	copy(c, names)
	return c, true
}

// Variants lists every registered force name in sorted order.
func Variants() []string {
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
