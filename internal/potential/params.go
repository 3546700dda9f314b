package potential

import "github.com/phmalek/hoomd-blue/internal/coeff"

// Params is a kernel-specific flat parameter block built by Prepare.
type Params []float64

// Spec is what every kernel family shares: its name, the coefficients it
// requires for each key and optional coefficients with defaults.
type Spec interface {
	Name() string
	Required() []string
	Defaults() coeff.Set
	// Prepare converts a complete coefficient set into Params.
	Prepare(s coeff.Set) Params
}

// WithDefaults returns s merged over the kernel's defaults.
func WithDefaults(k Spec, s coeff.Set) coeff.Set {
	out := k.Defaults().Clone()
	for name, v := range s {
		out[name] = v
	}
	return out
}
