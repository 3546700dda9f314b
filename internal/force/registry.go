package force

import (
	"fmt"
	"sort"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/nlist"
	"github.com/phmalek/hoomd-blue/internal/potential"
	"github.com/phmalek/hoomd-blue/internal/system"
)

// DefaultRCut is used by pair forces built without an explicit cutoff.
const DefaultRCut = 2.5

// Options carries the construction arguments a factory may need.
type Options struct {
	NList *nlist.NeighborList
	// RCut is the default pair cutoff; nil means DefaultRCut. An explicit
	// zero is kept.
	RCut *float64
}

type Factory func(ctx *system.Context, opts Options) (Component, error)

var (
	pairPotentials = map[string]potential.Pair{
		"gauss":  potential.Gauss{},
		"lj":     potential.LJ{},
		"yukawa": potential.Yukawa{},
	}
	bondPotentials = map[string]potential.Bond{
		"harmonic": potential.HarmonicBond{},
		"fene":     potential.FENE{},
	}
	improperPotentials = map[string]potential.Improper{
		"harmonic": potential.HarmonicImproper{},
	}
)

func init() {
	for name, pot := range pairPotentials {
		coeff.Register("pair."+name, pot.Required()...)
	}
	for name, pot := range bondPotentials {
		coeff.Register("bond."+name, pot.Required()...)
	}
	for name, pot := range improperPotentials {
		coeff.Register("improper."+name, pot.Required()...)
	}
}

type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	for name, pot := range pairPotentials {
		pot := pot
		r.factories["pair."+name] = func(ctx *system.Context, opts Options) (Component, error) {
			rc := DefaultRCut
			if opts.RCut != nil {
				rc = *opts.RCut
			}
			f, err := NewPair(ctx, opts.NList, pot, rc)
			if err != nil {
				return nil, err
			}
			return f, nil
		}
	}
	for name, pot := range bondPotentials {
		pot := pot
		r.factories["bond."+name] = func(ctx *system.Context, _ Options) (Component, error) {
			f, err := NewBond(ctx, pot)
			if err != nil {
				return nil, err
			}
			return f, nil
		}
	}
	for name, pot := range improperPotentials {
		pot := pot
		r.factories["improper."+name] = func(ctx *system.Context, _ Options) (Component, error) {
			f, err := NewImproper(ctx, pot)
			if err != nil {
				return nil, err
			}
			return f, nil
		}
	}

	return r
}

// New builds the force registered as variant, e.g. "pair.gauss".
func (r *Registry) New(variant string, ctx *system.Context, opts Options) (Component, error) {
	fn, ok := r.factories[variant]
	if !ok {
		return nil, &md.ConfigurationError{
			Msg:     fmt.Sprintf("unknown force: %s", variant),
			Wrapped: md.ErrInvalidParam,
		}
	}
	return fn(ctx, opts)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
