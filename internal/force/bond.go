package force

import (
	"fmt"
	"sync"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/potential"
	"github.com/phmalek/hoomd-blue/internal/system"
)

// BondForce evaluates a two-body potential over every bond in the system.
type BondForce struct {
	*base

	pot    potential.Bond
	params map[md.TypeKey]potential.Params
}

// NewBond fails with md.ErrNoInteractions when the system has no bonds.
func NewBond(ctx *system.Context, pot potential.Bond) (*BondForce, error) {
	b, err := newBase(ctx, "bond."+pot.Name(), md.KindBond, false, pot.Required(), pot.Defaults(), ctx.BondCount())
	if err != nil {
		return nil, err
	}

	f := &BondForce{
		base:   b,
		pot:    pot,
		params: make(map[md.TypeKey]potential.Params),
	}
	b.v = f
	b.register(f)
	return f, nil
}

func (f *BondForce) Potential() potential.Bond { return f.pot }

func (f *BondForce) check(coeff.Set) error               { return nil }
func (f *BondForce) coeffSet(md.TypeKey, coeff.Set)      {}
func (f *BondForce) coeffRemoved(key md.TypeKey)         { delete(f.params, key) }
func (f *BondForce) committed()                          {}
func (f *BondForce) detach()                             {}
func (f *BondForce) bind(key md.TypeKey, full coeff.Set) { f.params[key] = f.pot.Prepare(full) }

func (f *BondForce) evaluate(pd *system.ParticleData) (*compute.Accumulator, error) {
	var (
		mu      sync.Mutex
		evalErr error
	)

	kernel := func(n int, acc *compute.Accumulator) {
		bond := pd.Bonds[n]
		dr := pd.Box.MinImage(pd.Pos[bond.B].Sub(pd.Pos[bond.A]))
		fr, e, err := f.pot.Eval(dr.Norm2(), f.params[md.SingleKey(bond.Type)])
		if err != nil {
			mu.Lock()
			if evalErr == nil {
				evalErr = fmt.Errorf("%s: bond %d-%d: %w", f.name, bond.A, bond.B, err)
			}
			mu.Unlock()
			return
		}
		force := dr.Scale(fr)
		acc.AddForce(bond.A, force.Scale(-1))
		acc.AddForce(bond.B, force)
		acc.AddEnergy(bond.A, 0.5*e)
		acc.AddEnergy(bond.B, 0.5*e)
		acc.Virial += fr * dr.Norm2()
	}

	acc := f.backend.Run(len(pd.Bonds), pd.N(), kernel)
	if evalErr != nil {
		return nil, evalErr
	}
	return acc, nil
}
