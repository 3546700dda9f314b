package force

import (
	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/potential"
	"github.com/phmalek/hoomd-blue/internal/system"
)

// ImproperForce evaluates an angular potential on every improper
// quadruplet. Coefficients are keyed by improper type.
type ImproperForce struct {
	*base

	pot    potential.Improper
	params map[md.TypeKey]potential.Params
}

// NewImproper fails with md.ErrNoInteractions when the system defines no
// impropers.
func NewImproper(ctx *system.Context, pot potential.Improper) (*ImproperForce, error) {
	b, err := newBase(ctx, "improper."+pot.Name(), md.KindImproper, false, pot.Required(), pot.Defaults(), ctx.ImproperCount())
	if err != nil {
		return nil, err
	}

	f := &ImproperForce{
		base:   b,
		pot:    pot,
		params: make(map[md.TypeKey]potential.Params),
	}
	b.v = f
	b.register(f)
	return f, nil
}

// SetImproperCoeff sets coefficients for one improper type, e.g.
// SetImproperCoeff("heme-ang", coeff.Set{"k": 30, "chi": 1.57}).
func (f *ImproperForce) SetImproperCoeff(improperType string, params coeff.Set) error {
	return f.SetCoeff([]string{improperType}, params)
}

func (f *ImproperForce) Potential() potential.Improper { return f.pot }

func (f *ImproperForce) check(coeff.Set) error               { return nil }
func (f *ImproperForce) coeffSet(md.TypeKey, coeff.Set)      {}
func (f *ImproperForce) coeffRemoved(key md.TypeKey)         { delete(f.params, key) }
func (f *ImproperForce) committed()                          {}
func (f *ImproperForce) detach()                             {}
func (f *ImproperForce) bind(key md.TypeKey, full coeff.Set) { f.params[key] = f.pot.Prepare(full) }

func (f *ImproperForce) evaluate(pd *system.ParticleData) (*compute.Accumulator, error) {
	kernel := func(n int, acc *compute.Accumulator) {
		im := pd.Impropers[n]
		xi, xj, xk, xl := pd.Pos[im.A], pd.Pos[im.B], pd.Pos[im.C], pd.Pos[im.D]
		rij := pd.Box.MinImage(xi.Sub(xj))
		rkj := pd.Box.MinImage(xk.Sub(xj))
		rkl := pd.Box.MinImage(xk.Sub(xl))

		chi, degenerate := potential.Dihedral(rij, rkj, rkl)
		if degenerate {
			return
		}
		dv, e := f.pot.Eval(chi, f.params[md.SingleKey(im.Type)])
		forces := potential.DihedralForces(rij, rkj, rkl, dv)

		for slot, idx := range [4]int{im.A, im.B, im.C, im.D} {
			acc.AddForce(idx, forces[slot])
			acc.AddEnergy(idx, 0.25*e)
		}
	}

	return f.backend.Run(len(pd.Impropers), pd.N(), kernel), nil
}
