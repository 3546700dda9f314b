package potential

import (
	"errors"
	"math"

	"github.com/phmalek/hoomd-blue/internal/coeff"
)

// ErrBondStretched is returned when a FENE bond reaches its maximum extent.
var ErrBondStretched = errors.New("potential: FENE bond stretched beyond r0")

type Bond interface {
	Spec
	// Eval returns F/r and V for a bond of squared length r2.
	Eval(r2 float64, p Params) (fr, e float64, err error)
}

// HarmonicBond is V(r) = k/2 (r - r0)^2.
type HarmonicBond struct{}

func (HarmonicBond) Name() string        { return "harmonic" }
func (HarmonicBond) Required() []string  { return []string{"k", "r0"} }
func (HarmonicBond) Defaults() coeff.Set { return coeff.Set{} }

func (HarmonicBond) Prepare(s coeff.Set) Params {
	return Params{s["k"], s["r0"]}
}

func (HarmonicBond) Eval(r2 float64, p Params) (float64, float64, error) {
	k, r0 := p[0], p[1]
	r := math.Sqrt(r2)
	dr := r - r0
	e := 0.5 * k * dr * dr
	if r == 0 {
		return 0, e, nil
	}
	return -k * dr / r, e, nil
}

// FENE is the finitely extensible bond
//
//	V(r) = -k/2 r0^2 ln(1 - (r/r0)^2) + V_WCA(r)
//
// where the WCA term is a purely repulsive LJ(epsilon, sigma) cut and
// shifted at 2^(1/6) sigma.
type FENE struct{}

func (FENE) Name() string        { return "fene" }
func (FENE) Required() []string  { return []string{"k", "r0", "epsilon", "sigma"} }
func (FENE) Defaults() coeff.Set { return coeff.Set{} }

func (FENE) Prepare(s coeff.Set) Params {
	k, r0, eps, sigma := s["k"], s["r0"], s["epsilon"], s["sigma"]
	s6 := math.Pow(sigma, 6)
	return Params{k, r0 * r0, 4 * eps * s6 * s6, 4 * eps * s6, math.Pow(2, 1.0/3) * sigma * sigma, eps}
}

func (FENE) Eval(r2 float64, p Params) (float64, float64, error) {
	k, r0sq, lj1, lj2, wcaCut2, eps := p[0], p[1], p[2], p[3], p[4], p[5]
	if r2 >= r0sq {
		return 0, 0, ErrBondStretched
	}

	ratio := 1 - r2/r0sq
	fr := -k / ratio
	e := -0.5 * k * r0sq * math.Log(ratio)

	if r2 < wcaCut2 && r2 > 0 {
		r2inv := 1 / r2
		r6inv := r2inv * r2inv * r2inv
		fr += r2inv * r6inv * (12*lj1*r6inv - 6*lj2)
		e += r6inv*(lj1*r6inv-lj2) + eps
	}
	return fr, e, nil
}
