package potential

import (
	"math"

	"github.com/phmalek/hoomd-blue/internal/coeff"
)

type Pair interface {
	Spec
	// Eval returns F/r and V at squared distance r2.
	Eval(r2 float64, p Params) (fr, e float64)
}

// Cutoff describes the truncation of one type pair.
type Cutoff struct {
	RCut float64
	ROn  float64
	Mode ShiftMode
}

// EvalPair applies the cutoff and shift mode to pot. ok is false at or
// beyond the cutoff, where both outputs are zero.
func EvalPair(pot Pair, p Params, r2 float64, c Cutoff) (fr, e float64, ok bool) {
	rc2 := c.RCut * c.RCut
	if r2 >= rc2 || r2 == 0 {
		return 0, 0, false
	}

	fr, e = pot.Eval(r2, p)

	ron2 := c.ROn * c.ROn
	switch {
	case c.Mode == Shift, c.Mode == XPLOR && ron2 > rc2:
		_, ecut := pot.Eval(rc2, p)
		e -= ecut
	case c.Mode == XPLOR && r2 >= ron2:
		// Switching function S(r) blends V smoothly to zero between r_on and r_cut.
		denom := rc2 - ron2
		denom = denom * denom * denom
		d := rc2 - r2
		s := d * d * (rc2 + 2*r2 - 3*ron2) / denom
		dsDivR := 12 * (r2 - ron2) * d / denom
		fr = s*fr - dsDivR*e
		e *= s
	}
	return fr, e, true
}

// Gauss is V(r) = epsilon * exp(-r^2 / (2 sigma^2)).
type Gauss struct{}

func (Gauss) Name() string        { return "gauss" }
func (Gauss) Required() []string  { return []string{"epsilon", "sigma"} }
func (Gauss) Defaults() coeff.Set { return coeff.Set{} }

func (Gauss) Prepare(s coeff.Set) Params {
	sigma := s["sigma"]
	return Params{s["epsilon"], 1 / (sigma * sigma)}
}

func (Gauss) Eval(r2 float64, p Params) (float64, float64) {
	eps, invSigma2 := p[0], p[1]
	e := eps * math.Exp(-0.5*r2*invSigma2)
	return e * invSigma2, e
}

// LJ is V(r) = 4 epsilon ((sigma/r)^12 - alpha (sigma/r)^6).
type LJ struct{}

func (LJ) Name() string        { return "lj" }
func (LJ) Required() []string  { return []string{"epsilon", "sigma"} }
func (LJ) Defaults() coeff.Set { return coeff.Set{"alpha": 1.0} }

func (LJ) Prepare(s coeff.Set) Params {
	eps, sigma, alpha := s["epsilon"], s["sigma"], s["alpha"]
	s6 := math.Pow(sigma, 6)
	return Params{4 * eps * s6 * s6, alpha * 4 * eps * s6}
}

func (LJ) Eval(r2 float64, p Params) (float64, float64) {
	lj1, lj2 := p[0], p[1]
	r2inv := 1 / r2
	r6inv := r2inv * r2inv * r2inv
	fr := r2inv * r6inv * (12*lj1*r6inv - 6*lj2)
	e := r6inv * (lj1*r6inv - lj2)
	return fr, e
}

// Yukawa is V(r) = epsilon * exp(-kappa r) / r.
type Yukawa struct{}

func (Yukawa) Name() string        { return "yukawa" }
func (Yukawa) Required() []string  { return []string{"epsilon", "kappa"} }
func (Yukawa) Defaults() coeff.Set { return coeff.Set{} }

func (Yukawa) Prepare(s coeff.Set) Params {
	return Params{s["epsilon"], s["kappa"]}
}

func (Yukawa) Eval(r2 float64, p Params) (float64, float64) {
	eps, kappa := p[0], p[1]
	r := math.Sqrt(r2)
	e := eps * math.Exp(-kappa*r) / r
	return e * (1 + kappa*r) / r2, e
}
