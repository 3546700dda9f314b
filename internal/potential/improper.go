package potential

import (
	"math"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/md"
)

type Improper interface {
	Spec
	// Eval returns dV/dchi and V at angle chi.
	Eval(chi float64, p Params) (dvdchi, e float64)
}

// HarmonicImproper is V(chi) = k/2 (chi - chi0)^2, with the deviation
// wrapped into [-pi, pi].
type HarmonicImproper struct{}

func (HarmonicImproper) Name() string        { return "harmonic" }
func (HarmonicImproper) Required() []string  { return []string{"k", "chi"} }
func (HarmonicImproper) Defaults() coeff.Set { return coeff.Set{} }

func (HarmonicImproper) Prepare(s coeff.Set) Params {
	return Params{s["k"], s["chi"]}
}

func (HarmonicImproper) Eval(chi float64, p Params) (float64, float64) {
	k, chi0 := p[0], p[1]
	d := wrapAngle(chi - chi0)
	return k * d, 0.5 * k * d * d
}

func wrapAngle(a float64) float64 {
	return a - 2*math.Pi*math.Round(a/(2*math.Pi))
}

// Dihedral returns the signed dihedral angle of the quadruplet i-j-k-l
// given the separations rij = xi-xj, rkj = xk-xj and rkl = xk-xl.
// degenerate is true when three of the points are collinear.
func Dihedral(rij, rkj, rkl md.Vec3) (phi float64, degenerate bool) {
	m := rij.Cross(rkj)
	n := rkj.Cross(rkl)
	mm, nn := m.Norm2(), n.Norm2()
	if mm == 0 || nn == 0 {
		return 0, true
	}

	cos := m.Dot(n) / math.Sqrt(mm*nn)
	cos = math.Max(-1, math.Min(1, cos))
	phi = math.Acos(cos)
	if rij.Dot(n) < 0 {
		phi = -phi
	}
	return phi, false
}

// DihedralForces distributes -dV/dphi over the four particles. The result
// is ordered i, j, k, l and sums to zero.
func DihedralForces(rij, rkj, rkl md.Vec3, dvdphi float64) [4]md.Vec3 {
	m := rij.Cross(rkj)
	n := rkj.Cross(rkl)
	mm, nn := m.Norm2(), n.Norm2()
	rkj2 := rkj.Norm2()
	nrkj := math.Sqrt(rkj2)

	fi := m.Scale(-dvdphi * nrkj / mm)
	fl := n.Scale(dvdphi * nrkj / nn)

	p := rij.Dot(rkj) / rkj2
	q := rkl.Dot(rkj) / rkj2
	s := fi.Scale(p).Sub(fl.Scale(q))

	fj := fi.Sub(s)
	fk := fl.Add(s)

	return [4]md.Vec3{fi, fj.Scale(-1), fk.Scale(-1), fl}
}
