package metrics

import (
	"math"

	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/md"
)

// Stability is the fraction of steps in which no particle force exceeds
// threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(_ int, acc *compute.Accumulator) {
	s.samples++
	for _, f := range acc.Force {
		if f.Norm() > s.threshold || !f.IsValid() {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// ForceBalance is the largest magnitude of the summed force over all
// particles. Pairwise and bonded terms cancel, so it should stay near zero.
type ForceBalance struct {
	name string
	max  float64
}

func NewForceBalance() *ForceBalance {
	return &ForceBalance{name: "force_balance"}
}

func (b *ForceBalance) Name() string { return b.name }

func (b *ForceBalance) Observe(_ int, acc *compute.Accumulator) {
	var net md.Vec3
	for _, f := range acc.Force {
		net = net.Add(f)
	}
	b.max = math.Max(b.max, net.Norm())
}

func (b *ForceBalance) Value() float64 { return b.max }
func (b *ForceBalance) Reset()         { b.max = 0 }
