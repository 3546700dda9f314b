package metrics

import (
	"math"
	"testing"

	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/md"
)

func accumulator(energies ...float64) *compute.Accumulator {
	acc := compute.NewAccumulator(len(energies))
	for i, e := range energies {
		acc.AddEnergy(i, e)
	}
	return acc
}

func TestEnergyMean(t *testing.T) {
	m := NewEnergy()
	m.Observe(0, accumulator(1, 2))
	m.Observe(1, accumulator(2, 3))

	if got := m.Value(); math.Abs(got-4) > 1e-12 {
		t.Errorf("expected mean energy 4, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	tests := []struct {
		name     string
		energies []float64
		want     float64
	}{
		{"constant", []float64{2, 2, 2}, 0},
		{"relative", []float64{2, 2.5, 1.8}, 0.25},
		{"zero start", []float64{0, 0.1}, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewEnergyDrift()
			for i, e := range tt.energies {
				m.Observe(i, accumulator(e))
			}
			if got := m.Value(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected drift %f, got %f", tt.want, got)
			}
		})
	}
}

func TestStability(t *testing.T) {
	s := NewStability(10)
	if s.Value() != 1.0 {
		t.Error("expected full stability with no samples")
	}

	calm := compute.NewAccumulator(2)
	calm.AddForce(0, md.Vec3{X: 1})
	wild := compute.NewAccumulator(2)
	wild.AddForce(1, md.Vec3{Y: 50})

	s.Observe(0, calm)
	s.Observe(1, wild)
	if got := s.Value(); got != 0.5 {
		t.Errorf("expected stability 0.5, got %f", got)
	}
}

func TestForceBalance(t *testing.T) {
	b := NewForceBalance()

	acc := compute.NewAccumulator(2)
	acc.AddForce(0, md.Vec3{X: 3})
	acc.AddForce(1, md.Vec3{X: -3})
	b.Observe(0, acc)
	if b.Value() != 0 {
		t.Errorf("expected balanced forces, got %f", b.Value())
	}

	acc.AddForce(1, md.Vec3{Z: 0.5})
	b.Observe(1, acc)
	if b.Value() != 0.5 {
		t.Errorf("expected imbalance 0.5, got %f", b.Value())
	}
}
