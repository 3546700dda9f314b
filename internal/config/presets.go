package config

import (
	"fmt"
	"sort"
)

func cube(l float64) [3]float64 { return [3]float64{l, l, l} }

func cutoff(r float64) *float64 { return &r }

func allPairs(params map[string]float64, types ...string) []CoeffConfig {
	out := make([]CoeffConfig, 0)
	for i := range types {
		for j := i; j < len(types); j++ {
			p := make(map[string]float64, len(params))
			for k, v := range params {
				p[k] = v
			}
			out = append(out, CoeffConfig{Types: []string{types[i], types[j]}, Params: p})
		}
	}
	return out
}

var Presets = map[string]*Config{
	"gauss-fluid": {
		Mode: "cpu", RBuff: 0.4, LogLevel: "info",
		System: SystemConfig{
			Box: cube(7.2), ParticleTypes: []string{"A"},
			Lattice: &LatticeConfig{N: 6, Spacing: 1.2},
		},
		Forces: []ForceConfig{
			{Type: "pair.gauss", RCut: cutoff(3.0), Coeffs: allPairs(map[string]float64{"epsilon": 1, "sigma": 1}, "A")},
		},
		Run: RunConfig{Steps: 10},
	},
	"lj-binary": {
		Mode: "cpu", RBuff: 0.4, LogLevel: "info",
		System: SystemConfig{
			Box: cube(7.2), ParticleTypes: []string{"A", "B"},
			Lattice: &LatticeConfig{N: 6, Spacing: 1.2},
		},
		Forces: []ForceConfig{
			{Type: "pair.lj", RCut: cutoff(2.5), Shift: "xplor", Coeffs: []CoeffConfig{
				{Types: []string{"A", "A"}, Params: map[string]float64{"epsilon": 1.0, "sigma": 1.0, "r_on": 2.0}},
				{Types: []string{"A", "B"}, Params: map[string]float64{"epsilon": 1.5, "sigma": 0.8, "r_on": 2.0}},
				{Types: []string{"B", "B"}, Params: map[string]float64{"epsilon": 0.5, "sigma": 0.88, "r_on": 2.0}},
			}},
		},
		Run: RunConfig{Steps: 10, Parallel: true},
	},
	"bead-spring": {
		Mode: "cpu", RBuff: 0.3, LogLevel: "info",
		System: SystemConfig{
			Box: cube(10), ParticleTypes: []string{"bead"}, BondTypes: []string{"fene"},
			Particles: []ParticleConfig{
				{Type: "bead", Pos: [3]float64{0, 0, 0}},
				{Type: "bead", Pos: [3]float64{0.97, 0, 0}},
				{Type: "bead", Pos: [3]float64{1.94, 0, 0}},
				{Type: "bead", Pos: [3]float64{2.91, 0, 0}},
			},
			Bonds: []GroupConfig{
				{Type: "fene", Members: []int{0, 1}},
				{Type: "fene", Members: []int{1, 2}},
				{Type: "fene", Members: []int{2, 3}},
			},
		},
		Forces: []ForceConfig{
			{Type: "pair.lj", RCut: cutoff(1.122462), Shift: "shift", Coeffs: allPairs(map[string]float64{"epsilon": 1, "sigma": 1}, "bead")},
			{Type: "bond.fene", Coeffs: []CoeffConfig{
				{Types: []string{"fene"}, Params: map[string]float64{"k": 30, "r0": 1.5, "epsilon": 1, "sigma": 1}},
			}},
		},
		Run: RunConfig{Steps: 10},
	},
	"heme": {
		Mode: "cpu", RBuff: 0.4, LogLevel: "info",
		System: SystemConfig{
			Box: cube(10), ParticleTypes: []string{"Fe", "N"}, ImproperTypes: []string{"heme-ang", "heme-out"},
			Particles: []ParticleConfig{
				{Type: "N", Pos: [3]float64{1, 0, 0}},
				{Type: "Fe", Pos: [3]float64{0, 0, 0}},
				{Type: "N", Pos: [3]float64{0, 0, 1}},
				{Type: "N", Pos: [3]float64{0, 1, 1.2}},
			},
			Impropers: []GroupConfig{
				{Type: "heme-ang", Members: []int{0, 1, 2, 3}},
			},
		},
		Forces: []ForceConfig{
			{Type: "improper.harmonic", Coeffs: []CoeffConfig{
				{Types: []string{"heme-ang"}, Params: map[string]float64{"k": 30, "chi": 1.57}},
				{Types: []string{"heme-out"}, Params: map[string]float64{"k": 10, "chi": 0}},
			}},
		},
		Run: RunConfig{Steps: 5},
	},
}

// GetPreset returns a copy of the named preset, or nil. Presets are static,
// so a failed copy is a programming error.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out, err := cfg.Clone()
	if err != nil {
		panic(fmt.Sprintf("preset %s: %v", name, err))
	}
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
