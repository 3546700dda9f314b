package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/nlist"
	"github.com/phmalek/hoomd-blue/internal/system"
)

// Built is a system with its force field attached.
type Built struct {
	Sys    *system.Context
	NList  *nlist.NeighborList
	Forces []force.Component
}

// Definition converts the system section into a system.Definition.
func (c *Config) Definition() (system.Definition, error) {
	sc := c.System
	def := system.Definition{
		Box:           md.NewBox(sc.Box[0], sc.Box[1], sc.Box[2]),
		ParticleTypes: sc.ParticleTypes,
		BondTypes:     sc.BondTypes,
		ImproperTypes: sc.ImproperTypes,
	}

	switch {
	case len(sc.Particles) > 0:
		for _, p := range sc.Particles {
			def.Positions = append(def.Positions, md.Vec3{X: p.Pos[0], Y: p.Pos[1], Z: p.Pos[2]})
			def.Types = append(def.Types, p.Type)
		}
	case sc.Lattice != nil && sc.Lattice.N > 0:
		if len(sc.ParticleTypes) == 0 {
			return def, fmt.Errorf("lattice needs at least one particle type")
		}
		n, a := sc.Lattice.N, sc.Lattice.Spacing
		idx := 0
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				for k := 0; k < n; k++ {
					def.Positions = append(def.Positions, md.Vec3{X: float64(i) * a, Y: float64(j) * a, Z: float64(k) * a})
					def.Types = append(def.Types, sc.ParticleTypes[idx%len(sc.ParticleTypes)])
					idx++
				}
			}
		}
	}

	for i, b := range sc.Bonds {
		if len(b.Members) != 2 {
			return def, fmt.Errorf("bond %d: expected 2 members, got %d", i, len(b.Members))
		}
		def.Bonds = append(def.Bonds, system.BondSpec{Type: b.Type, Members: [2]int{b.Members[0], b.Members[1]}})
	}
	for i, im := range sc.Impropers {
		if len(im.Members) != 4 {
			return def, fmt.Errorf("improper %d: expected 4 members, got %d", i, len(im.Members))
		}
		def.Impropers = append(def.Impropers, system.ImproperSpec{
			Type:    im.Type,
			Members: [4]int{im.Members[0], im.Members[1], im.Members[2], im.Members[3]},
		})
	}
	return def, nil
}

// Build initializes a context from the system section and creates every
// force in order. Coefficients are set but not validated; callers run
// UpdateCoeffs (or sim.PrepRun) to check completeness.
func Build(cfg *Config, logger *slog.Logger) (*Built, error) {
	def, err := cfg.Definition()
	if err != nil {
		return nil, err
	}

	mode := compute.ParseMode(cfg.Mode)
	if strings.EqualFold(cfg.Mode, "auto") {
		mode = compute.AutoSelectMode()
	}
	sys := system.New(logger)
	if err := sys.Init(def, mode); err != nil {
		return nil, err
	}

	b := &Built{
		Sys:    sys,
		NList:  nlist.New(cfg.RBuff, logger),
		Forces: make([]force.Component, 0, len(cfg.Forces)),
	}

	reg := force.NewRegistry()
	for i, fc := range cfg.Forces {
		comp, err := reg.New(fc.Type, sys, force.Options{NList: b.NList, RCut: fc.RCut})
		if err != nil {
			return nil, fmt.Errorf("forces[%d]: %w", i, err)
		}
		if err := applyForce(comp, fc); err != nil {
			return nil, fmt.Errorf("forces[%d]: %w", i, err)
		}
		b.Forces = append(b.Forces, comp)
	}
	return b, nil
}

func applyForce(comp force.Component, fc ForceConfig) error {
	if fc.Shift != "" {
		pair, ok := comp.(*force.PairForce)
		if !ok {
			return fmt.Errorf("%s: shift applies to pair forces only", comp.Name())
		}
		if err := pair.SetParams(fc.Shift); err != nil {
			return err
		}
	}
	for _, cc := range fc.Coeffs {
		if err := comp.SetCoeff(cc.Types, coeff.Set(cc.Params)); err != nil {
			return err
		}
	}
	if fc.Disabled {
		comp.Disable()
	}
	return nil
}

// Validate runs UpdateCoeffs on every enabled force and returns the
// failures keyed by force index.
func (b *Built) Validate() map[int]error {
	problems := make(map[int]error)
	for i, f := range b.Forces {
		if !f.Enabled() {
			continue
		}
		if err := f.UpdateCoeffs(); err != nil {
			problems[i] = err
		}
	}
	return problems
}
