package system

import (
	"fmt"

	"github.com/phmalek/hoomd-blue/internal/md"
)

type Bond struct {
	Type md.TypeID
	A, B int
}

// Improper is a dihedral-like quadruplet i-j-k-l.
type Improper struct {
	Type       md.TypeID
	A, B, C, D int
}

// ParticleData is the read side of the particle arrays a backend evaluates.
type ParticleData struct {
	Box       md.Box
	Pos       []md.Vec3
	Types     []md.TypeID
	Bonds     []Bond
	Impropers []Improper
}

func (p *ParticleData) N() int { return len(p.Pos) }

// Definition describes the initial system handed to Init and Reset.
type Definition struct {
	Box           md.Box
	ParticleTypes []string
	BondTypes     []string
	ImproperTypes []string
	Positions     []md.Vec3
	Types         []string
	Bonds         []BondSpec
	Impropers     []ImproperSpec
}

type BondSpec struct {
	Type    string
	Members [2]int
}

type ImproperSpec struct {
	Type    string
	Members [4]int
}

func buildParticleData(def Definition, particles, bonds, impropers *Roster) (*ParticleData, error) {
	if len(def.Types) != len(def.Positions) {
		return nil, &md.ConfigurationError{
			Msg:     fmt.Sprintf("%d positions but %d particle types", len(def.Positions), len(def.Types)),
			Wrapped: md.ErrInvalidParam,
		}
	}

	pd := &ParticleData{
		Box:       def.Box,
		Pos:       make([]md.Vec3, len(def.Positions)),
		Types:     make([]md.TypeID, len(def.Types)),
		Bonds:     make([]Bond, 0, len(def.Bonds)),
		Impropers: make([]Improper, 0, len(def.Impropers)),
	}
	copy(pd.Pos, def.Positions)

	for i, name := range def.Types {
		id, err := particles.Resolve(name)
		if err != nil {
			return nil, err
		}
		pd.Types[i] = id
	}

	n := len(pd.Pos)
	for _, b := range def.Bonds {
		id, err := bonds.Resolve(b.Type)
		if err != nil {
			return nil, err
		}
		if err := checkMembers(n, b.Members[:]); err != nil {
			return nil, err
		}
		pd.Bonds = append(pd.Bonds, Bond{Type: id, A: b.Members[0], B: b.Members[1]})
	}

	for _, im := range def.Impropers {
		id, err := impropers.Resolve(im.Type)
		if err != nil {
			return nil, err
		}
		if err := checkMembers(n, im.Members[:]); err != nil {
			return nil, err
		}
		pd.Impropers = append(pd.Impropers, Improper{
			Type: id,
			A:    im.Members[0], B: im.Members[1], C: im.Members[2], D: im.Members[3],
		})
	}

	return pd, nil
}

func checkMembers(n int, members []int) error {
	for _, m := range members {
		if m < 0 || m >= n {
			return &md.ConfigurationError{
				Msg:     fmt.Sprintf("particle index %d out of range [0,%d)", m, n),
				Wrapped: md.ErrInvalidParam,
			}
		}
	}
	return nil
}
