package force

import (
	"fmt"
	"math"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/nlist"
	"github.com/phmalek/hoomd-blue/internal/potential"
	"github.com/phmalek/hoomd-blue/internal/system"
)

// Optional per-pair coefficients understood by every pair force.
const (
	CoeffRCut = "r_cut"
	CoeffROn  = "r_on"
)

type pairEntry struct {
	params potential.Params
	cutoff potential.Cutoff
}

// PairForce evaluates a short-ranged pair potential over the candidate
// pairs of a neighbor list.
type PairForce struct {
	*base

	pot     potential.Pair
	nl      *nlist.NeighborList
	rCut    float64
	mode    potential.ShiftMode
	entries map[md.TypeKey]pairEntry
}

// NewPair builds a pair force with default cutoff rCut for every type pair
// and subscribes that cutoff with nl.
func NewPair(ctx *system.Context, nl *nlist.NeighborList, pot potential.Pair, rCut float64) (*PairForce, error) {
	name := "pair." + pot.Name()
	if nl == nil {
		return nil, &md.ConfigurationError{Force: name, Msg: "pair forces need a neighbor list", Wrapped: md.ErrInvalidParam}
	}
	if rCut < 0 || math.IsNaN(rCut) {
		return nil, &md.ConfigurationError{Force: name, Msg: fmt.Sprintf("r_cut %v must be non-negative", rCut), Wrapped: md.ErrInvalidParam}
	}

	b, err := newBase(ctx, name, md.KindParticle, true, pot.Required(), pot.Defaults(), ctx.TypeCount(md.KindParticle))
	if err != nil {
		return nil, err
	}

	p := &PairForce{
		base:    b,
		pot:     pot,
		nl:      nl,
		rCut:    rCut,
		mode:    potential.NoShift,
		entries: make(map[md.TypeKey]pairEntry),
	}
	b.v = p
	b.register(p)

	for _, key := range b.Keys() {
		nl.SubscribeCutoff(b.id, key, rCut)
	}
	return p, nil
}

// SetPairCoeff sets coefficients for the unordered pair (a, b).
func (p *PairForce) SetPairCoeff(a, b string, params coeff.Set) error {
	return p.SetCoeff([]string{a, b}, params)
}

// SetParams sets the energy shift mode. Only no_shift, shift and xplor are
// accepted; anything else fails immediately.
func (p *PairForce) SetParams(mode string) error {
	if p.state == Destroyed {
		return p.destroyedErr()
	}
	m, err := potential.ParseShiftMode(mode)
	if err != nil {
		if ce, ok := err.(*md.ConfigurationError); ok {
			ce.Force = p.name
		}
		return err
	}
	p.mode = m
	p.bound = false
	p.logger.Info("pair params set", "mode", m.String())
	return nil
}

func (p *PairForce) ShiftMode() potential.ShiftMode { return p.mode }
func (p *PairForce) DefaultRCut() float64           { return p.rCut }
func (p *PairForce) Potential() potential.Pair      { return p.pot }

// RCut returns the cutoff in effect for key: its r_cut coefficient if set,
// the default otherwise.
func (p *PairForce) RCut(key md.TypeKey) float64 {
	if rc, ok := p.table.Value(key, CoeffRCut); ok {
		return rc
	}
	return p.rCut
}

// Evaluate returns F/r and V for key at separation r, binding coefficients
// first when needed. Beyond the cutoff both are zero.
func (p *PairForce) Evaluate(key md.TypeKey, r float64) (fr, e float64, err error) {
	if p.state == Destroyed {
		return 0, 0, p.destroyedErr()
	}
	if !p.bound {
		if err := p.UpdateCoeffs(); err != nil {
			return 0, 0, err
		}
	}
	entry, ok := p.entries[key]
	if !ok {
		return 0, 0, &md.ConfigurationError{Force: p.name, Key: p.KeyLabel(key), Wrapped: md.ErrMissingCoeff}
	}
	fr, e, _ = potential.EvalPair(p.pot, entry.params, r*r, entry.cutoff)
	return fr, e, nil
}

func (p *PairForce) check(params coeff.Set) error {
	for _, name := range []string{CoeffRCut, CoeffROn} {
		if v, ok := params[name]; ok && (v < 0 || math.IsNaN(v)) {
			return &md.ConfigurationError{Msg: fmt.Sprintf("%s %v must be non-negative", name, v), Wrapped: md.ErrInvalidParam}
		}
	}
	return nil
}

func (p *PairForce) coeffSet(key md.TypeKey, params coeff.Set) {
	if rc, ok := params[CoeffRCut]; ok {
		p.nl.SubscribeCutoff(p.id, key, rc)
	}
}

func (p *PairForce) coeffRemoved(key md.TypeKey) {
	delete(p.entries, key)
	p.nl.SubscribeCutoff(p.id, key, p.rCut)
}

func (p *PairForce) bind(key md.TypeKey, full coeff.Set) {
	rc := p.rCut
	if v, ok := full[CoeffRCut]; ok {
		rc = v
	}
	ron := rc
	if v, ok := full[CoeffROn]; ok {
		ron = v
	}
	p.entries[key] = pairEntry{
		params: p.pot.Prepare(full),
		cutoff: potential.Cutoff{RCut: rc, ROn: ron, Mode: p.mode},
	}
}

// committed refreshes the neighbor list so that cutoffs set since the last
// update govern the next evaluation.
func (p *PairForce) committed() {
	p.nl.RefreshCutoffs()
}

func (p *PairForce) evaluate(pd *system.ParticleData) (*compute.Accumulator, error) {
	pairs := p.nl.Candidates(pd)

	kernel := func(n int, acc *compute.Accumulator) {
		pr := pairs[n]
		entry, ok := p.entries[md.PairKey(pd.Types[pr.I], pd.Types[pr.J])]
		if !ok {
			return
		}
		fr, e, ok := potential.EvalPair(p.pot, entry.params, pr.R2, entry.cutoff)
		if !ok {
			return
		}
		f := pr.Dr.Scale(fr)
		acc.AddForce(pr.I, f.Scale(-1))
		acc.AddForce(pr.J, f)
		acc.AddEnergy(pr.I, 0.5*e)
		acc.AddEnergy(pr.J, 0.5*e)
		acc.Virial += fr * pr.R2
	}

	return p.backend.Run(len(pairs), pd.N(), kernel), nil
}

func (p *PairForce) detach() {
	p.nl.Unsubscribe(p.id)
}
