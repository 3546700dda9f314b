// Package nlist tracks the cutoff radii pair forces subscribe and builds
// candidate pair lists from them.
//
// Subscriptions are recorded immediately but the governing cutoff for a
// type pair, the largest radius any subscriber asked for, is recomputed
// only when RefreshCutoffs is called.
package nlist

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/system"
)

type NeighborList struct {
	rBuff   float64
	subs    map[uuid.UUID]map[md.TypeKey]float64
	cutoffs map[md.TypeKey]float64
	rMax    float64
	logger  *slog.Logger
}

// New returns an empty neighbor list with buffer distance rBuff.
func New(rBuff float64, logger *slog.Logger) *NeighborList {
	if logger == nil {
		logger = slog.Default()
	}
	if rBuff < 0 {
		rBuff = 0
	}
	return &NeighborList{
		rBuff:   rBuff,
		subs:    make(map[uuid.UUID]map[md.TypeKey]float64),
		cutoffs: make(map[md.TypeKey]float64),
		logger:  logger,
	}
}

func (n *NeighborList) RBuff() float64 { return n.rBuff }

// SubscribeCutoff records owner's cutoff for key, replacing any earlier
// value from the same owner.
func (n *NeighborList) SubscribeCutoff(owner uuid.UUID, key md.TypeKey, r float64) {
	m, ok := n.subs[owner]
	if !ok {
		m = make(map[md.TypeKey]float64)
		n.subs[owner] = m
	}
	m[key] = r
}

func (n *NeighborList) UnsubscribeCutoff(owner uuid.UUID, key md.TypeKey) {
	if m, ok := n.subs[owner]; ok {
		delete(m, key)
	}
}

// Unsubscribe drops every subscription held by owner.
func (n *NeighborList) Unsubscribe(owner uuid.UUID) {
	delete(n.subs, owner)
}

// RefreshCutoffs recomputes the governing cutoff of every subscribed key.
func (n *NeighborList) RefreshCutoffs() {
	cutoffs := make(map[md.TypeKey]float64)
	rMax := 0.0
	for _, m := range n.subs {
		for key, r := range m {
			if cur, ok := cutoffs[key]; !ok || r > cur {
				cutoffs[key] = r
			}
			if r > rMax {
				rMax = r
			}
		}
	}
	n.cutoffs = cutoffs
	n.rMax = rMax
	n.logger.Debug("neighbor list cutoffs refreshed", "keys", len(cutoffs), "r_max", rMax)
}

// MaxCutoff returns the governing cutoff for key as of the last refresh,
// or 0 when nothing subscribed it.
func (n *NeighborList) MaxCutoff(key md.TypeKey) float64 {
	return n.cutoffs[key]
}

func (n *NeighborList) MaxCutoffPair(a, b md.TypeID) float64 {
	return n.MaxCutoff(md.PairKey(a, b))
}

// RMax is the largest governing cutoff over all keys.
func (n *NeighborList) RMax() float64 { return n.rMax }

// Pair is a candidate interaction i<j with minimum-image separation
// Dr = pos[j] - pos[i].
type Pair struct {
	I, J int
	Dr   md.Vec3
	R2   float64
}

// Candidates returns every pair closer than its governing cutoff plus the
// buffer. Type pairs without a positive cutoff are skipped.
func (n *NeighborList) Candidates(pd *system.ParticleData) []Pair {
	var pairs []Pair
	np := pd.N()
	for i := 0; i < np; i++ {
		for j := i + 1; j < np; j++ {
			rc := n.MaxCutoffPair(pd.Types[i], pd.Types[j])
			if rc <= 0 {
				continue
			}
			dr := pd.Box.MinImage(pd.Pos[j].Sub(pd.Pos[i]))
			r2 := dr.Norm2()
			rl := rc + n.rBuff
			if r2 < rl*rl {
				pairs = append(pairs, Pair{I: i, J: j, Dr: dr, R2: r2})
			}
		}
	}
	return pairs
}
