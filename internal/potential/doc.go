// Package potential implements the scalar interaction functions evaluated by
// force components:
//
//   - pair: [Gauss], [LJ], [Yukawa]
//   - bond: [HarmonicBond], [FENE]
//   - improper: [HarmonicImproper]
//
// Kernels work on prepared [Params] slices rather than coefficient maps so
// the per-pair inner loop does no map lookups. Pair and bond kernels return
// the force magnitude divided by r, the convention that lets callers scale
// the separation vector directly.
package potential
