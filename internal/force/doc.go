// Package force implements the force components a simulation evaluates each
// step: pair potentials, bond potentials and improper potentials.
//
// Every component owns one coefficient table and one compute backend chosen
// from the context's execution mode when the component is built. Building a
// component registers it with the context; [Component.Remove] or a context
// Reset takes it out again.
//
// Coefficients are set incrementally and checked only by
// [Component.UpdateCoeffs], which the simulator calls before the first step:
//
//	gauss, err := force.NewPair(ctx, nl, potential.Gauss{}, 3.0)
//	gauss.SetPairCoeff("A", "A", coeff.Set{"sigma": 1.0})
//	err = gauss.UpdateCoeffs() // md.ErrMissingCoeff: epsilon unset
//	gauss.SetPairCoeff("A", "A", coeff.Set{"epsilon": 1.0})
//	err = gauss.UpdateCoeffs() // nil
//
// Components are not safe for concurrent configuration.
package force
