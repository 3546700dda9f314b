// Package md provides the primitives shared by the force-field layer.
//
// The package defines the identifiers and geometry used when configuring
// interaction potentials:
//
//   - [TypeID]: integer handle for a named particle, bond or improper type
//   - [TypeKey]: coefficient table key, a single type or an unordered pair
//   - [Vec3] and [Box]: vectors and the periodic simulation box
//   - [ConfigurationError]: the single error kind raised on misconfiguration
//
// # Errors
//
// Every misconfiguration surfaces as a *[ConfigurationError] wrapping one of
// the package sentinels, so callers can branch with errors.Is:
//
//	if errors.Is(err, md.ErrMissingCoeff) {
//	    // a type or type pair has no complete coefficient set
//	}
package md
