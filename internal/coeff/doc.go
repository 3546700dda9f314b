// Package coeff stores per-type and per-type-pair potential coefficients and
// checks them for completeness.
//
// A [Table] merges parameters incrementally; nothing is validated at set
// time. [Validate] runs right before a simulation step and fails with an
// *md.ConfigurationError naming the first key whose [Set] lacks a required
// parameter.
package coeff
