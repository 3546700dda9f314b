// Package system holds the mutable state of one simulation run: type rosters,
// particle data, the execution mode and the list of registered computes.
//
// A [Context] is passed explicitly to everything that needs it. It is not
// safe for concurrent mutation; a run has a single configuring goroutine.
//
// [Context.Reset] detaches every registered compute before the type rosters
// and particle data are replaced, so no force keeps parameters indexed by a
// stale roster.
package system
