// Package viz renders force-field state in the terminal.
//
//   - [RenderValidation]: per-force completeness report
//   - [RenderRun]: energy summary of a finished run
//   - [PlotPair]: V(r) of one type pair as an ASCII graph
//   - [NewInspector]: Bubble Tea browser over the registered forces
//
// # Inspector Key Bindings
//
//	↑/↓ k/j - Select force
//	Enter   - Toggle coefficient detail
//	U       - Run UpdateCoeffs on the selected force
//	E       - Enable/disable the selected force
//	T       - Cycle color themes
//	Q       - Quit
package viz
