// Package scallop simulates a two-filament rigid scallop in Stokes flow.
//
// The model is a boundary-element discretization of two hinged rods with a
// prescribed antiphase rotation. Every time step rebuilds a dense
// regularized-Stokeslet interaction system coupling the force densities of
// the boundary elements to the no-slip condition on the rods, closed by a
// force-free constraint that determines the rigid translation speed of the
// hinge:
//
//	sim, err := scallop.New(params)
//	result, err := sim.Run(ctx, out)
//
// Run appends one "t U x" row per step to out and flushes it, so a partial
// run keeps every completed step.
//
// The package is single-threaded by design: each step is a full O(N² nfine)
// assembly followed by one dense direct solve, and a Scallop holds reusable
// scratch buffers that make concurrent stepping unsafe.
package scallop
