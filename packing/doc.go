// SPDX-License-Identifier: MIT

// Package packing computes exact packing colorings.
//
// A packing coloring assigns every vertex a positive color such that any two
// vertices with color i are at hop distance greater than i. Vertices in
// different components never conflict. The smallest achievable maximum
// color is the packing chromatic number χ_ρ(G).
//
// Solve encodes the problem as a mixed-integer linear program (see Build)
// over k = |V| candidate colors, hands it to a milp.Solver (milp.NewSAT
// unless WithSolver says otherwise) and decodes the optimal assignment:
//
//	g, _ := builder.BuildGraph(nil, nil, builder.Path(3))
//	c, err := packing.Solve(g)
//	if err != nil { ... }   // invalid input
//	if c == nil { ... }     // no optimal coloring certified
//	fmt.Println(c.Max)      // 2
//
// Only an optimal terminal status yields a Coloring. Every other outcome
// (infeasible, unbounded, limits, cancellation, numerical failure, empty
// graph) is reported as (nil, nil); partial assignments are never returned.
//
// FirstFit supplies a valid, generally suboptimal, coloring that Solve uses
// as the solver's starting incumbent unless WithWarmStart(false) is given.
// Verify re-checks any assignment against the packing property.
package packing
