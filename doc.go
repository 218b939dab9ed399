// Package packcolor computes exact packing colorings of graphs.
//
// A packing coloring gives every vertex a positive color so that two vertices
// with the same color i are more than i hops apart. The smallest possible
// maximum color is the packing chromatic number χ_ρ(G).
//
// The library is organized in small subpackages, in dependency order:
//
//	core/      thread-safe in-memory graph: vertices, edges, neighbors
//	bfs/       breadth-first search with context, depth limit and hooks
//	builder/   deterministic graph fixtures (path, cycle, complete, star, grid, gonum import)
//	distance/  all-pairs hop distances as an immutable table
//	milp/      integer linear models, CPLEX LP export, SAT and branch-and-bound solvers
//	packing/   the packing coloring formulation, the Solve driver and verification
//
// Quick example:
//
//	    A───B───C
//
//	is colored A=1, B=2, C=1: A and C are two hops apart, more than 1.
//
//	g, _ := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSymbolIDs()}, builder.Path(3))
//	c, err := packing.Solve(g)
//	// c.Max == 2
//
//	go get github.com/katalvlaran/packcolor
package packcolor
