// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only policy getters and the Stats snapshot.
// Policy:
//   - No algorithms or hidden state here.
//   - Flags are immutable after NewGraph; getters still take muVert for a consistent read.

package core

// GraphStats is a read-only snapshot of configuration flags and catalog sizes.
type GraphStats struct {
	Directed    bool
	Weighted    bool
	AllowsMulti bool
	AllowsLoops bool
	VertexCount int
	EdgeCount   int
	LoopCount   int
}

// Weighted reports whether non-zero edge weights are permitted.
// Distance computations in this module reject weighted graphs; gate on it early.
func (g *Graph) Weighted() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.weighted
}

// Directed reports whether new edges are one-way.
func (g *Graph) Directed() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.directed
}

// Looped reports whether self-loops are permitted by policy.
func (g *Graph) Looped() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowLoops
}

// Multigraph reports whether parallel edges are permitted by policy.
func (g *Graph) Multigraph() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowMulti
}

// Stats produces a deterministic snapshot of flags and counts.
//
// Implementation:
//   - Stage 1: Under muVert, copy flags and the vertex count.
//   - Stage 2: Under muEdgeAdj, count edges and self-loops.
//
// The two phases never hold both locks at once.
//
// Complexity:
//   - Time O(E), Space O(1).
func (g *Graph) Stats() *GraphStats {
	g.muVert.RLock()
	stats := GraphStats{
		Directed:    g.directed,
		Weighted:    g.weighted,
		AllowsMulti: g.allowMulti,
		AllowsLoops: g.allowLoops,
		VertexCount: len(g.vertices),
	}
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	stats.EdgeCount = len(g.edges)
	for _, e := range g.edges {
		if e.From == e.To {
			stats.LoopCount++
		}
	}
	g.muEdgeAdj.RUnlock()

	return &stats
}
