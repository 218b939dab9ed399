// Package core provides the thread-safe in-memory Graph that every other
// package of this module consumes.
//
// The Graph G = (V,E) is undirected by default and supports:
//
//   - Directed edges (WithDirected(true)); distance computations reject them.
//   - Weighted edges (WithWeighted); distance computations reject them as well,
//     because packing distances are hop counts.
//   - Parallel edges (WithMultiEdges) and self-loops (WithLoops); neither changes
//     shortest-path hop counts.
//   - Constant-time edge operations via nested maps:
//     adjacency[from][to][edgeID] = struct{}{}
//   - Atomic Edge.ID generation ("e1", "e2", …).
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj).
//
// Deterministic enumeration:
//
//	Vertices()      // lexicographic
//	Edges()         // insertion sequence
//	NeighborIDs(id) // lexicographic, unique
//
// The packing solver relies on Vertices() for its variable order, so two
// solves of graphs with equal vertex sets and edges build identical models.
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrEdgeNotFound        – missing edge
//	ErrBadWeight           – non-zero weight on unweighted graph
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
package core
