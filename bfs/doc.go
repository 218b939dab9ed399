// Package bfs provides breadth-first search over a core.Graph, returning
// unweighted shortest-path distances (hop counts), parent links and visit order.
//
// What
//
//   - Explore vertices in non-decreasing hop distance from a start vertex.
//   - Result.Depth is exactly the single-source hop distance; vertices that are
//     not reachable are absent from it.
//   - WithMaxDepth bounds the exploration radius, WithFilterNeighbor prunes
//     edges and WithOnVisit observes (or aborts) the traversal.
//
// Determinism
//
//	core.NeighborIDs returns neighbors sorted lexicographically, so the visit
//	order is reproducible for a fixed graph.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E) plus neighbor sorting, O(V + E log E) worst case.
//   - Memory: O(V).
//
// Usage
//
//	res, err := bfs.BFS(g, "start", bfs.WithContext(ctx), bfs.WithMaxDepth(3))
//	if err != nil {
//		// ErrGraphNil, ErrStartVertexNotFound, ErrWeightedGraph,
//		// ErrOptionViolation, ErrNeighbors, ctx errors or hook errors
//	}
//	d, ok := res.Reached("target")
//
// The distance package runs one BFS per vertex to build all-pairs hop tables.
package bfs
