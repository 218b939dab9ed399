// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood APIs (Neighbors, NeighborIDs) and adjacency helpers.
// Determinism:
//   - Neighbors() sorts by edge sequence.
//   - NeighborIDs() returns unique IDs sorted lex asc.
// Concurrency:
//   - Read operations hold muVert then muEdgeAdj read locks.
//   - Helpers are called only under the muEdgeAdj write lock by mutating code.

package core

import "sort"

// Neighbors returns all edges leaving id: outgoing edges for directed graphs,
// incident edges for undirected graphs. A self-loop appears once.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity:
//   - Time O(d log d), Space O(d).
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.adjacency[id]))
	for _, bucket := range g.adjacency[id] {
		for eid := range bucket {
			out = append(out, g.edges[eid])
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessEdgeID(out[i].ID, out[j].ID) })

	return out, nil
}

// NeighborIDs returns the unique vertex IDs reachable from id over one edge,
// sorted lexicographically. Self-loops contribute id itself.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity:
//   - Time O(k log k) for k distinct neighbors.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	ids := make([]string, 0, len(g.adjacency[id]))
	for to, bucket := range g.adjacency[id] {
		if len(bucket) > 0 {
			ids = append(ids, to)
		}
	}
	sort.Strings(ids)

	return ids, nil
}

// ensureAdjacency allocates the from→to bucket if missing. muEdgeAdj write lock required.
func ensureAdjacency(g *Graph, from, to string) {
	if g.adjacency[from] == nil {
		g.adjacency[from] = make(map[string]map[string]struct{})
	}
	if g.adjacency[from][to] == nil {
		g.adjacency[from][to] = make(map[string]struct{})
	}
}

// removeAdjacency unlinks e from from→to and, for undirected non-loop edges,
// from to→from, pruning empty buckets. muEdgeAdj write lock required.
func removeAdjacency(g *Graph, e *Edge) {
	unlink := func(a, b string) {
		if m := g.adjacency[a][b]; m != nil {
			delete(m, e.ID)
			if len(m) == 0 {
				delete(g.adjacency[a], b)
			}
		}
	}
	unlink(e.From, e.To)
	if !e.Directed && e.From != e.To {
		unlink(e.To, e.From)
	}
}

// cleanupAdjacency drops buckets pointing at vertices that no longer exist.
// muVert and muEdgeAdj write locks required.
func cleanupAdjacency(g *Graph) {
	for _, toMap := range g.adjacency {
		for v, edgeSet := range toMap {
			if _, ok := g.vertices[v]; !ok || len(edgeSet) == 0 {
				delete(toMap, v)
			}
		}
	}
}
