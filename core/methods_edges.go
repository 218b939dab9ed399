// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle and queries: AddEdge/RemoveEdge/HasEdge/Edges/EdgeCount, plus nextEdgeID().
// Determinism:
//   - Edges() returns edges sorted by insertion sequence ("e1" < "e2" < ... < "e10").
//   - nextEdgeID() is monotonic ("e" + decimal).

package core

import (
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
)

// edgeIDPrefix is the textual prefix of generated edge identifiers.
const edgeIDPrefix = 'e'

// AddEdge creates a new edge between from and to, creating missing endpoints.
//
// Steps:
//  1. Validate IDs, weight and loop policy.
//  2. Ensure both endpoints via AddVertex.
//  3. Under muEdgeAdj: check multi-edge policy, allocate the ID, store, link adjacency.
//  4. Mirror undirected non-loop edges into adjacency[to][from].
//
// Errors:
//   - ErrEmptyVertexID, ErrBadWeight, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight int64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if !g.weighted && weight != 0 {
		return "", ErrBadWeight
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}

	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if !g.allowMulti && len(g.adjacency[from][to]) > 0 {
		return "", ErrMultiEdgeNotAllowed
	}

	eid := nextEdgeID(g)
	e := &Edge{ID: eid, From: from, To: to, Weight: weight, Directed: g.directed}
	g.edges[eid] = e

	ensureAdjacency(g, from, to)
	g.adjacency[from][to][eid] = struct{}{}
	if !e.Directed && from != to {
		ensureAdjacency(g, to, from)
		g.adjacency[to][from][eid] = struct{}{}
	}

	return eid, nil
}

// RemoveEdge deletes one edge (and its undirected mirror).
//
// Errors:
//   - ErrEdgeNotFound: if eid is unknown.
//
// Complexity: O(1) average.
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, eid)
	removeAdjacency(g, e)

	return nil
}

// HasEdge reports whether at least one edge from→to exists.
// For undirected graphs HasEdge(a,b) == HasEdge(b,a).
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.adjacency[from][to]) > 0
}

// Edges returns all edges sorted by their insertion sequence.
// The returned pointers refer to live catalog entries; treat them as read-only.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return lessEdgeID(out[i].ID, out[j].ID) })

	return out
}

// EdgeCount returns the number of edges in the catalog.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// nextEdgeID returns "e<N>" for the next value of the atomic counter.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 21)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}

// lessEdgeID orders generated IDs numerically ("e2" < "e10") and falls back
// to plain string order for anything else.
func lessEdgeID(a, b string) bool {
	na, okA := edgeSeq(a)
	nb, okB := edgeSeq(b)
	if okA && okB {
		return na < nb
	}

	return a < b
}

func edgeSeq(id string) (uint64, bool) {
	if !strings.HasPrefix(id, string(edgeIDPrefix)) {
		return 0, false
	}
	n, err := strconv.ParseUint(id[1:], 10, 64)

	return n, err == nil
}
