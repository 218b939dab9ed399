// SPDX-License-Identifier: MIT

package distance

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/packcolor/bfs"
	"github.com/katalvlaran/packcolor/core"
)

// Sentinel errors for distance computation.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("distance: graph is nil")

	// ErrDirectedGraph is returned for directed graphs, whose hop distances are not symmetric.
	ErrDirectedGraph = errors.New("distance: directed graphs not supported")
)

// Option configures AllPairs.
type Option func(*Options)

// Options holds AllPairs parameters.
type Options struct {
	// Ctx is forwarded to every BFS run.
	Ctx context.Context
}

// DefaultOptions returns a background context.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets a custom context for cancellation. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// AllPairs computes the hop distance between every pair of vertices of g by
// running one BFS per vertex.
//
// Implementation:
//   - Stage 1: Validate the graph (nil, directed).
//   - Stage 2: Fix the vertex order from g.Vertices() and fill the buffer with Unreachable.
//   - Stage 3: For each source i, copy BFS depths into row i.
//
// Disconnected graphs are valid: pairs in different components stay Unreachable.
// Edge weights are ignored: every edge counts as one hop.
//
// Complexity:
//   - Time O(V·(V+E)), Space O(V²).
func AllPairs(g *core.Graph, opts ...Option) (*Table, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if g.Directed() {
		return nil, ErrDirectedGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ids := g.Vertices()
	n := len(ids)
	t := &Table{
		ids:   ids,
		index: make(map[string]int, n),
		d:     make([]int, n*n),
	}
	for i, id := range ids {
		t.index[id] = i
	}
	for k := range t.d {
		t.d[k] = Unreachable
	}

	for i, src := range ids {
		res, err := bfs.BFS(g, src, bfs.WithContext(o.Ctx), bfs.WithIgnoreWeights())
		if err != nil {
			return nil, fmt.Errorf("distance: BFS from %q: %w", src, err)
		}
		row := t.d[i*n : (i+1)*n]
		for id, depth := range res.Depth {
			row[t.index[id]] = depth
		}
	}

	return t, nil
}
