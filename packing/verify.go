// SPDX-License-Identifier: MIT

package packing

import (
	"fmt"

	"github.com/katalvlaran/packcolor/core"
	"github.com/katalvlaran/packcolor/distance"
)

// Verify checks that colors is a packing coloring of g: every vertex has a
// color ≥ 1, no unknown vertex is colored, and any two vertices sharing
// color i are at distance > i (or unreachable). Violations wrap
// ErrInvalidColoring.
func Verify(g *core.Graph, colors map[string]int) error {
	if g == nil {
		return ErrGraphNil
	}
	tab, err := distance.AllPairs(g)
	if err != nil {
		return fmt.Errorf("packing: distance table: %w", err)
	}

	ids := tab.Vertices()
	if len(colors) != len(ids) {
		for id := range colors {
			if _, ok := tab.Index(id); !ok {
				return fmt.Errorf("packing: unknown vertex %q: %w", id, ErrInvalidColoring)
			}
		}
	}
	for _, id := range ids {
		c, ok := colors[id]
		if !ok {
			return fmt.Errorf("packing: vertex %q uncolored: %w", id, ErrInvalidColoring)
		}
		if c < 1 {
			return fmt.Errorf("packing: vertex %q has color %d: %w", id, c, ErrInvalidColoring)
		}
	}
	for _, p := range tab.Pairs(-1) {
		c := colors[p.U]
		if colors[p.V] == c && p.Distance <= c {
			return fmt.Errorf("packing: %q and %q share color %d at distance %d: %w",
				p.U, p.V, c, p.Distance, ErrInvalidColoring)
		}
	}

	return nil
}

// MaxColor returns the largest color in colors, 0 for an empty map.
func MaxColor(colors map[string]int) int {
	m := 0
	for _, c := range colors {
		if c > m {
			m = c
		}
	}

	return m
}
