// SPDX-License-Identifier: MIT
// Package: packcolor/builder
//
// impl_complete.go - Complete(n), Star(n) and Empty(n) constructors.
//
// Contract:
//   - Complete: n ≥ 1; emits each pair {i,j}, i<j, once in lexicographic (i,j) order.
//   - Star: n ≥ 2; vertex 0 is the center, leaves 1..n-1.
//   - Empty: n ≥ 1; n vertices, no edges.
//
// Known packing chromatic numbers: K_n = n; star K_{1,m} = 2 (m ≥ 1);
// edgeless graphs = 1.

package builder

import (
	"fmt"

	"github.com/katalvlaran/packcolor/core"
)

const (
	methodComplete   = "Complete"
	methodStar       = "Star"
	methodEmpty      = "Empty"
	minCompleteNodes = 1
	minStarNodes     = 2
	minEmptyNodes    = 1
)

// Complete returns a Constructor that builds the complete simple graph K_n.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodComplete, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := addEdge(g, methodComplete, cfg.idFn(i), cfg.idFn(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// Star returns a Constructor that builds K_{1,n-1} with center index 0.
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodStar, n); err != nil {
			return err
		}
		center := cfg.idFn(0)
		for i := 1; i < n; i++ {
			if err := addEdge(g, methodStar, center, cfg.idFn(i)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Empty returns a Constructor that adds n isolated vertices.
func Empty(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minEmptyNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodEmpty, n, minEmptyNodes, ErrTooFewVertices)
		}

		return addVertices(g, cfg, methodEmpty, n)
	}
}
