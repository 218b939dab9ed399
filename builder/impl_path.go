// SPDX-License-Identifier: MIT
// Package: packcolor/builder
//
// impl_path.go - Path(n) and Cycle(n) constructors.
//
// Contract:
//   - Path: n ≥ 1; Cycle: n ≥ 3 (else ErrTooFewVertices).
//   - Vertices are added via cfg.idFn in ascending index order.
//   - Edges (i-1, i) are emitted in increasing i; Cycle closes with (n-1, 0).
//
// Known packing chromatic numbers: P1=1, P2=P3=2, Pn=3 for n ≥ 4;
// Cn=3 when n ≡ 0 (mod 4), otherwise 4 (n ≥ 3, with C3=3).

package builder

import (
	"fmt"

	"github.com/katalvlaran/packcolor/core"
)

const (
	methodPath    = "Path"
	methodCycle   = "Cycle"
	minPathNodes  = 1
	minCycleNodes = 3
)

// Path returns a Constructor that builds the simple path P_n.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}

		return addChain(g, cfg, methodPath, n, false)
	}
}

// Cycle returns a Constructor that builds the simple cycle C_n.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}

		return addChain(g, cfg, methodCycle, n, true)
	}
}

// addChain adds n vertices and the chain 0-1-…-(n-1), optionally closing it.
func addChain(g *core.Graph, cfg builderConfig, method string, n int, closed bool) error {
	if err := addVertices(g, cfg, method, n); err != nil {
		return err
	}
	for i := 1; i < n; i++ {
		if err := addEdge(g, method, cfg.idFn(i-1), cfg.idFn(i)); err != nil {
			return err
		}
	}
	if closed {
		return addEdge(g, method, cfg.idFn(n-1), cfg.idFn(0))
	}

	return nil
}

// addVertices inserts vertices 0..n-1 in index order.
func addVertices(g *core.Graph, cfg builderConfig, method string, n int) error {
	for i := 0; i < n; i++ {
		id := cfg.idFn(i)
		if err := g.AddVertex(id); err != nil {
			return fmt.Errorf("%s: AddVertex(%s): %w", method, id, err)
		}
	}

	return nil
}

// addEdge inserts one unweighted edge with method context on failure.
func addEdge(g *core.Graph, method, u, v string) error {
	if _, err := g.AddEdge(u, v, 0); err != nil {
		return fmt.Errorf("%s: AddEdge(%s→%s): %w", method, u, v, err)
	}

	return nil
}
