// SPDX-License-Identifier: MIT
// Package: packcolor/builder
//
// api.go - public entry-point of the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Topology factories live in impl_*.go and return Constructor closures.
//   - Determinism: same inputs/options and constructor order ⇒ identical graphs.
//   - Constructors never panic; they return sentinel errors wrapped with %w.

// Package builder produces deterministic core.Graph fixtures (paths, cycles,
// complete graphs, stars, grids, edgeless graphs and copies of gonum graphs)
// whose packing chromatic numbers are known, for tests and examples.
package builder

import (
	"fmt"

	"github.com/katalvlaran/packcolor/core"
)

// Constructor applies a deterministic graph mutation using the resolved builderConfig.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped as "BuildGraph: %w" and returned immediately.
//
// Complexity:
//   - O(len(bopts)) option resolution plus the cost of each constructor.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}
