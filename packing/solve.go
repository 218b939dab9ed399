// SPDX-License-Identifier: MIT
//
// File: solve.go
// Role: Solve driver: distance table → formulation → MILP solver → decoded coloring.
//
// Single-shot: Build → Solve → Decode on StatusOptimal, absence otherwise.
// Absence is (nil, nil): no partial colors and no z* are ever returned.

package packing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/packcolor/core"
	"github.com/katalvlaran/packcolor/distance"
	"github.com/katalvlaran/packcolor/milp"
)

// Solve computes an optimal packing coloring of g.
//
// It returns (nil, nil) when no optimal coloring is certified: the graph is
// empty, the solver ends with any status other than milp.StatusOptimal, or
// the context is done. Errors are returned only for invalid input: nil
// graph, directed graph, invalid options, malformed model. Edge weights are
// ignored.
func Solve(g *core.Graph, opts ...Option) (*Coloring, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g == nil {
		return nil, ErrGraphNil
	}

	start := time.Now()
	lg := o.Logger

	tab, err := distance.AllPairs(g, distance.WithContext(o.Ctx))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			lg.Warn("distance table interrupted", "err", err)
			return nil, nil
		}

		return nil, fmt.Errorf("packing: distance table: %w", err)
	}
	if tab.Len() == 0 {
		lg.Warn("graph has no vertices, no coloring")
		return nil, nil
	}

	f, err := Build(tab)
	if err != nil {
		return nil, err
	}
	stats := Stats{
		Vertices:        tab.Len(),
		K:               f.K,
		Variables:       f.Model.NumVars(),
		Constraints:     f.Model.NumConstraints(),
		PackConstraints: f.PackRows,
	}
	lg.Debug("formulation built",
		"vertices", stats.Vertices, "variables", stats.Variables,
		"constraints", stats.Constraints, "pack", stats.PackConstraints)

	if o.WarmStart {
		ff := FirstFit(tab)
		f.SetStart(ff)
		stats.WarmStart = MaxColor(ff)
		lg.Debug("warm start", "max_color", stats.WarmStart)
	}

	solver := o.Solver
	if solver == nil {
		solver = milp.NewSAT(milp.WithLogger(lg))
	}
	sol, err := solver.Solve(o.Ctx, f.Model)
	if err != nil {
		return nil, fmt.Errorf("packing: solve: %w", err)
	}
	stats.Elapsed = time.Since(start)
	if sol == nil {
		lg.Error("solver returned no solution")
		return nil, nil
	}
	stats.Status, stats.Nodes = sol.Status, sol.Nodes
	if sol.Status != milp.StatusOptimal {
		lg.Warn("no optimal packing coloring", "status", sol.Status, "nodes", sol.Nodes)
		return nil, nil
	}

	colors, z, ok := f.Decode(sol)
	if !ok {
		lg.Error("optimal solution leaves a vertex uncolored")
		return nil, nil
	}
	lg.Info("packing coloring solved", "max", z, "nodes", sol.Nodes, "elapsed", stats.Elapsed)

	return &Coloring{Colors: colors, Max: z, Stats: stats}, nil
}
