// SPDX-License-Identifier: MIT
//
// File: bb.go
// Role: LP-based depth-first branch-and-bound.
//
// Search:
//  1. Root: validate the model, seed the incumbent (UB) from a complete and
//     feasible set of start values if the model carries one.
//  2. Each node solves the LP relaxation under its own bounds. Infeasible
//     nodes are dropped; nodes whose bound cannot beat UB are pruned.
//  3. An integral LP optimum becomes the new UB. Otherwise the most fractional
//     integer variable j (value f) is branched on: x_j ≤ ⌊f⌋ and x_j ≥ ⌈f⌉,
//     exploring the child nearer to f first.
//  4. When every objective coefficient sits on an integer variable and is
//     integral, bounds are rounded up and the cutoff row cᵀx ≤ UB − 1 is
//     added to every LP.
//
// Terminal status:
//   - exhausted tree, UB found  → StatusOptimal
//   - exhausted tree, no UB     → StatusInfeasible
//   - unbounded root LP         → StatusUnbounded
//   - LP backend failure        → StatusUndefined (logged, no error)
//   - limit or ctx cancellation → StatusFeasible with UB, StatusNotSolved without
//
// Limits and ctx are checked before every node LP.

package milp

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// BranchAndBound is the in-process exact Solver.
type BranchAndBound struct {
	opts Options
}

// NewBranchAndBound returns a solver configured by opts.
func NewBranchAndBound(opts ...Option) *BranchAndBound {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &BranchAndBound{opts: o}
}

var _ Solver = (*BranchAndBound)(nil)

// bbNode is a pending subproblem: bounds plus the parent's LP bound.
type bbNode struct {
	lo, hi []float64
	bound  float64
	depth  int
}

// bbEngine holds all search data and policies of one Solve call.
type bbEngine struct {
	m      *Model
	relax  *relaxation
	intTol float64
	log    *log.Logger

	// integral objective: bounds may be rounded and a cutoff row applied
	intObj bool

	nodeLimit   int
	useDeadline bool
	deadline    time.Time

	nodes    int
	foundAny bool
	best     []float64
	bestObj  float64 // minimization sense
}

// Solve runs branch-and-bound on m.
// Only invalid options or an invalid model produce an error.
func (b *BranchAndBound) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if b.opts.err != nil {
		return nil, b.opts.err
	}
	if m == nil {
		return nil, ErrNilModel
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("milp: model %q: %w", m.name, err)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	e := &bbEngine{
		m:         m,
		relax:     newRelaxation(m, b.opts.Tolerance),
		intTol:    b.opts.IntegralityTolerance,
		log:       b.opts.Logger,
		nodeLimit: b.opts.NodeLimit,
		bestObj:   math.Inf(1),
	}
	e.intObj = e.integralObjective()
	if b.opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(b.opts.TimeLimit)
	}

	start := time.Now()
	e.log.Info("branch-and-bound started",
		"model", m.name, "vars", len(m.vars), "constraints", len(m.rows), "integral_objective", e.intObj)
	e.seedFromStart()

	st := e.run(ctx)

	sol := &Solution{Status: st, Nodes: e.nodes}
	if e.foundAny && (st == StatusOptimal || st == StatusFeasible) {
		sol.Values = e.best
		sol.Objective, _ = m.Evaluate(e.best, math.Inf(1))
	}
	e.log.Info("branch-and-bound finished",
		"model", m.name, "status", st, "nodes", e.nodes, "objective", sol.Objective, "elapsed", time.Since(start))

	return sol, nil
}

// integralObjective reports whether cᵀx is an integer for every integer-feasible x.
func (e *bbEngine) integralObjective() bool {
	for j, v := range e.m.vars {
		c := e.relax.c[j]
		if c == 0 {
			continue
		}
		if v.kind == Continuous || c != math.Trunc(c) {
			return false
		}
	}

	return true
}

// seedFromStart adopts complete, feasible start values as the first incumbent.
func (e *bbEngine) seedFromStart() {
	x, full := e.m.Start()
	if !full {
		return
	}
	if _, ok := e.m.Evaluate(x, e.intTol); !ok {
		e.log.Warn("start values are infeasible, ignored", "model", e.m.name)
		return
	}
	e.recordUB(x)
	e.log.Info("incumbent from start values", "objective", e.signed(e.bestObj))
}

// run explores the tree and returns the terminal status.
func (e *bbEngine) run(ctx context.Context) Status {
	n := len(e.m.vars)
	root := bbNode{lo: make([]float64, n), hi: make([]float64, n), bound: math.Inf(-1)}
	for j, v := range e.m.vars {
		root.lo[j], root.hi[j] = v.lo, v.hi
		if v.kind != Continuous {
			root.lo[j] = math.Ceil(v.lo - e.intTol)
			root.hi[j] = math.Floor(v.hi + e.intTol)
		}
	}

	stack := []bbNode{root}
	for len(stack) > 0 {
		if reason := e.stopReason(ctx); reason != "" {
			e.log.Warn("search stopped early", "reason", reason, "nodes", e.nodes, "open", len(stack))
			if e.foundAny {
				return StatusFeasible
			}

			return StatusNotSolved
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.prunable(nd.bound) {
			continue
		}
		e.nodes++

		res := e.relax.solve(nd.lo, nd.hi, e.cutoff())
		switch res.status {
		case lpInfeasible:
			continue
		case lpUnbounded:
			if nd.depth == 0 {
				return StatusUnbounded
			}
			continue
		case lpFailed:
			e.log.Error("LP relaxation failed", "node", e.nodes, "depth", nd.depth, "err", res.err)
			return StatusUndefined
		}

		bound := e.roundBound(res.obj)
		e.log.Debug("node", "n", e.nodes, "depth", nd.depth, "bound", e.signed(bound))
		if e.prunable(bound) {
			continue
		}

		j, f := e.pickBranch(res.x)
		if j < 0 {
			x := e.snap(res.x)
			if obj := e.relax.objective(x); !e.foundAny || obj < e.bestObj-e.intTol {
				e.recordUB(x)
				e.log.Info("new incumbent", "objective", e.signed(e.bestObj), "nodes", e.nodes, "depth", nd.depth)
			}
			continue
		}

		down := e.child(nd, bound, j, false, math.Floor(f))
		up := e.child(nd, bound, j, true, math.Ceil(f))
		// the child pushed last is explored first
		if f-math.Floor(f) >= 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}

	if e.foundAny {
		return StatusOptimal
	}

	return StatusInfeasible
}

func (e *bbEngine) stopReason(ctx context.Context) string {
	if err := ctx.Err(); err != nil {
		return err.Error()
	}
	if e.nodeLimit > 0 && e.nodes >= e.nodeLimit {
		return "node limit"
	}
	if e.useDeadline && !time.Now().Before(e.deadline) {
		return "time limit"
	}

	return ""
}

// child copies nd's bounds and tightens x_j.
func (e *bbEngine) child(nd bbNode, bound float64, j int, up bool, val float64) bbNode {
	c := bbNode{
		lo:    append([]float64(nil), nd.lo...),
		hi:    append([]float64(nil), nd.hi...),
		bound: bound,
		depth: nd.depth + 1,
	}
	if up {
		c.lo[j] = val
	} else {
		c.hi[j] = val
	}

	return c
}

// pickBranch returns the most fractional integer variable, or -1.
func (e *bbEngine) pickBranch(x []float64) (int, float64) {
	best, bestFrac := -1, e.intTol
	for j, v := range e.m.vars {
		if v.kind == Continuous {
			continue
		}
		frac := math.Abs(x[j] - math.Round(x[j]))
		if frac > bestFrac {
			best, bestFrac = j, frac
		}
	}
	if best < 0 {
		return -1, 0
	}

	return best, x[best]
}

// snap rounds integer variables of an integral LP point.
func (e *bbEngine) snap(x []float64) []float64 {
	out := append([]float64(nil), x...)
	for j, v := range e.m.vars {
		if v.kind != Continuous {
			out[j] = math.Round(out[j])
		}
	}

	return out
}

func (e *bbEngine) roundBound(obj float64) float64 {
	if e.intObj {
		return math.Ceil(obj - e.intTol)
	}

	return obj
}

// prunable reports whether a node bound cannot improve on the incumbent.
func (e *bbEngine) prunable(bound float64) bool {
	if !e.foundAny {
		return false
	}
	if e.intObj {
		return bound >= e.bestObj-0.5
	}

	return bound >= e.bestObj-e.intTol*math.Max(1, math.Abs(e.bestObj))
}

// cutoff returns the LP objective cap, +Inf when none applies.
func (e *bbEngine) cutoff() float64 {
	if !e.foundAny || !e.intObj {
		return math.Inf(1)
	}

	return e.bestObj - 1 + e.intTol
}

func (e *bbEngine) recordUB(x []float64) {
	e.best = append(e.best[:0], x...)
	e.bestObj = e.relax.objective(x)
	e.foundAny = true
}

// signed converts a minimization-sense value back to the model's direction.
func (e *bbEngine) signed(v float64) float64 {
	if e.m.dir == Maximize {
		return -v
	}

	return v
}
