// SPDX-License-Identifier: MIT
//
// File: sat.go
// Role: Exact solver for pure integer models on the gini CDCL SAT solver.
//
// Encoding:
//   - an integer x ∈ [lo, hi] is lo plus the number of true literals
//     u₁ ≥ u₂ ≥ … ≥ u_w (order encoding, w = hi − lo); a binary is one literal;
//   - a row Σ aⱼxⱼ ⋈ r with integral aⱼ expands to const + count(L) ⋈ r, where
//     L repeats each unit |aⱼ| times (negated when aⱼ < 0);
//   - count(L) ≤ R and count(L) ≥ R become clauses when they are plain
//     clauses or at-most-one sets, and sorting networks (logic.CardSort)
//     otherwise; identical literal sets share one network;
//   - a literal repeated m times in an at-most row guards the rest:
//     l → count(rest) ≤ R − m.
//
// Search: the objective is const + count(Lobj). Each incumbent with count c
// is followed by a solve under the assumption count(Lobj) ≤ c − 1 until the
// solver reports unsatisfiable, which proves optimality.
//
// Terminal status:
//   - unsat with an incumbent    → StatusOptimal
//   - unsat without incumbent    → StatusInfeasible
//   - limit or ctx cancellation  → StatusFeasible with incumbent, StatusNotSolved without
//   - decoded point not feasible → StatusUndefined (logged, no error)
//
// Nodes counts SAT calls.

package milp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// ErrUnsupported is returned by SAT for models it cannot encode: continuous
// variables, unbounded integers, fractional coefficients or oversized domains.
var ErrUnsupported = errors.New("milp: model not supported by solver")

const (
	satMaxWidth    = 1 << 12 // integer domain size
	satMaxRowLits  = 1 << 16 // expanded literals per row
	satPairwiseMax = 32      // at-most-one sets encoded pairwise up to this size
	satPoll        = 2 * time.Millisecond
)

// SAT is an exact Solver for models whose variables are binary or bounded
// integers and whose coefficients are integral.
type SAT struct {
	opts Options
}

// NewSAT returns a SAT solver configured by opts. Tolerance is unused;
// NodeLimit caps the number of SAT calls.
func NewSAT(opts ...Option) *SAT {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &SAT{opts: o}
}

var _ Solver = (*SAT)(nil)

type satVar struct {
	lo    int
	units []z.Lit // units[t] ⇔ x ≥ lo+t+1
}

// satEngine owns the circuit, the SAT instance and the incumbent of one Solve call.
type satEngine struct {
	m      *Model
	c      *logic.C
	g      *gini.Gini
	vars   []satVar
	cards  map[string]*logic.CardSort
	cls    [][]z.Lit
	used   map[z.Var]bool
	intTol float64
	log    *log.Logger

	objConst int
	objLits  []z.Lit
	objCard  *logic.CardSort
	sgn      float64

	infeasible bool

	nodeLimit   int
	useDeadline bool
	deadline    time.Time

	calls    int
	foundAny bool
	best     []float64
	bestCnt  int
}

// Solve encodes m and searches for a proven optimum.
// Invalid options, an invalid model or an unsupported model produce an error.
func (s *SAT) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if s.opts.err != nil {
		return nil, s.opts.err
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

	e := &satEngine{
		m:         m,
		c:         logic.NewCCap(4 * len(m.vars)),
		g:         gini.New(),
		cards:     make(map[string]*logic.CardSort),
		used:      make(map[z.Var]bool),
		intTol:    s.opts.IntegralityTolerance,
		log:       s.opts.Logger,
		nodeLimit: s.opts.NodeLimit,
		sgn:       1,
	}
	if m.dir == Maximize {
		e.sgn = -1
	}
	if s.opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(s.opts.TimeLimit)
	}

	start := time.Now()
	if err := e.encode(); err != nil {
		return nil, fmt.Errorf("milp: model %q: %w", m.name, err)
	}
	e.log.Info("sat solve started",
		"model", m.name, "vars", len(m.vars), "constraints", len(m.rows),
		"clauses", len(e.cls), "networks", len(e.cards))

	st := StatusInfeasible
	if !e.infeasible {
		e.seedFromStart()
		st = e.run(ctx)
	}

	sol := &Solution{Status: st, Nodes: e.calls}
	if e.foundAny && (st == StatusOptimal || st == StatusFeasible) {
		sol.Values = e.best
		sol.Objective, _ = m.Evaluate(e.best, math.Inf(1))
	}
	e.log.Info("sat solve finished",
		"model", m.name, "status", st, "calls", e.calls, "objective", sol.Objective, "elapsed", time.Since(start))

	return sol, nil
}

// encode builds the circuit and clause set and loads them into the solver.
func (e *satEngine) encode() error {
	e.vars = make([]satVar, len(e.m.vars))
	for j, v := range e.m.vars {
		if v.kind == Continuous {
			return fmt.Errorf("continuous variable %q: %w", v.name, ErrUnsupported)
		}
		if math.IsInf(v.hi, 1) {
			return fmt.Errorf("unbounded variable %q: %w", v.name, ErrUnsupported)
		}
		lo := math.Ceil(v.lo - e.intTol)
		hi := math.Floor(v.hi + e.intTol)
		if lo > hi {
			e.infeasible = true
			return nil
		}
		if hi-lo > satMaxWidth {
			return fmt.Errorf("variable %q spans %v values: %w", v.name, hi-lo+1, ErrUnsupported)
		}
		sv := satVar{lo: int(lo), units: make([]z.Lit, int(hi-lo))}
		for t := range sv.units {
			sv.units[t] = e.c.Lit()
			if t > 0 {
				e.clause(sv.units[t].Not(), sv.units[t-1])
			}
		}
		e.vars[j] = sv
	}

	for _, r := range e.m.rows {
		lits, k, err := e.expand(r.Terms, 1)
		if err != nil {
			return fmt.Errorf("constraint %q: %w", r.Name, err)
		}
		rhs := r.RHS - float64(k)
		switch r.Sense {
		case LE:
			e.atMost(z.LitNull, lits, int(math.Floor(rhs+e.intTol)))
		case GE:
			e.atLeast(lits, int(math.Ceil(rhs-e.intTol)))
		case EQ:
			n := math.Round(rhs)
			if math.Abs(rhs-n) > e.intTol {
				e.infeasible = true
				break
			}
			e.atMost(z.LitNull, lits, int(n))
			e.atLeast(lits, int(n))
		}
		if e.infeasible {
			return nil
		}
	}

	terms := make([]Term, 0, len(e.m.vars))
	for j, v := range e.m.vars {
		if v.obj != 0 {
			terms = append(terms, Term{Var: Var(j), Coef: v.obj})
		}
	}
	lits, k, err := e.expand(terms, e.sgn)
	if err != nil {
		return fmt.Errorf("objective: %w", err)
	}
	e.objConst, e.objLits = k, lits
	if len(lits) > 0 {
		e.objCard = e.card(lits)
	}

	// units no clause or network mentions are free; pin them so the solver knows them
	for _, sv := range e.vars {
		for _, u := range sv.units {
			if !e.used[u.Var()] {
				e.clause(u.Not())
			}
		}
	}

	e.c.ToCnf(e.g)
	for _, cl := range e.cls {
		for _, l := range cl {
			e.g.Add(l)
		}
		e.g.Add(z.LitNull)
	}

	return nil
}

// expand rewrites sgn·Σ terms as const + count(lits).
func (e *satEngine) expand(terms []Term, sgn float64) ([]z.Lit, int, error) {
	coef := make(map[Var]float64, len(terms))
	order := make([]Var, 0, len(terms))
	for _, t := range terms {
		if _, ok := coef[t.Var]; !ok {
			order = append(order, t.Var)
		}
		coef[t.Var] += sgn * t.Coef
	}

	var lits []z.Lit
	k := 0
	for _, v := range order {
		a := coef[v]
		if a == 0 {
			continue
		}
		if a != math.Trunc(a) {
			return nil, 0, fmt.Errorf("coefficient %v on %q: %w", a, e.m.vars[v].name, ErrUnsupported)
		}
		ai := int(a)
		sv := e.vars[v]
		k += ai * sv.lo
		rep := ai
		if ai < 0 {
			rep = -ai
			k += ai * len(sv.units)
		}
		if len(lits)+rep*len(sv.units) > satMaxRowLits {
			return nil, 0, fmt.Errorf("%d literals: %w", len(lits)+rep*len(sv.units), ErrUnsupported)
		}
		for _, u := range sv.units {
			if ai < 0 {
				u = u.Not()
			}
			for i := 0; i < rep; i++ {
				lits = append(lits, u)
			}
		}
	}

	return lits, k, nil
}

// atMost adds guard → count(lits) ≤ n. A null guard makes the row unconditional.
func (e *satEngine) atMost(guard z.Lit, lits []z.Lit, n int) {
	switch {
	case n >= len(lits):
		return
	case n < 0:
		e.implyFalse(guard)
		return
	case n == 0:
		for _, l := range lits {
			e.guarded(guard, l.Not())
		}
		return
	}

	mult := make(map[z.Lit]int, len(lits))
	for _, l := range lits {
		mult[l]++
	}
	var heavy []z.Lit
	for l, c := range mult {
		if c > 1 {
			heavy = append(heavy, l)
		}
	}

	switch {
	case len(heavy) == 0 && n == len(lits)-1:
		neg := make([]z.Lit, len(lits))
		for i, l := range lits {
			neg[i] = l.Not()
		}
		e.guarded(guard, neg...)
	case len(heavy) == 0 && n == 1 && len(lits) <= satPairwiseMax:
		for i := range lits {
			for j := i + 1; j < len(lits); j++ {
				e.guarded(guard, lits[i].Not(), lits[j].Not())
			}
		}
	case len(heavy) == 1 && guard == z.LitNull:
		h, m := heavy[0], mult[heavy[0]]
		rest := make([]z.Lit, 0, len(lits)-m)
		for _, l := range lits {
			if l != h {
				rest = append(rest, l)
			}
		}
		e.atMost(h, rest, n-m)
		e.atMost(z.LitNull, rest, n)
	default:
		e.guarded(guard, e.card(lits).Leq(n))
	}
}

// atLeast adds count(lits) ≥ n.
func (e *satEngine) atLeast(lits []z.Lit, n int) {
	switch {
	case n <= 0:
		return
	case n > len(lits):
		e.infeasible = true
	case n == len(lits):
		for _, l := range lits {
			e.clause(l)
		}
	case n == 1:
		e.clause(lits...)
	default:
		e.clause(e.card(lits).Geq(n))
	}
}

func (e *satEngine) guarded(guard z.Lit, lits ...z.Lit) {
	if guard == z.LitNull {
		e.clause(lits...)
		return
	}
	e.clause(append([]z.Lit{guard.Not()}, lits...)...)
}

func (e *satEngine) implyFalse(guard z.Lit) {
	if guard == z.LitNull {
		e.infeasible = true
		return
	}
	e.clause(guard.Not())
}

func (e *satEngine) clause(lits ...z.Lit) {
	for _, l := range lits {
		e.used[l.Var()] = true
	}
	e.cls = append(e.cls, append([]z.Lit(nil), lits...))
}

// card returns the sorting network over lits, shared between equal multisets.
func (e *satEngine) card(lits []z.Lit) *logic.CardSort {
	ms := append([]z.Lit(nil), lits...)
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })
	var sb strings.Builder
	for _, l := range ms {
		sb.WriteString(strconv.Itoa(int(l)))
		sb.WriteByte(',')
	}
	key := sb.String()
	if cs, ok := e.cards[key]; ok {
		return cs
	}
	for _, l := range ms {
		e.used[l.Var()] = true
	}
	cs := e.c.CardSort(ms)
	e.cards[key] = cs

	return cs
}

// seedFromStart adopts complete, feasible start values as the first incumbent.
func (e *satEngine) seedFromStart() {
	x, full := e.m.Start()
	if !full {
		return
	}
	obj, ok := e.m.Evaluate(x, e.intTol)
	if !ok {
		e.log.Warn("start values are infeasible, ignored", "model", e.m.name)
		return
	}
	for j := range x {
		x[j] = math.Round(x[j])
	}
	e.record(x, int(math.Round(e.sgn*obj))-e.objConst)
	e.log.Info("incumbent from start values", "objective", obj)
}

// run alternates SAT calls and tightened objective bounds.
func (e *satEngine) run(ctx context.Context) Status {
	for {
		if e.foundAny && (e.objCard == nil || e.bestCnt <= 0) {
			return StatusOptimal
		}
		if reason := e.stopReason(ctx); reason != "" {
			e.log.Warn("search stopped early", "reason", reason, "calls", e.calls)
			return e.stopped()
		}
		if e.foundAny {
			e.g.Assume(e.objCard.Leq(e.bestCnt - 1))
		}

		res := e.solveOnce(ctx)
		e.calls++
		switch res {
		case 1:
			x := e.decode()
			if _, ok := e.m.Evaluate(x, e.intTol); !ok {
				e.log.Error("decoded point violates the model", "model", e.m.name, "call", e.calls)
				return StatusUndefined
			}
			e.record(x, e.countObj())
			e.log.Info("new incumbent",
				"objective", e.sgn*float64(e.objConst+e.bestCnt), "calls", e.calls)
		case -1:
			if e.foundAny {
				return StatusOptimal
			}
			return StatusInfeasible
		default:
			e.log.Warn("search stopped early", "reason", e.stopReason(ctx), "calls", e.calls)
			return e.stopped()
		}
	}
}

// solveOnce runs one SAT call in the background and stops it when ctx is
// done or the deadline passes.
func (e *satEngine) solveOnce(ctx context.Context) int {
	s := e.g.GoSolve()
	tick := time.NewTicker(satPoll)
	defer tick.Stop()

	var expired <-chan time.Time
	if e.useDeadline {
		timer := time.NewTimer(time.Until(e.deadline))
		defer timer.Stop()
		expired = timer.C
	}

	for {
		if r, done := s.Test(); done {
			return r
		}
		select {
		case <-ctx.Done():
			return s.Stop()
		case <-expired:
			return s.Stop()
		case <-tick.C:
		}
	}
}

func (e *satEngine) stopReason(ctx context.Context) string {
	if err := ctx.Err(); err != nil {
		return err.Error()
	}
	if e.nodeLimit > 0 && e.calls >= e.nodeLimit {
		return "node limit"
	}
	if e.useDeadline && !time.Now().Before(e.deadline) {
		return "time limit"
	}

	return ""
}

func (e *satEngine) stopped() Status {
	if e.foundAny {
		return StatusFeasible
	}

	return StatusNotSolved
}

func (e *satEngine) decode() []float64 {
	x := make([]float64, len(e.vars))
	for j, sv := range e.vars {
		n := sv.lo
		for _, u := range sv.units {
			if e.g.Value(u) {
				n++
			}
		}
		x[j] = float64(n)
	}

	return x
}

func (e *satEngine) countObj() int {
	n := 0
	for _, l := range e.objLits {
		if e.g.Value(l) {
			n++
		}
	}

	return n
}

func (e *satEngine) record(x []float64, cnt int) {
	e.best = append(e.best[:0], x...)
	e.bestCnt = cnt
	e.foundAny = true
}
