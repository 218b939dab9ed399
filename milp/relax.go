// SPDX-License-Identifier: MIT
//
// File: relax.go
// Role: LP relaxation of a Model under node bounds, solved by gonum's simplex.
//
// Transformation to standard form (min cᵀy, Ay = b, y ≥ 0):
//   - every variable is shifted, x = lo + y;
//   - variables with hi - lo ≤ eps are fixed and folded into the right-hand sides;
//   - each finite upper bound becomes a row y + s = hi - lo, unless a row
//     with positive coefficients already implies it;
//   - LE rows get a slack, GE rows a surplus;
//   - rows are negated where needed so that b ≥ 0;
//   - rows left without free columns are checked and dropped;
//   - free columns appearing in no row are set to 0 (or prove unboundedness);
//   - rows whose slack cannot start basic get an artificial column priced at
//     bigM, so the slack/artificial identity is the initial basis handed to
//     lp.Simplex and no phase-one search runs. A positive artificial at the
//     optimum means the node is infeasible.
//
// The objective is always minimized here; BranchAndBound negates it for Maximize.

package milp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	fixEps  = 1e-9
	feasEps = 1e-7
	bigM    = 1e6
)

type lpStatus int

const (
	lpOptimal lpStatus = iota
	lpInfeasible
	lpUnbounded
	lpFailed
)

type lpResult struct {
	status lpStatus
	obj    float64
	x      []float64
	err    error
}

// relaxation holds the data shared by every node LP of one solve.
type relaxation struct {
	n    int
	c    []float64 // minimization objective
	rows []Constraint
	tol  float64
}

func newRelaxation(m *Model, tol float64) *relaxation {
	sgn := 1.0
	if m.dir == Maximize {
		sgn = -1
	}
	r := &relaxation{n: len(m.vars), c: make([]float64, len(m.vars)), rows: m.rows, tol: tol}
	for i, v := range m.vars {
		r.c[i] = sgn * v.obj
	}

	return r
}

// objective returns cᵀx.
func (r *relaxation) objective(x []float64) float64 {
	s := 0.0
	for i, ci := range r.c {
		s += ci * x[i]
	}

	return s
}

// solve optimizes the LP relaxation within [lo, hi]. When cutoff is finite,
// the row cᵀx ≤ cutoff is added.
func (r *relaxation) solve(lo, hi []float64, cutoff float64) lpResult {
	// Column map for free variables.
	col := make([]int, r.n)
	free := 0
	for j := 0; j < r.n; j++ {
		if lo[j] > hi[j]+fixEps {
			return lpResult{status: lpInfeasible}
		}
		if hi[j]-lo[j] <= fixEps {
			col[j] = -1
			continue
		}
		col[j] = free
		free++
	}

	type row struct {
		coef  map[int]float64
		sense Sense
		rhs   float64
	}
	var rows []row
	addRow := func(terms []Term, sense Sense, rhs float64) bool {
		coef := make(map[int]float64)
		for _, t := range terms {
			rhs -= t.Coef * lo[t.Var]
			if k := col[t.Var]; k >= 0 {
				coef[k] += t.Coef
			}
		}
		for k, a := range coef {
			if math.Abs(a) <= fixEps {
				delete(coef, k)
			}
		}
		if len(coef) == 0 {
			switch sense {
			case LE:
				return rhs >= -feasEps
			case GE:
				return rhs <= feasEps
			default:
				return math.Abs(rhs) <= feasEps
			}
		}
		rows = append(rows, row{coef: coef, sense: sense, rhs: rhs})

		return true
	}

	for _, cr := range r.rows {
		if !addRow(cr.Terms, cr.Sense, cr.RHS) {
			return lpResult{status: lpInfeasible}
		}
	}
	if !math.IsInf(cutoff, 1) {
		terms := make([]Term, 0, r.n)
		for j, cj := range r.c {
			if cj != 0 {
				terms = append(terms, Term{Var: Var(j), Coef: cj})
			}
		}
		if !addRow(terms, LE, cutoff) {
			return lpResult{status: lpInfeasible}
		}
	}

	// Columns referenced by some row, and bounded columns.
	used := make([]bool, free)
	for _, rw := range rows {
		for k := range rw.coef {
			used[k] = true
		}
	}
	y := make([]float64, free)
	lpCol := make([]int, free)
	nLP := 0
	for j := 0; j < r.n; j++ {
		k := col[j]
		if k < 0 {
			continue
		}
		if used[k] {
			lpCol[k] = nLP
			nLP++
			continue
		}
		lpCol[k] = -1
		switch {
		case r.c[j] > 0:
			y[k] = 0
		case r.c[j] < 0 && math.IsInf(hi[j], 1):
			return lpResult{status: lpUnbounded}
		case r.c[j] < 0:
			y[k] = hi[j] - lo[j]
		}
	}

	// y_k ≤ rhs/a_k follows from any LE or EQ row with only positive coefficients.
	implied := make([]float64, free)
	for k := range implied {
		implied[k] = math.Inf(1)
	}
	for _, rw := range rows {
		if rw.sense == GE || rw.rhs < 0 {
			continue
		}
		positive := true
		for _, a := range rw.coef {
			if a <= 0 {
				positive = false
				break
			}
		}
		if !positive {
			continue
		}
		for k, a := range rw.coef {
			implied[k] = math.Min(implied[k], rw.rhs/a)
		}
	}

	// Upper-bound rows only for columns that enter the LP.
	for j := 0; j < r.n; j++ {
		k := col[j]
		if k < 0 || lpCol[k] < 0 || math.IsInf(hi[j], 1) || implied[k] <= hi[j]-lo[j]+fixEps {
			continue
		}
		rows = append(rows, row{coef: map[int]float64{k: 1}, sense: LE, rhs: hi[j] - lo[j]})
	}

	if nLP > 0 {
		// slack coefficient after the sign flip; +1 can start basic
		slackCoef := make([]float64, len(rows))
		slacks, artificials := 0, 0
		for i, rw := range rows {
			sign := 1.0
			if rw.rhs < 0 {
				sign = -1
			}
			switch rw.sense {
			case LE:
				slackCoef[i] = sign
				slacks++
			case GE:
				slackCoef[i] = -sign
				slacks++
			}
			if slackCoef[i] != 1 {
				artificials++
			}
		}
		mRows, nCols := len(rows), nLP+slacks+artificials

		A := mat.NewDense(mRows, nCols, nil)
		b := make([]float64, mRows)
		cLP := make([]float64, nCols)
		penalty := bigM
		for j := 0; j < r.n; j++ {
			if k := col[j]; k >= 0 && lpCol[k] >= 0 {
				cLP[lpCol[k]] = r.c[j]
				penalty = math.Max(penalty, bigM*math.Abs(r.c[j]))
			}
		}
		basis := make([]int, mRows)
		s, art := nLP, nLP+slacks
		for i, rw := range rows {
			sign := 1.0
			if rw.rhs < 0 {
				sign = -1
			}
			for k, a := range rw.coef {
				A.Set(i, lpCol[k], sign*a)
			}
			if slackCoef[i] != 0 {
				A.Set(i, s, slackCoef[i])
				if slackCoef[i] == 1 {
					basis[i] = s
				}
				s++
			}
			if slackCoef[i] != 1 {
				A.Set(i, art, 1)
				cLP[art] = penalty
				basis[i] = art
				art++
			}
			b[i] = sign * rw.rhs
		}

		_, opt, err := lp.Simplex(cLP, A, b, r.tol, basis)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return lpResult{status: lpInfeasible}
		case errors.Is(err, lp.ErrUnbounded):
			return lpResult{status: lpUnbounded}
		case err != nil:
			return lpResult{status: lpFailed, err: err}
		}
		for a := nLP + slacks; a < nCols; a++ {
			if opt[a] > feasEps {
				return lpResult{status: lpInfeasible}
			}
		}
		for k := 0; k < free; k++ {
			if lpCol[k] >= 0 {
				y[k] = opt[lpCol[k]]
			}
		}
	}

	x := make([]float64, r.n)
	for j := 0; j < r.n; j++ {
		x[j] = lo[j]
		if k := col[j]; k >= 0 {
			x[j] = math.Min(math.Max(lo[j]+y[k], lo[j]), hi[j])
		}
	}

	return lpResult{status: lpOptimal, obj: r.objective(x), x: x}
}
