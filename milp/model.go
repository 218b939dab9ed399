// SPDX-License-Identifier: MIT
//
// File: model.go
// Role: Model construction (variables, constraints, objective, start values) and Validate.
//
// Construction never fails eagerly: each Add* call records the first problem
// it meets, and Validate (called by every Solver) reports it. This keeps
// formulation code free of per-call error plumbing.

package milp

import (
	"fmt"
	"math"
)

type variable struct {
	name  string
	kind  Kind
	lo    float64
	hi    float64
	obj   float64
	start float64
	hasSt bool
}

// Constraint is one named linear row of a Model.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a mixed-integer linear program.
// A Model is not safe for concurrent mutation.
type Model struct {
	name  string
	dir   Direction
	vars  []variable
	rows  []Constraint
	names map[string]struct{}
	rowNm map[string]struct{}
	err   error
}

// NewModel creates an empty model named name.
func NewModel(name string, dir Direction) *Model {
	return &Model{
		name:  name,
		dir:   dir,
		names: make(map[string]struct{}),
		rowNm: make(map[string]struct{}),
	}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Direction returns the objective direction.
func (m *Model) Direction() Direction { return m.dir }

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.rows) }

// AddVar adds a variable. Binary variables always get bounds [0,1]; use
// math.Inf(1) for an unbounded upper side.
func (m *Model) AddVar(name string, kind Kind, lo, hi float64) Var {
	if kind == Binary {
		lo, hi = 0, 1
	}
	v := Var(len(m.vars))
	m.vars = append(m.vars, variable{name: name, kind: kind, lo: lo, hi: hi})

	if _, dup := m.names[name]; dup {
		m.fail(fmt.Errorf("variable %q: %w", name, ErrDuplicateName))
	}
	m.names[name] = struct{}{}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, -1) || lo > hi {
		m.fail(fmt.Errorf("variable %q: [%v, %v]: %w", name, lo, hi, ErrBadBounds))
	}

	return v
}

// AddBinary adds a {0,1} variable.
func (m *Model) AddBinary(name string) Var { return m.AddVar(name, Binary, 0, 1) }

// AddInteger adds an integer variable with bounds [lo, hi].
func (m *Model) AddInteger(name string, lo, hi float64) Var { return m.AddVar(name, Integer, lo, hi) }

// AddContinuous adds a continuous variable with bounds [lo, hi].
func (m *Model) AddContinuous(name string, lo, hi float64) Var {
	return m.AddVar(name, Continuous, lo, hi)
}

// AddConstraint appends the row Σ terms sense rhs. Terms on the same variable
// are summed. The terms slice is copied.
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) {
	if _, dup := m.rowNm[name]; dup {
		m.fail(fmt.Errorf("constraint %q: %w", name, ErrDuplicateName))
	}
	m.rowNm[name] = struct{}{}
	if sense != LE && sense != GE && sense != EQ {
		m.fail(fmt.Errorf("constraint %q: sense %d: %w", name, int(sense), ErrBadCoefficient))
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		m.fail(fmt.Errorf("constraint %q: rhs %v: %w", name, rhs, ErrBadCoefficient))
	}
	m.checkTerms("constraint "+name, terms)

	m.rows = append(m.rows, Constraint{
		Name:  name,
		Terms: append([]Term(nil), terms...),
		Sense: sense,
		RHS:   rhs,
	})
}

// SetObjective replaces the objective with Σ terms.
func (m *Model) SetObjective(terms ...Term) {
	for i := range m.vars {
		m.vars[i].obj = 0
	}
	m.checkTerms("objective", terms)
	for _, t := range terms {
		if m.known(t.Var) {
			m.vars[t.Var].obj += t.Coef
		}
	}
}

// SetStart records a starting value for v. A Solver may use a complete and
// feasible set of start values as its first incumbent.
func (m *Model) SetStart(v Var, val float64) {
	if !m.known(v) {
		m.fail(fmt.Errorf("start value: var %d: %w", int(v), ErrUnknownVar))
		return
	}
	m.vars[v].start, m.vars[v].hasSt = val, true
}

// ClearStart drops all start values.
func (m *Model) ClearStart() {
	for i := range m.vars {
		m.vars[i].start, m.vars[i].hasSt = 0, false
	}
}

// VarName returns the name of v, or "" if v is unknown.
func (m *Model) VarName(v Var) string {
	if !m.known(v) {
		return ""
	}

	return m.vars[v].name
}

// VarKind returns the kind of v.
func (m *Model) VarKind(v Var) Kind {
	if !m.known(v) {
		return Continuous
	}

	return m.vars[v].kind
}

// Bounds returns the bounds of v.
func (m *Model) Bounds(v Var) (lo, hi float64) {
	if !m.known(v) {
		return 0, 0
	}

	return m.vars[v].lo, m.vars[v].hi
}

// ObjectiveCoef returns the objective coefficient of v.
func (m *Model) ObjectiveCoef(v Var) float64 {
	if !m.known(v) {
		return 0
	}

	return m.vars[v].obj
}

// Constraints returns a copy of the constraint rows in insertion order.
func (m *Model) Constraints() []Constraint {
	out := make([]Constraint, len(m.rows))
	for i, r := range m.rows {
		r.Terms = append([]Term(nil), r.Terms...)
		out[i] = r
	}

	return out
}

// Start returns the start values and whether every variable has one.
func (m *Model) Start() ([]float64, bool) {
	vals := make([]float64, len(m.vars))
	full := len(m.vars) > 0
	for i, v := range m.vars {
		vals[i] = v.start
		if !v.hasSt {
			full = false
		}
	}

	return vals, full
}

// Validate reports the first construction problem recorded by the Add*
// and Set* methods, or ErrEmptyModel.
func (m *Model) Validate() error {
	if m == nil {
		return ErrNilModel
	}
	if m.err != nil {
		return m.err
	}
	if len(m.vars) == 0 {
		return ErrEmptyModel
	}

	return nil
}

// Evaluate returns the objective value at x and whether x satisfies every
// bound, integrality requirement and constraint within tol.
func (m *Model) Evaluate(x []float64, tol float64) (obj float64, feasible bool) {
	if len(x) != len(m.vars) {
		return 0, false
	}
	feasible = true
	for i, v := range m.vars {
		obj += v.obj * x[i]
		if x[i] < v.lo-tol || x[i] > v.hi+tol {
			feasible = false
		}
		if v.kind != Continuous && math.Abs(x[i]-math.Round(x[i])) > tol {
			feasible = false
		}
	}
	for _, r := range m.rows {
		lhs := 0.0
		for _, t := range r.Terms {
			lhs += t.Coef * x[t.Var]
		}
		switch r.Sense {
		case LE:
			feasible = feasible && lhs <= r.RHS+tol
		case GE:
			feasible = feasible && lhs >= r.RHS-tol
		case EQ:
			feasible = feasible && math.Abs(lhs-r.RHS) <= tol
		}
	}

	return obj, feasible
}

func (m *Model) known(v Var) bool { return int(v) >= 0 && int(v) < len(m.vars) }

func (m *Model) checkTerms(where string, terms []Term) {
	for _, t := range terms {
		if !m.known(t.Var) {
			m.fail(fmt.Errorf("%s: var %d: %w", where, int(t.Var), ErrUnknownVar))
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			m.fail(fmt.Errorf("%s: coefficient %v: %w", where, t.Coef, ErrBadCoefficient))
		}
	}
}

func (m *Model) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}
