// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Sentinel errors, enums (Kind, Sense, Direction, Status), Term, Solution and the Solver contract.

package milp

import (
	"context"
	"errors"
)

// Sentinel errors. Only malformed input is reported as an error; every
// terminal search outcome (infeasible, unbounded, limits, numerical failure)
// is a Status.
var (
	// ErrNilModel is returned when Solve receives a nil model.
	ErrNilModel = errors.New("milp: model is nil")

	// ErrEmptyModel is returned for a model without variables.
	ErrEmptyModel = errors.New("milp: model has no variables")

	// ErrBadBounds is returned for NaN bounds, infinite lower bounds or lower > upper.
	ErrBadBounds = errors.New("milp: invalid variable bounds")

	// ErrBadCoefficient is returned for NaN or infinite coefficients and right-hand sides.
	ErrBadCoefficient = errors.New("milp: invalid coefficient")

	// ErrUnknownVar is returned when a term references a variable of another model.
	ErrUnknownVar = errors.New("milp: unknown variable")

	// ErrDuplicateName is returned when two variables or two constraints share a name.
	ErrDuplicateName = errors.New("milp: duplicate name")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("milp: invalid option supplied")
)

// Kind is the domain of a decision variable.
type Kind int

const (
	// Continuous variables take any real value within their bounds.
	Continuous Kind = iota
	// Integer variables take integral values within their bounds.
	Integer
	// Binary variables are integers restricted to {0, 1}.
	Binary
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Sense is the relation of a linear constraint.
type Sense int

const (
	// LE is Σ aᵢxᵢ ≤ rhs.
	LE Sense = iota
	// GE is Σ aᵢxᵢ ≥ rhs.
	GE
	// EQ is Σ aᵢxᵢ = rhs.
	EQ
)

// String returns the LP-format operator.
func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// Direction is the optimization direction of the objective.
type Direction int

const (
	// Minimize the objective.
	Minimize Direction = iota
	// Maximize the objective.
	Maximize
)

// Status is the terminal state of a solve.
type Status int

const (
	// StatusNotSolved: a limit or cancellation stopped the search before any
	// integer-feasible point was found.
	StatusNotSolved Status = iota
	// StatusOptimal: the search completed and the incumbent is proven optimal.
	StatusOptimal
	// StatusInfeasible: the search completed without an integer-feasible point.
	StatusInfeasible
	// StatusUnbounded: the root relaxation is unbounded.
	StatusUnbounded
	// StatusUndefined: the LP backend failed numerically.
	StatusUndefined
	// StatusFeasible: a limit stopped the search with an unproven incumbent.
	StatusFeasible
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusNotSolved:
		return "not solved"
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusUndefined:
		return "undefined"
	case StatusFeasible:
		return "feasible"
	default:
		return "unknown"
	}
}

// Var identifies a variable of one Model (its creation index).
type Var int

// Term is one coefficient·variable product of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// T is shorthand for Term{Var: v, Coef: coef}.
func T(v Var, coef float64) Term { return Term{Var: v, Coef: coef} }

// Solution is the result of a Solve call.
// Values and Objective are meaningful only for StatusOptimal and StatusFeasible.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
	Nodes     int
}

// Value returns the solved value of v, or 0 if the solution carries no values.
func (s *Solution) Value(v Var) float64 {
	if s == nil || int(v) < 0 || int(v) >= len(s.Values) {
		return 0
	}

	return s.Values[v]
}

// Solver is an exact mixed-integer linear programming backend.
// Implementations must not retain m after Solve returns.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}
