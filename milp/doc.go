// SPDX-License-Identifier: MIT

// Package milp is a small mixed-integer linear programming layer.
//
// A Model holds named Binary, Integer and Continuous variables, named linear
// constraints (LE, GE, EQ), one linear objective and optional start values.
// Models are solved through the Solver interface. Two in-process
// implementations exist:
//
//   - SAT encodes pure integer models (binary and bounded integer variables,
//     integral coefficients) into clauses and cardinality networks and proves
//     optimality with the gini CDCL solver (github.com/go-air/gini). Models
//     outside that class are rejected with ErrUnsupported.
//   - BranchAndBound handles any model, continuous variables included, by
//     LP-based depth-first branch-and-bound over gonum's simplex method
//     (gonum.org/v1/gonum/optimize/convex/lp). Its LPs are dense, so it
//     suits small instances.
//
// Error policy: malformed models and options are errors (ErrBadBounds,
// ErrUnknownVar, ErrDuplicateName, ErrOptionViolation, ...). Every search
// outcome, including infeasibility, limits and numerical trouble in the LP
// backend, is reported through Solution.Status.
//
// Model.WriteLP exports the model in CPLEX LP format so the same instance
// can be handed to an external solver.
//
// Example:
//
//	m := milp.NewModel("knapsack", milp.Maximize)
//	a, b := m.AddBinary("a"), m.AddBinary("b")
//	m.AddConstraint("cap", []milp.Term{milp.T(a, 3), milp.T(b, 2)}, milp.LE, 4)
//	m.SetObjective(milp.T(a, 5), milp.T(b, 4))
//	sol, err := milp.NewSAT().Solve(ctx, m)
package milp
