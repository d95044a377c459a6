// Package maxflow computes the maximum passenger flow over time between two
// airports of a time-expanded network (package network).
//
// Model construction and solving are separate steps:
//
//	f, _ := maxflow.Formulate(g, "LAX", "JFK") // pure Graph → LP mapping
//	sol, err := maxflow.Solve(ctx, g, "LAX", "JFK",
//	    maxflow.WithTimeout(30*time.Second))
//
// Formulate introduces one variable per edge bounded by its capacity, one
// conservation row per node except (origin, 1) and (destination, H), and
// the coupling row out(origin, 1) − in(destination, H) = 0; the objective
// maximizes the flow into (destination, H).
//
// Solve uses the LP by default (MethodSimplex with linprog.Simplex, or any
// linprog.Solver given through WithSolver). MethodDinic and
// MethodEdmondsKarp solve the same instance combinatorially with package
// flow. All methods return the same Value; per-edge flows may differ where
// the optimum is not unique.
//
// # Integrality
//
// Variables are continuous. The constraint matrix is a network matrix and
// capacities are integral, so optimal basic solutions are integral; Solve
// snaps values within the tolerance of an integer to remove floating-point
// noise and does not run integer programming.
//
// # Errors
//
//	ErrUnknownStation   - origin or destination not in the graph.
//	ErrSameStation      - origin equals destination.
//	ErrSolverInfeasible - internal fault; the zero flow is always feasible.
//	ErrSolverUnbounded  - internal fault; every path crosses a flight.
//	ErrSolverTimeout    - the solve exceeded its timeout; no partial result.
//	ErrSolverFailed     - any other solver failure.
//	ErrInconsistent     - the returned flow failed Verify.
package maxflow
