// Package linprog models linear programs independently of the technology
// that solves them, and ships a simplex-based Solver.
//
// A Problem is
//
//	maximize/minimize  Σ c_j·x_j
//	subject to         Σ a_ij·x_j = b_i      for every constraint i
//	                   l_j ≤ x_j ≤ u_j       for every variable j
//
// with finite lower bounds and finite or infinite (+Inf) upper bounds.
// Only equality rows are modelled; inequalities can be written with an
// explicit slack variable.
//
// Problems are plain values built with AddVariable / AddConstraint /
// SetObjective and handed to any Solver:
//
//	var p linprog.Problem
//	x := p.AddVariable("x", 0, 4)
//	y := p.AddVariable("y", 0, math.Inf(1))
//	p.AddConstraint("link", 0, linprog.Term{Var: x, Coef: 1}, linprog.Term{Var: y, Coef: -1})
//	p.SetObjective(linprog.Maximize, linprog.Term{Var: y, Coef: 1})
//	res, err := linprog.NewSimplex().Solve(ctx, &p)
//
// # Simplex
//
// Simplex reduces the problem before it reaches the numerical kernel:
//
//  1. Presolve: variables with equal bounds are fixed, empty rows dropped,
//     singleton rows solved, and forcing rows (rows whose right-hand side is
//     reachable only with every variable at one bound) fix all their
//     variables. The passes repeat until nothing changes.
//  2. Rank reduction: linearly dependent equality rows are removed by
//     Gaussian elimination; an inconsistent dependent row is infeasibility.
//  3. Standard form: lower bounds are shifted to zero, finite upper bounds
//     become x + s = u rows with slack s ≥ 0.
//  4. gonum.org/v1/gonum/optimize/convex/lp.Simplex solves the remainder,
//     starting from the slack basis when every equality right-hand side is
//     zero (the zero vector is then feasible and phase I is skipped).
//
// The gonum kernel cannot be interrupted. Solve honours ctx by returning
// ErrTimeout (deadline) or the context error (cancellation) as soon as ctx is
// done; the abandoned computation finishes in the background and its result
// is dropped.
//
// # Errors
//
//	ErrBadProblem - malformed problem (NaN, crossed bounds, dangling term).
//	ErrInfeasible - no point satisfies the constraints.
//	ErrUnbounded  - the objective improves without limit.
//	ErrTimeout    - the context deadline passed before the solve finished.
//	ErrNumerical  - the kernel failed or returned a point that violates the
//	                constraints beyond tolerance.
package linprog
