// SPDX-License-Identifier: MIT
// Package: paxflow/maxflow
//
// errors.go: sentinel errors of the max-flow solve.
//
// Error policy:
//   • Construction problems (bad terminals) are returned before any work.
//   • Solver verdicts that the construction rules out (infeasible,
//     unbounded) are internal faults: ErrSolverInfeasible /
//     ErrSolverUnbounded, wrapping the solver's own error.
//   • ErrSolverTimeout is recoverable; no partial solution accompanies it.
//   • Callers branch with errors.Is.

package maxflow

import (
	"errors"

	"github.com/katalvlaran/paxflow/network"
)

// ErrUnknownStation is returned when origin or destination is not a station
// of the graph. It is the network package's sentinel.
var ErrUnknownStation = network.ErrUnknownStation

// ErrSameStation is returned when origin and destination coincide.
var ErrSameStation = errors.New("maxflow: origin and destination are the same station")

// ErrSolverInfeasible indicates that the solver found no feasible flow.
// The zero flow is always feasible, so this is an internal fault.
var ErrSolverInfeasible = errors.New("maxflow: solver reported infeasible (internal fault)")

// ErrSolverUnbounded indicates that the solver found no finite optimum.
// Every origin/destination path crosses a finite flight, so this is an
// internal fault.
var ErrSolverUnbounded = errors.New("maxflow: solver reported unbounded (internal fault)")

// ErrSolverTimeout indicates that the solve did not finish within the
// configured timeout.
var ErrSolverTimeout = errors.New("maxflow: solver timed out")

// ErrSolverFailed indicates any other solver failure, numerical ones
// included.
var ErrSolverFailed = errors.New("maxflow: solver failed")

// ErrInconsistent indicates that a solution violates a capacity bound,
// conservation at an interior node or the origin/destination coupling.
var ErrInconsistent = errors.New("maxflow: inconsistent solution")
