package linprog

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrBadProblem indicates a malformed Problem.
var ErrBadProblem = errors.New("linprog: malformed problem")

// ErrInfeasible indicates that no point satisfies every constraint.
var ErrInfeasible = errors.New("linprog: problem is infeasible")

// ErrUnbounded indicates that the objective can be improved without limit.
var ErrUnbounded = errors.New("linprog: problem is unbounded")

// ErrTimeout indicates that the context deadline passed before the solve
// finished. No partial result accompanies it.
var ErrTimeout = errors.New("linprog: solver timed out")

// ErrNumerical indicates a failure of the numerical kernel, or a returned
// point that does not satisfy the problem within tolerance.
var ErrNumerical = errors.New("linprog: numerical failure")

// Status is the outcome class of a solve.
type Status uint8

const (
	// StatusUnknown is the zero value; no solve has produced a verdict.
	StatusUnknown Status = iota
	// StatusOptimal means X is an optimal point.
	StatusOptimal
	// StatusInfeasible means the constraints admit no point.
	StatusInfeasible
	// StatusUnbounded means the objective has no finite optimum.
	StatusUnbounded
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Stats describes how much of a problem reached the numerical kernel.
type Stats struct {
	Rows, Cols     int // original constraints and variables
	PresolvedRows  int // rows left after presolve
	FixedVars      int // variables fixed by presolve
	DependentRows  int // rows dropped as linear combinations of others
	StandardRows   int // rows handed to the kernel, bound rows included
	StandardCols   int // columns handed to the kernel, slacks included
	Elapsed        time.Duration
	SkippedKernel  bool // presolve alone determined the optimum
	SlackBasisUsed bool // the kernel started from the slack basis
}

// Result is the outcome of a solve. X and Objective are meaningful only when
// Status is StatusOptimal.
type Result struct {
	Status    Status
	Objective float64
	X         []float64
	Stats     Stats
}

// Solver solves a Problem. Implementations must not retain p after Solve
// returns and must not share mutable state between calls.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (*Result, error)
}

// contextError maps a finished context onto the package errors: a deadline
// becomes ErrTimeout, anything else is returned wrapped as-is.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("linprog: %w", err)
}
