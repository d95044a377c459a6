package linprog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	// DefaultTolerance is the reduced-cost tolerance handed to the kernel.
	DefaultTolerance = 1e-10
	// DefaultFeasibilityTol is the absolute tolerance of presolve and of the
	// final feasibility check, scaled by the problem's largest magnitude.
	DefaultFeasibilityTol = 1e-7
)

// Simplex solves a Problem with presolve, rank reduction and the gonum
// simplex kernel. The zero value is not usable; call NewSimplex.
type Simplex struct {
	// Tolerance is the kernel's reduced-cost tolerance.
	Tolerance float64
	// FeasibilityTol bounds the violation tolerated in presolve decisions
	// and in the returned point.
	FeasibilityTol float64
	// Drain makes a cancelled Solve wait for its kernel before returning.
	// The gonum kernel cannot be interrupted; without Drain it keeps
	// running in the background after Solve has reported the timeout.
	Drain bool
}

// kernels counts kernel goroutines that have not finished, abandoned ones
// included.
var kernels atomic.Int64

// RunningKernels returns the number of simplex kernels still executing in
// this process.
func RunningKernels() int { return int(kernels.Load()) }

// NewSimplex returns a Simplex with default tolerances.
func NewSimplex() *Simplex {
	return &Simplex{Tolerance: DefaultTolerance, FeasibilityTol: DefaultFeasibilityTol}
}

// kernelOut carries the kernel's answer across the goroutine boundary.
type kernelOut struct {
	x   []float64
	err error
}

// Solve optimizes p. On ErrInfeasible or ErrUnbounded the Result carries the
// matching Status and no point; on any other error the Result is nil.
func (s *Simplex) Solve(ctx context.Context, p *Problem) (*Result, error) {
	start := time.Now()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}
	feasTol := s.FeasibilityTol * (1 + magnitude(p))
	res := &Result{Stats: Stats{Rows: len(p.Constraints), Cols: len(p.Vars)}}
	fail := func(err error) (*Result, error) {
		res.Stats.Elapsed = time.Since(start)
		switch {
		case errors.Is(err, ErrInfeasible):
			res.Status = StatusInfeasible
			return res, err
		case errors.Is(err, ErrUnbounded):
			res.Status = StatusUnbounded
			return res, err
		}
		return nil, err
	}

	ps, err := presolve(ctx, p, feasTol)
	if err != nil {
		return fail(err)
	}
	live := ps.liveRows()
	res.Stats.PresolvedRows = len(live)

	// Columns are the unfixed variables that still appear in a live row.
	cols := make(map[int]int)
	var vars []int
	for _, i := range live {
		for _, j := range ps.rows[i].vars {
			if _, ok := cols[j]; !ok {
				cols[j] = len(vars)
				vars = append(vars, j)
			}
		}
	}
	// Unfixed variables outside every row move to their best bound.
	for j := 0; j < ps.n; j++ {
		if ps.fixed[j] {
			continue
		}
		if _, ok := cols[j]; ok {
			continue
		}
		if ps.cost[j] < 0 {
			if math.IsInf(ps.ub[j], 1) {
				return fail(fmt.Errorf("%w: variable %q improves the objective without bound",
					ErrUnbounded, p.Vars[j].Name))
			}
			ps.fix(j, ps.ub[j])
		} else {
			ps.fix(j, 0)
		}
	}
	res.Stats.FixedVars = ps.nfixed

	kept, pivots, err := ps.independentRows(ctx, live, cols, vars, feasTol)
	if err != nil {
		return fail(err)
	}
	res.Stats.DependentRows = len(live) - len(kept)

	y := append([]float64(nil), ps.y...)
	if len(kept) == 0 {
		res.Stats.SkippedKernel = true
	} else {
		sol, slackBasis, err := s.kernel(ctx, ps, kept, pivots, cols, vars, feasTol, &res.Stats)
		if err != nil {
			return fail(err)
		}
		res.Stats.SlackBasisUsed = slackBasis
		for c, j := range vars {
			y[j] = sol[c]
		}
	}

	x := make([]float64, ps.n)
	for j := range x {
		v := y[j]
		switch {
		case math.Abs(v) <= snapTol:
			v = 0
		case !math.IsInf(ps.ub[j], 1) && math.Abs(v-ps.ub[j]) <= snapTol:
			v = ps.ub[j]
		}
		x[j] = ps.lower[j] + v
	}
	if err := p.CheckFeasible(x, feasTol); err != nil {
		return nil, err
	}

	res.Status = StatusOptimal
	res.X = x
	res.Objective = p.Evaluate(x)
	res.Stats.Elapsed = time.Since(start)

	return res, nil
}

const snapTol = 1e-9

// kernel builds the standard form of the reduced problem and runs the gonum
// simplex on it:
//
//	columns: one per entry of vars, then one slack per finite upper bound
//	rows:    the kept equality rows, then y_j + s_j = ub_j per slack
//
// When every kept right-hand side is zero, y = 0 with s = ub is feasible and
// the kernel starts from the basis {pivot columns} ∪ {slacks}, skipping its
// phase I. The pivot columns are nonsingular on the kept rows and vanish on
// the bound rows, so that basis is nonsingular.
func (s *Simplex) kernel(ctx context.Context, ps *presolved, kept, pivots []int, cols map[int]int,
	vars []int, tol float64, st *Stats) ([]float64, bool, error) {
	nf := len(vars)
	var bounded []int
	for _, j := range vars {
		if !math.IsInf(ps.ub[j], 1) {
			bounded = append(bounded, j)
		}
	}
	m, n := len(kept)+len(bounded), nf+len(bounded)
	st.StandardRows, st.StandardCols = m, n

	A := mat.NewDense(m, n, nil)
	b := make([]float64, m)
	c := make([]float64, n)
	homogeneous := true
	for r, i := range kept {
		row := &ps.rows[i]
		for q, j := range row.vars {
			A.Set(r, cols[j], row.coef[q])
		}
		b[r] = row.rhs
		if math.Abs(b[r]) > tol {
			homogeneous = false
		}
	}
	for k, j := range bounded {
		r := len(kept) + k
		A.Set(r, cols[j], 1)
		A.Set(r, nf+k, 1)
		b[r] = ps.ub[j]
	}
	for cIdx, j := range vars {
		c[cIdx] = ps.cost[j]
	}

	var basis []int
	if homogeneous {
		for r := range kept {
			b[r] = 0
		}
		basis = make([]int, 0, m)
		for _, j := range pivots {
			basis = append(basis, cols[j])
		}
		for k := range bounded {
			basis = append(basis, nf+k)
		}
	}

	done := make(chan kernelOut, 1)
	kernels.Add(1)
	go func() {
		out := s.runKernel(c, A, b, basis)
		kernels.Add(-1)
		done <- out
	}()

	select {
	case <-ctx.Done():
		if s.Drain {
			<-done
		}
		return nil, false, contextError(ctx.Err())
	case out := <-done:
		if out.err != nil {
			return nil, false, kernelError(out.err)
		}
		return out.x[:nf], homogeneous, nil
	}
}

// runKernel calls lp.Simplex, turning a panic into ErrNumerical.
func (s *Simplex) runKernel(c []float64, A mat.Matrix, b []float64, basis []int) (out kernelOut) {
	defer func() {
		if r := recover(); r != nil {
			out = kernelOut{err: fmt.Errorf("%w: kernel panic: %v", ErrNumerical, r)}
		}
	}()
	_, x, err := lp.Simplex(c, A, b, s.Tolerance, basis)
	return kernelOut{x: x, err: err}
}

// kernelError maps gonum's errors onto the package errors.
func kernelError(err error) error {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return fmt.Errorf("%w: %v", ErrInfeasible, err)
	case errors.Is(err, lp.ErrUnbounded):
		return fmt.Errorf("%w: %v", ErrUnbounded, err)
	case errors.Is(err, ErrNumerical):
		return err
	}
	return fmt.Errorf("%w: %v", ErrNumerical, err)
}

// magnitude returns the largest finite absolute bound or right-hand side of
// p, used to scale tolerances.
func magnitude(p *Problem) float64 {
	m := 0.0
	for _, v := range p.Vars {
		m = math.Max(m, math.Abs(v.Lower))
		if !math.IsInf(v.Upper, 0) {
			m = math.Max(m, math.Abs(v.Upper))
		}
	}
	for _, c := range p.Constraints {
		m = math.Max(m, math.Abs(c.RHS))
	}
	return m
}
