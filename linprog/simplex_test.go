package linprog_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/paxflow/internal/netgen"
	"github.com/katalvlaran/paxflow/linprog"
	"github.com/katalvlaran/paxflow/maxflow"
)

// SimplexSuite exercises presolve, rank reduction and the kernel.
type SimplexSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *SimplexSuite) SetupTest() {
	s.ctx = context.Background()
}

func term(v int, c float64) linprog.Term { return linprog.Term{Var: v, Coef: c} }

var inf = math.Inf(1)

// TestLinkedPair maximizes y subject to x = y, x ≤ 4.
func (s *SimplexSuite) TestLinkedPair() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, 4)
	y := p.AddVariable("y", 0, inf)
	p.AddConstraint("link", 0, term(x, 1), term(y, -1))
	p.SetObjective(linprog.Maximize, term(y, 1))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.NoError(s.T(), err)
	require.Equal(s.T(), linprog.StatusOptimal, res.Status)
	require.InDelta(s.T(), 4.0, res.Objective, 1e-9)
	require.InDelta(s.T(), 4.0, res.X[x], 1e-9)
	require.True(s.T(), res.Stats.SlackBasisUsed)
	require.False(s.T(), res.Stats.SkippedKernel)
}

// TestMinimizeWithRHS needs a phase I because the row is inhomogeneous.
func (s *SimplexSuite) TestMinimizeWithRHS() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, 2)
	y := p.AddVariable("y", 0, 10)
	p.AddConstraint("sum", 3, term(x, 1), term(y, 1))
	p.SetObjective(linprog.Minimize, term(x, 1), term(y, 2))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 4.0, res.Objective, 1e-9)
	require.InDelta(s.T(), 2.0, res.X[x], 1e-9)
	require.InDelta(s.T(), 1.0, res.X[y], 1e-9)
	require.False(s.T(), res.Stats.SlackBasisUsed)
}

// TestForcingRowSkipsKernel: x + y = 6 with x, y ≤ 3 pins both variables.
func (s *SimplexSuite) TestForcingRowSkipsKernel() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, 3)
	y := p.AddVariable("y", 0, 3)
	p.AddConstraint("full", 6, term(x, 1), term(y, 1))
	p.SetObjective(linprog.Maximize, term(x, 1))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Stats.SkippedKernel)
	require.Equal(s.T(), 2, res.Stats.FixedVars)
	require.Equal(s.T(), []float64{3, 3}, res.X)
}

// TestLowerBoundShift: minimizing x on [2, 5] lands on the lower bound.
func (s *SimplexSuite) TestLowerBoundShift() {
	var p linprog.Problem
	x := p.AddVariable("x", 2, 5)
	p.SetObjective(linprog.Minimize, term(x, 1))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2.0, res.X[x])
	require.Equal(s.T(), 2.0, res.Objective)
}

// TestRepeatedTermsAggregate: 2x = y written as x + x - y = 0.
func (s *SimplexSuite) TestRepeatedTermsAggregate() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, inf)
	y := p.AddVariable("y", 0, 4)
	p.AddConstraint("double", 0, term(x, 1), term(x, 1), term(y, -1))
	p.SetObjective(linprog.Maximize, term(x, 1))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 2.0, res.Objective, 1e-9)
}

// TestDependentRows: the third row is the sum of the first two.
func (s *SimplexSuite) TestDependentRows() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, 5)
	y := p.AddVariable("y", 0, inf)
	z := p.AddVariable("z", 0, inf)
	p.AddConstraint("xy", 0, term(x, 1), term(y, -1))
	p.AddConstraint("yz", 0, term(y, 1), term(z, -1))
	p.AddConstraint("xz", 0, term(x, 1), term(z, -1))
	p.SetObjective(linprog.Maximize, term(z, 1))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 5.0, res.Objective, 1e-9)
	require.Equal(s.T(), 1, res.Stats.DependentRows)
	require.Equal(s.T(), 3, res.Stats.StandardRows)
	require.LessOrEqual(s.T(), p.MaxViolation(res.X), 1e-9)
}

// TestInfeasibleByBounds: x + y = 10 with x, y ≤ 3.
func (s *SimplexSuite) TestInfeasibleByBounds() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, 3)
	y := p.AddVariable("y", 0, 3)
	p.AddConstraint("too-much", 10, term(x, 1), term(y, 1))
	p.SetObjective(linprog.Maximize, term(x, 1))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.ErrorIs(s.T(), err, linprog.ErrInfeasible)
	require.NotNil(s.T(), res)
	require.Equal(s.T(), linprog.StatusInfeasible, res.Status)
	require.Nil(s.T(), res.X)
}

// TestInconsistentRows: 2x + 2y = 5 contradicts x + y = 2.
func (s *SimplexSuite) TestInconsistentRows() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, inf)
	y := p.AddVariable("y", 0, inf)
	p.AddConstraint("a", 2, term(x, 1), term(y, 1))
	p.AddConstraint("b", 5, term(x, 2), term(y, 2))
	p.SetObjective(linprog.Maximize, term(x, 1))

	_, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.ErrorIs(s.T(), err, linprog.ErrInfeasible)
}

// TestUnboundedFreeVariable: nothing limits x.
func (s *SimplexSuite) TestUnboundedFreeVariable() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, inf)
	p.SetObjective(linprog.Maximize, term(x, 1))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.ErrorIs(s.T(), err, linprog.ErrUnbounded)
	require.Equal(s.T(), linprog.StatusUnbounded, res.Status)
}

// TestUnboundedInKernel: x = y with both unbounded reaches the kernel.
func (s *SimplexSuite) TestUnboundedInKernel() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, inf)
	y := p.AddVariable("y", 0, inf)
	p.AddConstraint("link", 0, term(x, 1), term(y, -1))
	p.SetObjective(linprog.Maximize, term(x, 1))

	res, err := linprog.NewSimplex().Solve(s.ctx, &p)
	require.ErrorIs(s.T(), err, linprog.ErrUnbounded)
	require.Equal(s.T(), linprog.StatusUnbounded, res.Status)
}

// TestMalformed rejects NaN bounds and dangling terms before solving.
func (s *SimplexSuite) TestMalformed() {
	cases := map[string]func(p *linprog.Problem){
		"nan bound":     func(p *linprog.Problem) { p.AddVariable("x", 0, math.NaN()) },
		"crossed":       func(p *linprog.Problem) { p.AddVariable("x", 3, 1) },
		"infinite low":  func(p *linprog.Problem) { p.AddVariable("x", math.Inf(-1), 1) },
		"dangling term": func(p *linprog.Problem) { p.AddConstraint("r", 0, term(7, 1)) },
		"inf rhs": func(p *linprog.Problem) {
			v := p.AddVariable("x", 0, 1)
			p.AddConstraint("r", inf, term(v, 1))
		},
	}
	for name, build := range cases {
		var p linprog.Problem
		build(&p)
		_, err := linprog.NewSimplex().Solve(s.ctx, &p)
		require.ErrorIs(s.T(), err, linprog.ErrBadProblem, name)
	}
}

// TestContext maps an expired deadline to ErrTimeout and keeps
// cancellation distinguishable.
func (s *SimplexSuite) TestContext() {
	var p linprog.Problem
	x := p.AddVariable("x", 0, 1)
	p.SetObjective(linprog.Maximize, term(x, 1))

	ctx, cancel := context.WithDeadline(s.ctx, time.Now().Add(-time.Second))
	defer cancel()
	res, err := linprog.NewSimplex().Solve(ctx, &p)
	require.ErrorIs(s.T(), err, linprog.ErrTimeout)
	require.ErrorIs(s.T(), err, context.DeadlineExceeded)
	require.Nil(s.T(), res)

	ctx, cancel = context.WithCancel(s.ctx)
	cancel()
	_, err = linprog.NewSimplex().Solve(ctx, &p)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.False(s.T(), errors.Is(err, linprog.ErrTimeout))
}

// largeProblem returns the max-flow LP of a 40-station, 1500-flight random
// timetable together with the time an uninterrupted solve takes. It skips
// when that solve is too quick to cancel reliably.
func (s *SimplexSuite) largeProblem() (*linprog.Problem, time.Duration) {
	if testing.Short() {
		s.T().Skip("large instance")
	}
	g, err := netgen.Graph(rand.New(rand.NewSource(40)), 40, 1500)
	require.NoError(s.T(), err)
	f, err := maxflow.Formulate(g, "S00", "S39")
	require.NoError(s.T(), err)

	start := time.Now()
	_, err = linprog.NewSimplex().Solve(s.ctx, f.Problem)
	require.NoError(s.T(), err)
	full := time.Since(start)
	if full < 200*time.Millisecond {
		s.T().Skipf("full solve took %v, too fast to interrupt", full)
	}
	return f.Problem, full
}

// TestAbandonedKernel: without Drain a cancelled solve returns before its
// kernel ends, and the kernel finishes on its own afterwards.
func (s *SimplexSuite) TestAbandonedKernel() {
	p, full := s.largeProblem()
	require.Eventually(s.T(), func() bool { return linprog.RunningKernels() == 0 }, 10*full, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(s.ctx, full/4)
	defer cancel()
	start := time.Now()
	res, err := linprog.NewSimplex().Solve(ctx, p)
	require.ErrorIs(s.T(), err, linprog.ErrTimeout)
	require.Nil(s.T(), res)
	require.Less(s.T(), time.Since(start), full)

	require.Eventually(s.T(), func() bool { return linprog.RunningKernels() == 0 }, 10*full, 5*time.Millisecond)
}

// TestDrainedKernel: with Drain a cancelled solve still reports the timeout
// but leaves no kernel behind.
func (s *SimplexSuite) TestDrainedKernel() {
	p, full := s.largeProblem()
	require.Eventually(s.T(), func() bool { return linprog.RunningKernels() == 0 }, 10*full, 5*time.Millisecond)

	solver := linprog.NewSimplex()
	solver.Drain = true
	ctx, cancel := context.WithTimeout(s.ctx, full/4)
	defer cancel()
	res, err := solver.Solve(ctx, p)
	require.ErrorIs(s.T(), err, linprog.ErrTimeout)
	require.Nil(s.T(), res)
	require.Zero(s.T(), linprog.RunningKernels())
}

func TestSimplexSuite(t *testing.T) {
	suite.Run(t, new(SimplexSuite))
}
