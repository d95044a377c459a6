package maxflow_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/paxflow/linprog"
	"github.com/katalvlaran/paxflow/maxflow"
	"github.com/katalvlaran/paxflow/network"
)

func TestFormulateShape(t *testing.T) {
	g, err := network.Build(
		[]network.Station{"LAX", "ORD", "JFK"},
		[]network.FlightSpec{
			{From: "LAX", DepHour: 2, To: "ORD", ArrHour: 6, Capacity: 180},
			{From: "ORD", DepHour: 7, To: "JFK", ArrHour: 10, Capacity: 120},
		},
		network.WithHorizon(12),
	)
	require.NoError(t, err)

	f, err := maxflow.Formulate(g, "LAX", "JFK")
	require.NoError(t, err)
	p := f.Problem

	require.Len(t, p.Vars, g.EdgeCount())
	require.Len(t, p.Constraints, g.NodeCount()-2+1)
	require.Equal(t, linprog.Maximize, p.Sense)

	src, _ := g.Node("LAX", 1)
	snk, _ := g.Node("JFK", 12)
	assert.Equal(t, src, f.Source)
	assert.Equal(t, snk, f.Sink)
	assert.Equal(t, -1, f.ConservationRow[src])
	assert.Equal(t, -1, f.ConservationRow[snk])
	assert.Equal(t, len(p.Constraints)-1, f.CouplingRow)

	// Bounds follow CapacityFor: LAX gate open, ORD gate closed.
	laxGate, _ := g.Holding("LAX", 1)
	ordGate, _ := g.Holding("ORD", 1)
	assert.True(t, math.IsInf(p.Vars[laxGate.ID].Upper, 1))
	assert.Equal(t, 0.0, p.Vars[ordGate.ID].Upper)
	for _, v := range p.Vars {
		assert.Equal(t, 0.0, v.Lower)
	}

	// The objective counts every edge entering the sink once.
	require.Len(t, p.Objective, len(g.In(snk)))
	for _, term := range p.Objective {
		assert.Equal(t, 1.0, term.Coef)
	}

	// The zero flow is feasible.
	require.NoError(t, p.CheckFeasible(make([]float64, len(p.Vars)), 0))
}

func TestFormulateOtherOrigin(t *testing.T) {
	g, err := network.Build([]network.Station{"LAX", "ORD", "JFK"}, nil)
	require.NoError(t, err)

	f, err := maxflow.Formulate(g, "ORD", "JFK")
	require.NoError(t, err)
	ordGate, _ := g.Holding("ORD", 1)
	assert.True(t, math.IsInf(f.Problem.Vars[ordGate.ID].Upper, 1))

	_, err = maxflow.Formulate(g, "JFK", "JFK")
	require.ErrorIs(t, err, maxflow.ErrSameStation)
}

func TestVerifyDetectsViolations(t *testing.T) {
	g, err := network.Build(
		[]network.Station{"ORG", "HUB", "DST"},
		[]network.FlightSpec{
			{From: "ORG", DepHour: 3, To: "HUB", ArrHour: 6, Capacity: 200},
			{From: "HUB", DepHour: 8, To: "DST", ArrHour: 12, Capacity: 80},
		},
	)
	require.NoError(t, err)
	sol, err := maxflow.Solve(context.Background(), g, "ORG", "DST")
	require.NoError(t, err)
	require.NoError(t, maxflow.Verify(g, sol, 1e-9))

	in, _ := g.EdgeOfFlight(0)
	out, _ := g.EdgeOfFlight(1)
	tamper := func(mut func(s *maxflow.Solution, flows []float64) []float64) error {
		cp := *sol
		maxflow.SetFlows(&cp, mut(&cp, sol.Flows()))
		return maxflow.Verify(g, &cp, 1e-9)
	}
	set := func(id network.EdgeID, v float64) func(*maxflow.Solution, []float64) []float64 {
		return func(_ *maxflow.Solution, f []float64) []float64 {
			f[id] = v
			return f
		}
	}

	require.ErrorIs(t, tamper(set(out, 81)), maxflow.ErrInconsistent)
	require.ErrorIs(t, tamper(set(in, 90)), maxflow.ErrInconsistent)
	require.ErrorIs(t, tamper(set(in, math.NaN())), maxflow.ErrInconsistent)
	require.ErrorIs(t, tamper(func(s *maxflow.Solution, f []float64) []float64 {
		s.Value = 79
		return f
	}), maxflow.ErrInconsistent)
	require.ErrorIs(t, tamper(func(_ *maxflow.Solution, f []float64) []float64 { return f[:1] }), maxflow.ErrInconsistent)
	require.NoError(t, tamper(func(_ *maxflow.Solution, f []float64) []float64 { return f }))
}

// TestFlowsIsACopy: writing into the returned slice leaves the solution
// untouched.
func TestFlowsIsACopy(t *testing.T) {
	g, err := network.Build(
		[]network.Station{"ORG", "DST"},
		[]network.FlightSpec{{From: "ORG", DepHour: 2, To: "DST", ArrHour: 5, Capacity: 70}},
	)
	require.NoError(t, err)
	sol, err := maxflow.Solve(context.Background(), g, "ORG", "DST")
	require.NoError(t, err)

	id, _ := g.EdgeOfFlight(0)
	flows := sol.Flows()
	require.Len(t, flows, g.EdgeCount())
	require.Equal(t, 70.0, flows[id])

	for i := range flows {
		flows[i] = 0
	}
	require.Equal(t, 70.0, sol.Flow(id))
	require.Equal(t, 70.0, sol.Flows()[id])
	require.NoError(t, maxflow.Verify(g, sol, 1e-9))
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]maxflow.Method{
		"simplex": maxflow.MethodSimplex, "LP": maxflow.MethodSimplex,
		"dinic": maxflow.MethodDinic, " Edmonds-Karp ": maxflow.MethodEdmondsKarp, "ek": maxflow.MethodEdmondsKarp,
	} {
		got, err := maxflow.ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		again, err := maxflow.ParseMethod(got.String())
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
	_, err := maxflow.ParseMethod("push-relabel")
	require.Error(t, err)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { maxflow.WithMethod(maxflow.Method(9)) })
	assert.Panics(t, func() { maxflow.WithTolerance(0) })
	assert.Panics(t, func() { maxflow.WithTolerance(math.NaN()) })
	assert.Panics(t, func() { maxflow.WithSolver(nil) })
}
