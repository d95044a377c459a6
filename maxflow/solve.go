package maxflow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/paxflow/flow"
	"github.com/katalvlaran/paxflow/linprog"
	"github.com/katalvlaran/paxflow/network"
)

// Solve computes the maximum passenger flow from (origin, 1) to
// (destination, H) in g.
//
// Steps:
//  1. Validate the terminals (ErrUnknownStation, ErrSameStation).
//  2. Bound ctx by the configured timeout.
//  3. Solve with the configured method:
//     MethodSimplex formulates the LP (Formulate) and hands it to the
//     linprog.Solver; MethodDinic / MethodEdmondsKarp run package flow.
//  4. Snap near-integral flows, then Verify unless disabled.
//
// Every call is independent: no state survives between solves and g is
// only read. On error no partial solution is returned.
func Solve(ctx context.Context, g *network.Graph, origin, destination network.Station, opts ...Option) (*Solution, error) {
	cfg := newSolveConfig(opts...)
	if err := checkTerminals(g, origin, destination); err != nil {
		return nil, err
	}
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	start := time.Now()
	sol := &Solution{
		Method:      cfg.method,
		Origin:      origin,
		Destination: destination,
		graph:       g,
	}

	var err error
	switch cfg.method {
	case MethodSimplex:
		err = solveLP(ctx, g, sol, cfg)
	default:
		err = solveCombinatorial(ctx, g, sol, cfg)
	}
	if err != nil {
		return nil, err
	}

	for i, f := range sol.flows {
		sol.flows[i] = snap(f, cfg.tol)
	}
	sol.Value = snap(sol.Value, cfg.tol)
	sol.Status = linprog.StatusOptimal
	sol.Elapsed = time.Since(start)

	if cfg.verify {
		if err := Verify(g, sol, cfg.tol*math.Max(1, sol.Value)); err != nil {
			return nil, err
		}
	}
	if cfg.logger != nil {
		cfg.logger.WithFields(logrus.Fields{
			"method":      cfg.method.String(),
			"origin":      string(origin),
			"destination": string(destination),
			"value":       sol.Value,
			"elapsed":     sol.Elapsed,
		}).Info("maxflow: solved")
	}

	return sol, nil
}

func solveLP(ctx context.Context, g *network.Graph, sol *Solution, cfg solveConfig) error {
	f, err := Formulate(g, sol.Origin, sol.Destination)
	if err != nil {
		return err
	}
	res, err := cfg.solver.Solve(ctx, f.Problem)
	if err != nil {
		return solverError(err)
	}
	if res.Status != linprog.StatusOptimal {
		return fmt.Errorf("%w: status %s", ErrSolverFailed, res.Status)
	}
	if len(res.X) != g.EdgeCount() {
		return fmt.Errorf("%w: %d values for %d edges", ErrSolverFailed, len(res.X), g.EdgeCount())
	}
	if cfg.logger != nil {
		st := res.Stats
		cfg.logger.WithFields(logrus.Fields{
			"rows":      st.Rows,
			"cols":      st.Cols,
			"presolved": st.PresolvedRows,
			"fixed":     st.FixedVars,
			"dependent": st.DependentRows,
			"kernel":    fmt.Sprintf("%d×%d", st.StandardRows, st.StandardCols),
		}).Debug("maxflow: LP presolved")
	}

	sol.Value = res.Objective
	sol.flows = append([]float64(nil), res.X...)
	stats := res.Stats
	sol.Stats = &stats
	return nil
}

func solveCombinatorial(ctx context.Context, g *network.Graph, sol *Solution, cfg solveConfig) error {
	opts := flow.FlowOptions{
		Ctx:     ctx,
		Epsilon: 1e-9,
		Verbose: cfg.logger != nil,
		Logger:  cfg.logger,
	}
	run := flow.Dinic
	if cfg.method == MethodEdmondsKarp {
		run = flow.EdmondsKarp
	}
	value, flows, err := run(g, sol.Origin, sol.Destination, opts)
	if err != nil {
		return solverError(err)
	}
	sol.Value, sol.flows = value, flows
	return nil
}

// solverError maps solver failures onto the package errors, keeping the
// original error in the chain.
func solverError(err error) error {
	switch {
	case errors.Is(err, linprog.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrSolverTimeout, err)
	case errors.Is(err, linprog.ErrInfeasible):
		return fmt.Errorf("%w: %w", ErrSolverInfeasible, err)
	case errors.Is(err, linprog.ErrUnbounded):
		return fmt.Errorf("%w: %w", ErrSolverUnbounded, err)
	case errors.Is(err, context.Canceled):
		return err
	}
	return fmt.Errorf("%w: %w", ErrSolverFailed, err)
}
