package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/paxflow/linprog"
	"github.com/katalvlaran/paxflow/maxflow"
	"github.com/katalvlaran/paxflow/network"
)

// ErrWorkerPool indicates that the worker pool could not be created or
// refused a task.
var ErrWorkerPool = errors.New("analysis: worker pool failure")

// Impact is the effect of removing one timetable record.
type Impact struct {
	// Index is the record's position in the timetable.
	Index  int
	Flight network.FlightSpec
	// Flow is what the flight carried in the base solution.
	Flow float64
	// Value is the maximum flow without the flight.
	Value float64
	// Loss is Base.Value - Value, never negative.
	Loss float64
	// Skipped is set when the flight carried nothing and no re-solve ran.
	Skipped bool
}

// Result is the outcome of Criticality.
type Result struct {
	Base *maxflow.Solution
	// Impacts holds one entry per flight, largest Loss first, ties in
	// timetable order.
	Impacts []Impact
}

// Critical returns the impacts whose loss exceeds tol.
func (r *Result) Critical(tol float64) []Impact {
	var out []Impact
	for _, im := range r.Impacts {
		if im.Loss > tol {
			out = append(out, im)
		}
	}
	return out
}

// Option customizes Criticality.
type Option func(*config)

type config struct {
	workers int
	solve   []maxflow.Option
	logger  logrus.FieldLogger
}

// WithWorkers bounds the number of concurrent solves; 0 means GOMAXPROCS.
// Panics on a negative count.
//
// The bound covers LP kernels too: Criticality solves with a
// linprog.Simplex in Drain mode, so a worker whose solve times out keeps
// its slot until the kernel has stopped. A solver passed through
// WithSolveOptions(maxflow.WithSolver(...)) replaces it, and a non-draining
// one may leave kernels running beyond the bound after a timeout.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("analysis: WithWorkers(%d): negative worker count", n))
	}
	return func(c *config) {
		c.workers = n
	}
}

// WithSolveOptions passes opts to every maxflow.Solve call.
func WithSolveOptions(opts ...maxflow.Option) Option {
	return func(c *config) {
		c.solve = append(c.solve, opts...)
	}
}

// WithLogger logs one info entry per re-solve to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func drainingSimplex() *linprog.Simplex {
	s := linprog.NewSimplex()
	s.Drain = true
	return s
}

// task is one re-solve handed to the pool.
type task struct {
	index int
	out   *Impact
}

// Criticality computes the loss of maximum flow caused by removing each
// flight of g in turn.
//
// Steps:
//  1. Solve g once for the base value.
//  2. Flights without base flow get Loss 0 immediately.
//  3. Every other flight is removed (g.Without) and re-solved on an ants
//     PoolWithFunc of the configured size.
//  4. The first failing task cancels the rest; its error is returned.
//  5. Impacts are sorted by Loss descending, then by timetable index.
//
// Complexity: F+1 solves for F flights, at most `workers` at a time.
func Criticality(ctx context.Context, g *network.Graph, origin, destination network.Station, opts ...Option) (*Result, error) {
	cfg := config{solve: []maxflow.Option{maxflow.WithSolver(drainingSimplex())}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers == 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	base, err := maxflow.Solve(ctx, g, origin, destination, cfg.solve...)
	if err != nil {
		return nil, fmt.Errorf("analysis: base solve: %w", err)
	}

	flows := base.FlightFlows()
	impacts := make([]Impact, len(flows))
	var pending []int
	for i, ff := range flows {
		impacts[i] = Impact{Index: i, Flight: ff.Flight, Flow: ff.Flow, Value: base.Value}
		if ff.Flow <= 0 {
			impacts[i].Skipped = true
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) > 0 {
		if err := resolveAll(ctx, g, origin, destination, base.Value, pending, impacts, cfg); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(impacts, func(a, b int) bool {
		if impacts[a].Loss != impacts[b].Loss {
			return impacts[a].Loss > impacts[b].Loss
		}
		return impacts[a].Index < impacts[b].Index
	})

	return &Result{Base: base, Impacts: impacts}, nil
}

// resolveAll runs one solve per pending flight on the pool and fills in
// the matching impacts.
func resolveAll(ctx context.Context, g *network.Graph, origin, destination network.Station,
	baseValue float64, pending []int, impacts []Impact, cfg config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	run := func(payload interface{}) {
		defer wg.Done()
		t := payload.(*task)
		if ctx.Err() != nil {
			return
		}
		reduced, err := g.Without(t.index)
		if err != nil {
			fail(fmt.Errorf("analysis: flight #%d: %w", t.index, err))
			return
		}
		sol, err := maxflow.Solve(ctx, reduced, origin, destination, cfg.solve...)
		if err != nil {
			fail(fmt.Errorf("analysis: without %s: %w", t.out.Flight.Name(), err))
			return
		}
		t.out.Value = sol.Value
		if loss := baseValue - sol.Value; loss > 0 {
			t.out.Loss = loss
		}
		if cfg.logger != nil {
			cfg.logger.WithFields(logrus.Fields{
				"flight": t.out.Flight.Name(),
				"index":  t.index,
				"value":  sol.Value,
				"loss":   t.out.Loss,
			}).Info("analysis: re-solved without flight")
		}
	}

	p, err := ants.NewPoolWithFunc(cfg.workers, run)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWorkerPool, err)
	}
	defer p.Release()

	for _, i := range pending {
		wg.Add(1)
		if err := p.Invoke(&task{index: i, out: &impacts[i]}); err != nil {
			wg.Done()
			fail(fmt.Errorf("%w: %w", ErrWorkerPool, err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	// A cancelled parent leaves skipped tasks behind without an error.
	return ctx.Err()
}
