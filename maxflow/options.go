package maxflow

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/paxflow/linprog"
)

// DefaultTimeout bounds a solve when no WithTimeout option is given.
const DefaultTimeout = 60 * time.Second

// DefaultTolerance is the absolute tolerance of verification and of the
// snapping of near-integral flows.
const DefaultTolerance = 1e-6

// Method selects the solving technology.
type Method uint8

const (
	// MethodSimplex formulates the linear program and solves it with a
	// linprog.Solver.
	MethodSimplex Method = iota
	// MethodDinic runs flow.Dinic on the graph.
	MethodDinic
	// MethodEdmondsKarp runs flow.EdmondsKarp on the graph.
	MethodEdmondsKarp
)

// String returns the method name accepted by ParseMethod.
func (m Method) String() string {
	switch m {
	case MethodSimplex:
		return "simplex"
	case MethodDinic:
		return "dinic"
	case MethodEdmondsKarp:
		return "edmonds-karp"
	default:
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
}

// ParseMethod parses "simplex" (alias "lp"), "dinic" or "edmonds-karp"
// (aliases "edmondskarp", "ek"), ignoring case.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simplex", "lp":
		return MethodSimplex, nil
	case "dinic":
		return MethodDinic, nil
	case "edmonds-karp", "edmondskarp", "ek":
		return MethodEdmondsKarp, nil
	}
	return 0, fmt.Errorf("maxflow: unknown method %q", s)
}

// Option customizes Solve.
type Option func(*solveConfig)

type solveConfig struct {
	method  Method
	timeout time.Duration
	tol     float64
	solver  linprog.Solver
	logger  logrus.FieldLogger
	verify  bool
}

func newSolveConfig(opts ...Option) solveConfig {
	cfg := solveConfig{
		method:  MethodSimplex,
		timeout: DefaultTimeout,
		tol:     DefaultTolerance,
		verify:  true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.solver == nil {
		cfg.solver = linprog.NewSimplex()
	}

	return cfg
}

// WithMethod selects the solving technology. Panics on an unknown method.
func WithMethod(m Method) Option {
	if m > MethodEdmondsKarp {
		panic(fmt.Sprintf("maxflow: WithMethod(%d): unknown method", m))
	}
	return func(c *solveConfig) {
		c.method = m
	}
}

// WithTimeout bounds the solve; d ≤ 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *solveConfig) {
		c.timeout = d
	}
}

// WithTolerance sets the verification tolerance. Panics unless eps is a
// positive finite number.
func WithTolerance(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 1) {
		panic(fmt.Sprintf("maxflow: WithTolerance(%g): tolerance must be positive and finite", eps))
	}
	return func(c *solveConfig) {
		c.tol = eps
	}
}

// WithSolver replaces the LP solver used by MethodSimplex. Panics on nil.
func WithSolver(s linprog.Solver) Option {
	if s == nil {
		panic("maxflow: WithSolver(nil)")
	}
	return func(c *solveConfig) {
		c.solver = s
	}
}

// WithLogger sends solve diagnostics to l: the per-solve summary at info
// level, the LP presolve statistics and each augmentation of the
// combinatorial methods at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *solveConfig) {
		c.logger = l
	}
}

// WithVerify toggles the post-solve Verify check (on by default).
func WithVerify(on bool) Option {
	return func(c *solveConfig) {
		c.verify = on
	}
}
