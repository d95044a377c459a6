package flow

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrSourceNotFound is returned when the origin station is not in the graph.
var ErrSourceNotFound = errors.New("flow: source station not found")

// ErrSinkNotFound is returned when the destination station is not in the graph.
var ErrSinkNotFound = errors.New("flow: sink station not found")

// ErrSameTerminal is returned when origin and destination coincide.
var ErrSameTerminal = errors.New("flow: origin and destination are the same station")

// FlowOptions configures both max-flow algorithms.
//   - Ctx: cancellation and deadlines (default context.Background()).
//   - Epsilon: treat capacities ≤ Epsilon as zero (default 1e-9).
//   - Verbose: log each augmentation at debug level through Logger
//     (default logrus.StandardLogger()).
//   - LevelRebuildInterval: for Dinic, rebuild level graph every N augmentations.
type FlowOptions struct {
	Ctx                  context.Context
	Epsilon              float64
	Verbose              bool
	Logger               logrus.FieldLogger
	LevelRebuildInterval int
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() FlowOptions {
	return FlowOptions{
		Ctx:     context.Background(),
		Epsilon: 1e-9,
	}
}

func (o *FlowOptions) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Epsilon <= 0 {
		o.Epsilon = 1e-9
	}
	if o.Verbose && o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
}

func (o *FlowOptions) debug(algorithm string, pushed, total float64) {
	if o.Verbose {
		o.Logger.WithFields(logrus.Fields{
			"algorithm": algorithm,
			"pushed":    pushed,
			"total":     total,
		}).Debug("flow: augmented")
	}
}
