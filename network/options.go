// SPDX-License-Identifier: MIT
// Package: paxflow/network
//
// options.go: functional options for Build.
//
// Contract:
//   • Options are functional (type Option func(*buildConfig)).
//   • Option constructors validate and PANIC on meaningless inputs; Build
//     itself never panics and reports data problems as errors.
//   • Later options override earlier ones.

package network

import "fmt"

// Option customizes Build.
type Option func(*buildConfig)

type buildConfig struct {
	horizon    int
	duplicates DuplicatePolicy
}

func newBuildConfig(opts ...Option) buildConfig {
	cfg := buildConfig{
		horizon:    DefaultHorizon,
		duplicates: DuplicateMerge,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithHorizon sets the number of hourly steps H. A horizon needs at least two
// hours to hold a single flight; WithHorizon panics on h < 2.
func WithHorizon(h int) Option {
	if h < 2 {
		panic(fmt.Sprintf("network: WithHorizon(%d): horizon must be ≥ 2", h))
	}
	return func(c *buildConfig) {
		c.horizon = h
	}
}

// WithDuplicates selects how flights sharing both TimeNodes are handled.
// Panics on an unknown policy value.
func WithDuplicates(p DuplicatePolicy) Option {
	if p > DuplicateReject {
		panic(fmt.Sprintf("network: WithDuplicates(%d): unknown policy", p))
	}
	return func(c *buildConfig) {
		c.duplicates = p
	}
}
