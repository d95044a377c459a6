// Package config loads paxflow scenarios from TOML files.
//
// A scenario names the two terminals, the station list, the horizon, where
// the timetable comes from and how to solve and report it:
//
//	name        = "LAX to JFK"
//	origin      = "LAX"
//	destination = "JFK"
//	horizon     = 24
//	duplicates  = "merge"          # merge | keep | reject
//	timetable   = "timetable.csv"  # relative to this file
//
//	[[flight]]                     # inline flights, appended to the CSV
//	label = "XX1"
//	from  = "LAX"
//	dep   = 9
//	to    = "JFK"
//	arr   = 17
//	seats = 180
//
//	[solver]
//	method    = "simplex"          # simplex | dinic | edmonds-karp
//	timeout   = "60s"
//	tolerance = 1e-6
//
//	[analysis]
//	enabled = true
//	workers = 4
//
//	[report]
//	flights = true
//	pdf     = "report.pdf"         # relative to this file
//
// Omitted keys take the defaults of Default. Unknown keys are an error.
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/paxflow/maxflow"
	"github.com/katalvlaran/paxflow/network"
	"github.com/katalvlaran/paxflow/timetable"
)

// ErrInvalid is returned for a scenario that decodes but makes no sense.
var ErrInvalid = errors.New("config: invalid scenario")

// Config is a decoded scenario.
type Config struct {
	Name        string         `toml:"name"`
	Origin      string         `toml:"origin"`
	Destination string         `toml:"destination"`
	Stations    []string       `toml:"stations"`
	Horizon     int            `toml:"horizon"`
	Duplicates  string         `toml:"duplicates"`
	Timetable   string         `toml:"timetable"`
	Flights     []FlightConfig `toml:"flight"`
	Solver      SolverConfig   `toml:"solver"`
	Analysis    AnalysisConfig `toml:"analysis"`
	Report      ReportConfig   `toml:"report"`
}

// FlightConfig is one inline [[flight]] table.
type FlightConfig struct {
	Label string `toml:"label"`
	From  string `toml:"from"`
	Dep   int    `toml:"dep"`
	To    string `toml:"to"`
	Arr   int    `toml:"arr"`
	Seats int    `toml:"seats"`
}

// SolverConfig is the [solver] table.
type SolverConfig struct {
	Method    string   `toml:"method"`
	Timeout   Duration `toml:"timeout"`
	Tolerance float64  `toml:"tolerance"`
}

// AnalysisConfig is the [analysis] table.
type AnalysisConfig struct {
	Enabled bool `toml:"enabled"`
	Workers int  `toml:"workers"`
}

// ReportConfig is the [report] table.
type ReportConfig struct {
	Flights bool   `toml:"flights"`
	PDF     string `toml:"pdf"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a scenario with every default filled in and no terminals.
func Default() *Config {
	return &Config{
		Horizon:    network.DefaultHorizon,
		Duplicates: network.DuplicateMerge.String(),
		Solver: SolverConfig{
			Method:    maxflow.MethodSimplex.String(),
			Timeout:   Duration{maxflow.DefaultTimeout},
			Tolerance: maxflow.DefaultTolerance,
		},
		Analysis: AnalysisConfig{Workers: runtime.GOMAXPROCS(0)},
	}
}

// Load decodes the scenario at path over the defaults, resolves relative
// file names against the scenario's directory and validates the result.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.resolve(filepath.Dir(path))
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a scenario held in memory; relative file names are resolved
// against dir.
func Parse(data, dir string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(data, c)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	c.resolve(dir)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(names, ", "))
	}
	return nil
}

func (c *Config) resolve(dir string) {
	if c.Timetable != "" && !filepath.IsAbs(c.Timetable) {
		c.Timetable = filepath.Join(dir, c.Timetable)
	}
	if c.Report.PDF != "" && !filepath.IsAbs(c.Report.PDF) {
		c.Report.PDF = filepath.Join(dir, c.Report.PDF)
	}
}

// Validate checks the scenario. Timetable contents are checked later, by
// FlightSpecs and network.Build.
func (c *Config) Validate() error {
	switch {
	case c.Origin == "" || c.Destination == "":
		return fmt.Errorf("%w: origin and destination are required", ErrInvalid)
	case strings.EqualFold(c.Origin, c.Destination):
		return fmt.Errorf("%w: origin and destination are both %q", ErrInvalid, c.Origin)
	case c.Horizon < 2:
		return fmt.Errorf("%w: horizon %d, need at least 2", ErrInvalid, c.Horizon)
	case c.Solver.Timeout.Duration < 0:
		return fmt.Errorf("%w: negative solver timeout %s", ErrInvalid, c.Solver.Timeout)
	case !(c.Solver.Tolerance > 0) || math.IsInf(c.Solver.Tolerance, 1):
		return fmt.Errorf("%w: solver tolerance %g must be positive", ErrInvalid, c.Solver.Tolerance)
	case c.Analysis.Workers < 0:
		return fmt.Errorf("%w: negative worker count %d", ErrInvalid, c.Analysis.Workers)
	}
	if _, err := network.ParseDuplicatePolicy(c.Duplicates); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := maxflow.ParseMethod(c.Solver.Method); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(c.Stations) > 0 {
		has := func(s string) bool {
			for _, st := range c.Stations {
				if strings.EqualFold(st, s) {
					return true
				}
			}
			return false
		}
		if !has(c.Origin) || !has(c.Destination) {
			return fmt.Errorf("%w: stations must include %s and %s", ErrInvalid, c.Origin, c.Destination)
		}
	}
	return nil
}

// FlightSpecs returns the timetable file's flights followed by the inline
// [[flight]] tables.
func (c *Config) FlightSpecs() ([]network.FlightSpec, error) {
	var flights []network.FlightSpec
	if c.Timetable != "" {
		var err error
		if flights, err = timetable.LoadFile(c.Timetable); err != nil {
			return nil, err
		}
	}
	for _, f := range c.Flights {
		flights = append(flights, network.FlightSpec{
			Label:    f.Label,
			From:     station(f.From),
			DepHour:  f.Dep,
			To:       station(f.To),
			ArrHour:  f.Arr,
			Capacity: f.Seats,
		})
	}
	return flights, nil
}

// StationList returns the configured stations, or when none are listed,
// the stations of flights with the origin first and the destination last.
func (c *Config) StationList(flights []network.FlightSpec) []network.Station {
	if len(c.Stations) == 0 {
		return timetable.Stations(flights, c.OriginStation(), c.DestinationStation())
	}
	out := make([]network.Station, len(c.Stations))
	for i, s := range c.Stations {
		out[i] = station(s)
	}
	return out
}

// OriginStation returns the normalized origin code.
func (c *Config) OriginStation() network.Station { return station(c.Origin) }

// DestinationStation returns the normalized destination code.
func (c *Config) DestinationStation() network.Station { return station(c.Destination) }

// BuildGraph loads the flights and builds the time-expanded network.
func (c *Config) BuildGraph() (*network.Graph, error) {
	flights, err := c.FlightSpecs()
	if err != nil {
		return nil, err
	}
	policy, err := network.ParseDuplicatePolicy(c.Duplicates)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Horizon < 2 {
		return nil, fmt.Errorf("%w: horizon %d, need at least 2", ErrInvalid, c.Horizon)
	}
	return network.Build(c.StationList(flights), flights,
		network.WithHorizon(c.Horizon), network.WithDuplicates(policy))
}

// SolveOptions translates the [solver] table into maxflow options.
func (c *Config) SolveOptions() ([]maxflow.Option, error) {
	m, err := maxflow.ParseMethod(c.Solver.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	opts := []maxflow.Option{
		maxflow.WithMethod(m),
		maxflow.WithTimeout(c.Solver.Timeout.Duration),
	}
	if c.Solver.Tolerance > 0 && !math.IsInf(c.Solver.Tolerance, 1) {
		opts = append(opts, maxflow.WithTolerance(c.Solver.Tolerance))
	}
	return opts, nil
}

func station(s string) network.Station {
	return network.Station(strings.ToUpper(strings.TrimSpace(s)))
}
