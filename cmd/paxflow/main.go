// Command paxflow computes the maximum number of passengers that can travel
// between two airports within a day of scheduled flights.
//
// Usage:
//
//	paxflow -config scenarios/lax_jfk/scenario.toml
//	paxflow -timetable flights.csv -origin LAX -destination JFK -flights -critical
//
// Flags given on the command line override the scenario file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/paxflow/analysis"
	"github.com/katalvlaran/paxflow/config"
	"github.com/katalvlaran/paxflow/flow"
	"github.com/katalvlaran/paxflow/maxflow"
	"github.com/katalvlaran/paxflow/report"
)

// errUsage marks command-line mistakes; main exits with status 2 for them.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		newLogger(os.Stderr, false).Error(err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run is main without the process globals, so it can be tested.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("paxflow", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile  = fs.String("config", "", "scenario TOML file")
		timetableF  = fs.String("timetable", "", "timetable CSV file (flight,from,dep,to,arr,seats)")
		stations    = fs.String("stations", "", "comma-separated station list, origin first and destination last")
		origin      = fs.String("origin", "", "origin airport code")
		destination = fs.String("destination", "", "destination airport code")
		horizon     = fs.Int("horizon", 0, "number of hourly steps")
		duplicates  = fs.String("duplicates", "", "flights sharing both endpoints: merge, keep or reject")
		method      = fs.String("method", "", "solver: simplex, dinic or edmonds-karp")
		timeout     = fs.Duration("timeout", 0, "solver timeout, 0 for none")
		flights     = fs.Bool("flights", false, "print the per-flight flow table")
		cut         = fs.Bool("cut", false, "print the minimum cut")
		pdfFile     = fs.String("pdf", "", "also write the report as PDF to this file")
		critical    = fs.Bool("critical", false, "rank flights by the flow lost without them")
		workers     = fs.Int("workers", 0, "concurrent solves for -critical, 0 for one per CPU")
		verbose     = fs.Bool("v", false, "log solver progress to stderr")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", errUsage, fs.Args())
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return err
		}
	} else if *timetableF == "" {
		return fmt.Errorf("%w: need -config or -timetable", errUsage)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timetable":
			cfg.Timetable = *timetableF
		case "stations":
			cfg.Stations = splitList(*stations)
		case "origin":
			cfg.Origin = *origin
		case "destination":
			cfg.Destination = *destination
		case "horizon":
			cfg.Horizon = *horizon
		case "duplicates":
			cfg.Duplicates = *duplicates
		case "method":
			cfg.Solver.Method = *method
		case "timeout":
			cfg.Solver.Timeout = config.Duration{Duration: *timeout}
		case "flights":
			cfg.Report.Flights = *flights
		case "pdf":
			cfg.Report.PDF = *pdfFile
		case "critical":
			cfg.Analysis.Enabled = *critical
		case "workers":
			cfg.Analysis.Workers = *workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	logger := newLogger(stderr, *verbose)

	g, err := cfg.BuildGraph()
	if err != nil {
		return err
	}
	solveOpts, err := cfg.SolveOptions()
	if err != nil {
		return err
	}
	if *verbose {
		solveOpts = append(solveOpts, maxflow.WithLogger(logger))
	}
	logger.WithFields(logrus.Fields{
		"stations": len(g.Stations()),
		"flights":  len(g.Specs()),
		"nodes":    g.NodeCount(),
		"edges":    g.EdgeCount(),
	}).Debug("network built")

	from, to := cfg.OriginStation(), cfg.DestinationStation()
	sol, err := maxflow.Solve(ctx, g, from, to, solveOpts...)
	if err != nil {
		return err
	}

	rep := &report.Report{
		Title:       cfg.Name,
		Solution:    sol,
		ShowFlights: cfg.Report.Flights,
		Tolerance:   cfg.Solver.Tolerance,
	}
	if *cut {
		opts := flow.DefaultOptions()
		opts.Ctx = ctx
		if rep.Cut, err = flow.MinCut(g, from, to, opts); err != nil {
			return err
		}
	}
	if cfg.Analysis.Enabled {
		aopts := []analysis.Option{
			analysis.WithWorkers(cfg.Analysis.Workers),
			analysis.WithSolveOptions(solveOpts...),
		}
		if *verbose {
			aopts = append(aopts, analysis.WithLogger(logger))
		}
		if rep.Critical, err = analysis.Criticality(ctx, g, from, to, aopts...); err != nil {
			return err
		}
	}

	if err := rep.WriteText(stdout); err != nil {
		return err
	}
	if cfg.Report.PDF != "" {
		if err := rep.SavePDF(cfg.Report.PDF); err != nil {
			return err
		}
		logger.WithField("path", cfg.Report.PDF).Debug("pdf written")
	}
	return nil
}

// newLogger writes plain-text entries to w at warning level, or at debug
// level when verbose is set.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
