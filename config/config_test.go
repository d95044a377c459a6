package config_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/paxflow/config"
	"github.com/katalvlaran/paxflow/maxflow"
	"github.com/katalvlaran/paxflow/network"
)

func TestLoadScenario(t *testing.T) {
	c, err := config.Load("../scenarios/lax_jfk/scenario.toml")
	require.NoError(t, err)

	assert.Equal(t, "LAX to JFK", c.Name)
	assert.Equal(t, network.Station("LAX"), c.OriginStation())
	assert.Equal(t, network.Station("JFK"), c.DestinationStation())
	assert.Equal(t, filepath.Join("..", "scenarios", "lax_jfk", "timetable.csv"), c.Timetable)
	assert.Equal(t, 60*time.Second, c.Solver.Timeout.Duration)
	assert.Equal(t, 4, c.Analysis.Workers)
	assert.True(t, c.Report.Flights)

	g, err := c.BuildGraph()
	require.NoError(t, err)
	assert.Len(t, g.Stations(), 12)
	assert.Equal(t, network.Station("LAX"), g.Origin())
	assert.Equal(t, network.Station("JFK"), g.Destination())
	assert.Len(t, g.Specs(), 51)
}

func TestParseDefaultsAndInlineFlights(t *testing.T) {
	c, err := config.Parse(`
origin = "org"
destination = "dst"

[[flight]]
label = "direct"
from = "org"
dep = 2
to = "dst"
arr = 6
seats = 50

[[flight]]
from = "ORG"
dep = 3
to = "DST"
arr = 8
seats = 75

[solver]
method = "dinic"
timeout = "1m30s"

[report]
pdf = "out/report.pdf"
`, "/tmp/scenario")
	require.NoError(t, err)

	assert.Equal(t, network.DefaultHorizon, c.Horizon)
	assert.Equal(t, "merge", c.Duplicates)
	assert.Equal(t, 90*time.Second, c.Solver.Timeout.Duration)
	assert.Equal(t, maxflow.DefaultTolerance, c.Solver.Tolerance)
	assert.Equal(t, filepath.Join("/tmp/scenario", "out/report.pdf"), c.Report.PDF)
	assert.Greater(t, c.Analysis.Workers, 0)

	flights, err := c.FlightSpecs()
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, network.FlightSpec{Label: "direct", From: "ORG", DepHour: 2, To: "DST", ArrHour: 6, Capacity: 50}, flights[0])
	assert.Equal(t, []network.Station{"ORG", "DST"}, c.StationList(flights))

	opts, err := c.SolveOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"no terminals":     `horizon = 24`,
		"same terminals":   "origin = \"LAX\"\ndestination = \"lax\"",
		"short horizon":    "origin = \"A\"\ndestination = \"B\"\nhorizon = 1",
		"bad policy":       "origin = \"A\"\ndestination = \"B\"\nduplicates = \"sum\"",
		"bad method":       "origin = \"A\"\ndestination = \"B\"\n[solver]\nmethod = \"magic\"",
		"bad tolerance":    "origin = \"A\"\ndestination = \"B\"\n[solver]\ntolerance = -1.0",
		"unknown key":      "origin = \"A\"\ndestination = \"B\"\ncolour = \"red\"",
		"missing terminal": "origin = \"A\"\ndestination = \"B\"\nstations = [\"A\", \"C\"]",
	}
	for name, data := range cases {
		_, err := config.Parse(data, ".")
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, config.ErrInvalid), "%s: %v", name, err)
	}

	_, err := config.Parse("origin = \"A\"\ndestination = \"B\"\n[solver]\ntimeout = \"soon\"", ".")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("testdata/missing.toml")
	require.Error(t, err)
}
