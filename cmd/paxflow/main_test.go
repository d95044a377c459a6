package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const scenario = "../../scenarios/lax_jfk/scenario.toml"

func runArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunScenario(t *testing.T) {
	out, _, err := runArgs(t, "-config", scenario, "-method", "dinic")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "LAX to JFK\nmax flow LAX -> JFK: 4655 (dinic, "), out)
	require.Contains(t, out, "FLIGHT")
	require.Contains(t, out, "LAX7-JFK15")
}

func TestRunTimetableFlags(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "flights.csv")
	require.NoError(t, os.WriteFile(csv, []byte(
		"flight,from,dep,to,arr,seats\n"+
			"UA100,LAX,6,ORD,10,180\n"+
			"UA200,ORD,12,JFK,15,120\n"+
			"AA1,LAX,8,JFK,16,200\n"), 0o644))
	pdf := filepath.Join(dir, "out.pdf")

	out, logs, err := runArgs(t, "-timetable", csv, "-origin", "lax", "-destination", "jfk",
		"-cut", "-critical", "-workers", "2", "-pdf", pdf, "-v")
	require.NoError(t, err)
	require.Contains(t, out, "max flow LAX -> JFK: 320 (simplex, ")
	require.Contains(t, out, "minimum cut: 320 seats on 2 flights")
	require.Contains(t, out, "critical flights: 3")
	require.NotContains(t, out, "FLIGHT  FROM")
	require.Contains(t, logs, `level=debug msg="network built"`)
	require.Contains(t, logs, "flights=3")
	require.Contains(t, logs, "stations=3")
	require.Contains(t, logs, `msg="maxflow: solved"`)
	require.Contains(t, logs, `msg="analysis: re-solved without flight"`)
	require.Contains(t, logs, "flight=AA1")

	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestQuietByDefault(t *testing.T) {
	_, logs, err := runArgs(t, "-config", scenario, "-method", "dinic")
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	quiet := newLogger(&buf, false)
	quiet.Info("hidden")
	quiet.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `level=warning msg=shown`)
	require.Equal(t, logrus.DebugLevel, newLogger(&buf, true).GetLevel())
}

func TestRunUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"no input":        {},
		"unknown flag":    {"-nope"},
		"stray argument":  {"-config", scenario, "extra"},
		"same terminals":  {"-config", scenario, "-destination", "LAX"},
		"bad method":      {"-config", scenario, "-method", "guess"},
		"missing origin":  {"-timetable", "flights.csv"},
		"negative worker": {"-config", scenario, "-workers", "-1"},
	}
	for name, args := range cases {
		_, _, err := runArgs(t, args...)
		require.ErrorIs(t, err, errUsage, name)
	}
}

func TestRunFailures(t *testing.T) {
	_, _, err := runArgs(t, "-config", "missing.toml")
	require.Error(t, err)

	_, _, err = runArgs(t, "-config", scenario, "-origin", "XXX", "-stations", "XXX,JFK")
	require.Error(t, err)

	_, _, err = runArgs(t, "-timetable", "missing.csv", "-origin", "LAX", "-destination", "JFK")
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"LAX", "ORD", "JFK"}, splitList(" LAX, ORD,,JFK "))
	require.Nil(t, splitList(""))
}
