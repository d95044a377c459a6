package flow_test

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/paxflow/flow"
	"github.com/katalvlaran/paxflow/network"
)

// EdmondsKarpSuite groups tests for Edmonds–Karp.
type EdmondsKarpSuite struct {
	suite.Suite
}

// TestScenarios verifies the reference timetables.
func (s *EdmondsKarpSuite) TestScenarios() {
	runScenarios(s.T(), flow.EdmondsKarp)
}

// TestAgreesWithDinic on the full timetable, value and per-edge bounds.
func (s *EdmondsKarpSuite) TestAgreesWithDinic() {
	g := loadLAXJFK(s.T())

	ek, flows, err := flow.EdmondsKarp(g, "LAX", "JFK", flow.DefaultOptions())
	require.NoError(s.T(), err)
	dn, _, err := flow.Dinic(g, "LAX", "JFK", flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), dn, ek)
	checkFlows(s.T(), g, "LAX", "JFK", ek, flows)
}

// TestVerboseLogs writes one debug entry per augmentation to the logger.
func (s *EdmondsKarpSuite) TestVerboseLogs() {
	g, err := network.Build(
		[]network.Station{"ORG", "DST"},
		[]network.FlightSpec{
			{From: "ORG", DepHour: 2, To: "DST", ArrHour: 6, Capacity: 50},
			{From: "ORG", DepHour: 3, To: "DST", ArrHour: 8, Capacity: 75},
		},
	)
	require.NoError(s.T(), err)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts := flow.DefaultOptions()
	opts.Verbose = true
	opts.Logger = logger
	_, _, err = flow.EdmondsKarp(g, "ORG", "DST", opts)
	require.NoError(s.T(), err)

	entries := hook.AllEntries()
	require.Len(s.T(), entries, 2)
	for _, e := range entries {
		require.Equal(s.T(), logrus.DebugLevel, e.Level)
		require.Equal(s.T(), "flow: augmented", e.Message)
		require.Equal(s.T(), "edmonds-karp", e.Data["algorithm"])
	}
	require.Equal(s.T(), 125.0, entries[1].Data["total"])

	// Below debug level nothing is written.
	hook.Reset()
	logger.SetLevel(logrus.InfoLevel)
	_, _, err = flow.EdmondsKarp(g, "ORG", "DST", opts)
	require.NoError(s.T(), err)
	require.Empty(s.T(), hook.AllEntries())
}

// TestSourceSinkNotFound covers missing source or sink.
func (s *EdmondsKarpSuite) TestSourceSinkNotFound() {
	g, err := network.Build([]network.Station{"A", "B"}, nil)
	require.NoError(s.T(), err)

	_, _, err1 := flow.EdmondsKarp(g, "X", "A", flow.DefaultOptions())
	require.True(s.T(), errors.Is(err1, flow.ErrSourceNotFound))

	_, _, err2 := flow.EdmondsKarp(g, "A", "Z", flow.DefaultOptions())
	require.True(s.T(), errors.Is(err2, flow.ErrSinkNotFound))
}

func TestEdmondsKarpSuite(t *testing.T) {
	suite.Run(t, new(EdmondsKarpSuite))
}
