package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/paxflow/flow"
	"github.com/katalvlaran/paxflow/network"
)

// TestMinCutMatchesMaxFlow checks max-flow/min-cut duality on every
// scenario and on the full timetable.
func TestMinCutMatchesMaxFlow(t *testing.T) {
	for _, sc := range scenarios {
		g, err := network.Build(sc.stations, sc.flights)
		require.NoError(t, err, sc.name)
		origin, destination := sc.stations[0], sc.stations[len(sc.stations)-1]

		cut, err := flow.MinCut(g, origin, destination, flow.DefaultOptions())
		require.NoError(t, err, sc.name)
		require.Equal(t, sc.want, cut.Capacity, sc.name)

		source, _ := g.Node(origin, 1)
		sink, _ := g.Node(destination, g.Horizon())
		require.True(t, cut.SourceSide[source])
		require.False(t, cut.SourceSide[sink])
	}

	g := loadLAXJFK(t)
	cut, err := flow.MinCut(g, "LAX", "JFK", flow.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 4655.0, cut.Capacity)
	for _, id := range cut.Edges {
		e, err := g.Edge(id)
		require.NoError(t, err)
		require.Equal(t, network.KindFlight, e.Kind, e.Label)
	}
}

// TestMinCutBottleneck names the onward flight as the whole cut.
func TestMinCutBottleneck(t *testing.T) {
	g, err := network.Build(
		[]network.Station{"ORG", "HUB", "DST"},
		[]network.FlightSpec{
			{Label: "in", From: "ORG", DepHour: 4, To: "HUB", ArrHour: 7, Capacity: 200},
			{Label: "out", From: "HUB", DepHour: 9, To: "DST", ArrHour: 13, Capacity: 80},
		},
	)
	require.NoError(t, err)

	cut, err := flow.MinCut(g, "ORG", "DST", flow.DefaultOptions())
	require.NoError(t, err)
	out, _ := g.EdgeOfFlight(1)
	require.Equal(t, []network.EdgeID{out}, cut.Edges)
}

func TestMinCutErrors(t *testing.T) {
	g, err := network.Build([]network.Station{"ORG", "DST"}, nil)
	require.NoError(t, err)

	_, err = flow.MinCut(g, "ORG", "ORG", flow.DefaultOptions())
	require.ErrorIs(t, err, flow.ErrSameTerminal)
}
