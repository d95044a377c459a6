package network

import (
	"fmt"
	"math"
)

// Graph is the immutable time-expanded network produced by Build.
//
// Nodes are implicit: NodeID = stationIndex*H + (hour-1). Edges live in one
// slice indexed by EdgeID; in/out hold per-node adjacency. All accessors
// return copies, so callers cannot mutate the graph.
type Graph struct {
	stations []Station
	index    map[Station]int
	horizon  int
	policy   DuplicatePolicy

	specs []FlightSpec
	edges []Edge

	in, out [][]EdgeID // per NodeID
	holding []EdgeID   // stationIndex*(H-1) + (hour-1)
	flights []EdgeID   // flight edges in creation order
	bySpec  []EdgeID   // FlightSpec index → carrying edge

	between map[[2]NodeID][]EdgeID // flight edges by (from,to) node pair
}

// Stations returns the ordered station list.
func (g *Graph) Stations() []Station {
	return append([]Station(nil), g.stations...)
}

// Horizon returns the number of hourly steps H.
func (g *Graph) Horizon() int { return g.horizon }

// DuplicatePolicy returns the policy the graph was built with.
func (g *Graph) DuplicatePolicy() DuplicatePolicy { return g.policy }

// Origin returns the first station, whose gate edge is open.
func (g *Graph) Origin() Station { return g.stations[0] }

// Destination returns the last station.
func (g *Graph) Destination() Station { return g.stations[len(g.stations)-1] }

// HasStation reports whether s is part of the station list.
func (g *Graph) HasStation(s Station) bool {
	_, ok := g.index[s]
	return ok
}

// NodeCount returns S·H.
func (g *Graph) NodeCount() int { return len(g.in) }

// EdgeCount returns the number of holding plus flight edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the NodeID of (s, hour).
// Errors: ErrUnknownStation, ErrHourOutOfRange.
func (g *Graph) Node(s Station, hour int) (NodeID, error) {
	if _, ok := g.index[s]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStation, s)
	}
	if hour < 1 || hour > g.horizon {
		return 0, fmt.Errorf("%w: %d not in [1,%d]", ErrHourOutOfRange, hour, g.horizon)
	}

	return g.nodeID(TimeNode{Station: s, Hour: hour}), nil
}

// NodeOf is the inverse of Node. It panics on an id outside [0, NodeCount).
func (g *Graph) NodeOf(id NodeID) TimeNode {
	si, h := int(id)/g.horizon, int(id)%g.horizon
	return TimeNode{Station: g.stations[si], Hour: h + 1}
}

// Nodes returns every TimeNode in NodeID order.
func (g *Graph) Nodes() []TimeNode {
	nodes := make([]TimeNode, 0, len(g.in))
	for _, s := range g.stations {
		for h := 1; h <= g.horizon; h++ {
			nodes = append(nodes, TimeNode{Station: s, Hour: h})
		}
	}

	return nodes
}

// Edges returns every edge in EdgeID order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i := range g.edges {
		out[i] = cloneEdge(g.edges[i])
	}

	return out
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id EdgeID) (Edge, error) {
	if id < 0 || int(id) >= len(g.edges) {
		return Edge{}, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}

	return cloneEdge(g.edges[id]), nil
}

// In returns the ids of edges entering node id.
func (g *Graph) In(id NodeID) []EdgeID {
	return append([]EdgeID(nil), g.in[id]...)
}

// Out returns the ids of edges leaving node id.
func (g *Graph) Out(id NodeID) []EdgeID {
	return append([]EdgeID(nil), g.out[id]...)
}

// Holding returns the holding edge (s,hour)→(s,hour+1).
// Errors: ErrUnknownStation, ErrHourOutOfRange (hour must be in [1,H-1]).
func (g *Graph) Holding(s Station, hour int) (Edge, error) {
	si, ok := g.index[s]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %q", ErrUnknownStation, s)
	}
	if hour < 1 || hour >= g.horizon {
		return Edge{}, fmt.Errorf("%w: holding edge from hour %d not in [1,%d]",
			ErrHourOutOfRange, hour, g.horizon-1)
	}

	return cloneEdge(g.edges[g.holding[si*(g.horizon-1)+hour-1]]), nil
}

// FlightEdges returns the flight edges in creation order.
func (g *Graph) FlightEdges() []Edge {
	out := make([]Edge, len(g.flights))
	for i, id := range g.flights {
		out[i] = cloneEdge(g.edges[id])
	}

	return out
}

// Between returns the flight edges from one TimeNode to another. Under
// DuplicateKeep there may be several; otherwise at most one.
func (g *Graph) Between(from, to TimeNode) []Edge {
	u, err := g.Node(from.Station, from.Hour)
	if err != nil {
		return nil
	}
	v, err := g.Node(to.Station, to.Hour)
	if err != nil {
		return nil
	}
	ids := g.between[[2]NodeID{u, v}]
	out := make([]Edge, len(ids))
	for i, id := range ids {
		out[i] = cloneEdge(g.edges[id])
	}

	return out
}

// Specs returns the timetable the graph was built from.
func (g *Graph) Specs() []FlightSpec {
	return append([]FlightSpec(nil), g.specs...)
}

// EdgeOfFlight returns the id of the edge carrying timetable record i.
func (g *Graph) EdgeOfFlight(i int) (EdgeID, error) {
	if i < 0 || i >= len(g.bySpec) {
		return 0, fmt.Errorf("%w: no flight #%d", ErrEdgeNotFound, i)
	}

	return g.bySpec[i], nil
}

// CapacityFor returns the capacity edge id has when flow starts at origin.
// It equals Edge.Capacity except for origin's gate edge, which is always
// unbounded: the origin is the one place passengers are before hour 2.
func (g *Graph) CapacityFor(id EdgeID, origin Station) float64 {
	e := g.edges[id]
	if e.Gate && e.From.Station == origin {
		return math.Inf(1)
	}

	return e.Capacity
}

// Without rebuilds the graph with timetable record i removed, keeping
// stations, horizon and duplicate policy.
func (g *Graph) Without(i int) (*Graph, error) {
	if i < 0 || i >= len(g.specs) {
		return nil, fmt.Errorf("%w: no flight #%d", ErrEdgeNotFound, i)
	}
	specs := make([]FlightSpec, 0, len(g.specs)-1)
	specs = append(specs, g.specs[:i]...)
	specs = append(specs, g.specs[i+1:]...)

	return Build(g.stations, specs, WithHorizon(g.horizon), WithDuplicates(g.policy))
}

// WithCapacity rebuilds the graph with timetable record i carrying seats
// seats instead of its scheduled capacity.
func (g *Graph) WithCapacity(i, seats int) (*Graph, error) {
	if i < 0 || i >= len(g.specs) {
		return nil, fmt.Errorf("%w: no flight #%d", ErrEdgeNotFound, i)
	}
	specs := g.Specs()
	specs[i].Capacity = seats

	return Build(g.stations, specs, WithHorizon(g.horizon), WithDuplicates(g.policy))
}

func (g *Graph) nodeID(n TimeNode) NodeID {
	return NodeID(g.index[n.Station]*g.horizon + n.Hour - 1)
}

func cloneEdge(e Edge) Edge {
	e.Flights = append([]int(nil), e.Flights...)
	return e
}
