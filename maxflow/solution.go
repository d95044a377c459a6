package maxflow

import (
	"math"
	"time"

	"github.com/katalvlaran/paxflow/linprog"
	"github.com/katalvlaran/paxflow/network"
)

// Solution is the outcome of one solve. The per-edge flows are private;
// accessors return fresh slices.
type Solution struct {
	// Value is the maximum number of passengers leaving (Origin, 1) and
	// reaching (Destination, H).
	Value float64
	// Status is linprog.StatusOptimal for every returned solution.
	Status      linprog.Status
	Method      Method
	Origin      network.Station
	Destination network.Station
	Elapsed     time.Duration
	// Stats describes the LP solve; nil for the combinatorial methods.
	Stats *linprog.Stats

	// flows[e] is the flow on EdgeID e.
	flows []float64
	graph *network.Graph
}

// FlightFlow is the flow assigned to one timetable record.
type FlightFlow struct {
	// Index is the record's position in the timetable.
	Index  int
	Flight network.FlightSpec
	Edge   network.EdgeID
	Flow   float64
}

// Utilization returns Flow / seats, in [0,1].
func (f FlightFlow) Utilization() float64 {
	if f.Flight.Capacity <= 0 {
		return 0
	}
	return f.Flow / float64(f.Flight.Capacity)
}

// Graph returns the graph the solution belongs to.
func (s *Solution) Graph() *network.Graph { return s.graph }

// Flows returns a copy of the per-edge flows, indexed by EdgeID.
func (s *Solution) Flows() []float64 {
	return append([]float64(nil), s.flows...)
}

// Flow returns the flow on edge id, or 0 for an unknown id.
func (s *Solution) Flow(id network.EdgeID) float64 {
	if id < 0 || int(id) >= len(s.flows) {
		return 0
	}
	return s.flows[id]
}

// Inflow returns the total flow entering node n.
func (s *Solution) Inflow(n network.NodeID) float64 {
	return s.sum(s.graph.In(n))
}

// Outflow returns the total flow leaving node n.
func (s *Solution) Outflow(n network.NodeID) float64 {
	return s.sum(s.graph.Out(n))
}

func (s *Solution) sum(edges []network.EdgeID) float64 {
	total := 0.0
	for _, e := range edges {
		total += s.flows[e]
	}
	return total
}

// FlightFlows returns one entry per timetable record, in timetable order.
// A merged edge hands its flow to its flights in timetable order, each up
// to its own seats.
func (s *Solution) FlightFlows() []FlightFlow {
	specs := s.graph.Specs()
	out := make([]FlightFlow, len(specs))
	left := make(map[network.EdgeID]float64)
	for i, f := range specs {
		id, _ := s.graph.EdgeOfFlight(i)
		rem, ok := left[id]
		if !ok {
			rem = s.flows[id]
		}
		take := math.Min(rem, float64(f.Capacity))
		if take < 0 {
			take = 0
		}
		left[id] = rem - take
		out[i] = FlightFlow{Index: i, Flight: f, Edge: id, Flow: take}
	}

	return out
}

// Saturated returns the flights whose flow is within tol of their seats.
func (s *Solution) Saturated(tol float64) []FlightFlow {
	var out []FlightFlow
	for _, ff := range s.FlightFlows() {
		if ff.Flow > 0 && ff.Flow >= float64(ff.Flight.Capacity)-tol {
			out = append(out, ff)
		}
	}
	return out
}

// Used returns the flights carrying a flow above tol.
func (s *Solution) Used(tol float64) []FlightFlow {
	var out []FlightFlow
	for _, ff := range s.FlightFlows() {
		if ff.Flow > tol {
			out = append(out, ff)
		}
	}
	return out
}

// snap rounds values within tol of an integer to that integer. Basic
// optimal solutions of a network LP with integral capacities are integral,
// so this only removes floating-point noise.
func snap(v, tol float64) float64 {
	if r := math.Round(v); math.Abs(v-r) <= tol {
		return r
	}
	return v
}
