package maxflow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/paxflow/network"
)

// Verify checks sol against g:
//
//  1. one flow per edge, each in [0, capacity] within tol;
//  2. inflow = outflow at every node except (origin,1) and (destination,H);
//  3. out(origin,1) = in(destination,H) = sol.Value.
//
// A violation is returned wrapped in ErrInconsistent.
//
// Complexity: O(V + E).
func Verify(g *network.Graph, sol *Solution, tol float64) error {
	if len(sol.flows) != g.EdgeCount() {
		return fmt.Errorf("%w: %d flows for %d edges", ErrInconsistent, len(sol.flows), g.EdgeCount())
	}
	if err := checkTerminals(g, sol.Origin, sol.Destination); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistent, err)
	}
	for _, e := range g.Edges() {
		f, c := sol.flows[e.ID], g.CapacityFor(e.ID, sol.Origin)
		if math.IsNaN(f) || f < -tol || f > c+tol {
			return fmt.Errorf("%w: edge %s carries %g outside [0, %g]", ErrInconsistent, e.Label, f, c)
		}
	}

	source, _ := g.Node(sol.Origin, 1)
	sink, _ := g.Node(sol.Destination, g.Horizon())
	flowIn := func(n network.NodeID) float64 { return total(sol.flows, g.In(n)) }
	flowOut := func(n network.NodeID) float64 { return total(sol.flows, g.Out(n)) }
	for i := range g.Nodes() {
		n := network.NodeID(i)
		if n == source || n == sink {
			continue
		}
		if in, out := flowIn(n), flowOut(n); math.Abs(in-out) > tol {
			return fmt.Errorf("%w: conservation at %s: in %g, out %g", ErrInconsistent, g.NodeOf(n), in, out)
		}
	}

	out, in := flowOut(source), flowIn(sink)
	if math.Abs(out-in) > tol {
		return fmt.Errorf("%w: %g leave %s but %g reach %s",
			ErrInconsistent, out, g.NodeOf(source), in, g.NodeOf(sink))
	}
	if math.Abs(in-sol.Value) > tol {
		return fmt.Errorf("%w: value %g but %g reach %s", ErrInconsistent, sol.Value, in, g.NodeOf(sink))
	}

	return nil
}

func total(flows []float64, edges []network.EdgeID) float64 {
	s := 0.0
	for _, e := range edges {
		s += flows[e]
	}
	return s
}
