package flow

import "github.com/katalvlaran/paxflow/network"

// Cut is a minimum origin/destination cut of the time-expanded graph.
type Cut struct {
	// Capacity is the summed capacity of Edges; it equals the max flow.
	Capacity float64
	// Edges cross from the source side to the sink side, in EdgeID order.
	Edges []network.EdgeID
	// SourceSide[n] reports whether node n is reachable from the source in
	// the final residual network.
	SourceSide []bool
}

// MinCut runs Dinic and returns the cut separating the nodes still
// reachable from (origin, 1) in the residual network from the rest. Every
// crossing edge is saturated; holding edges never cross since they are
// unbounded, so the cut consists of flights.
func MinCut(g *network.Graph, origin, destination network.Station, opts FlowOptions) (*Cut, error) {
	opts.normalize()

	r, err := buildResidual(g, origin, destination, opts)
	if err != nil {
		return nil, err
	}
	if _, err = dinicOn(r, opts); err != nil {
		return nil, err
	}

	side := r.reachable(opts.Epsilon)
	cut := &Cut{SourceSide: side}
	for _, e := range g.Edges() {
		c := g.CapacityFor(e.ID, origin)
		if c <= opts.Epsilon {
			continue
		}
		u, _ := g.Node(e.From.Station, e.From.Hour)
		v, _ := g.Node(e.To.Station, e.To.Hour)
		if side[u] && !side[v] {
			cut.Edges = append(cut.Edges, e.ID)
			cut.Capacity += c
		}
	}

	return cut, nil
}
