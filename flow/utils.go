package flow

import (
	"math"

	"github.com/katalvlaran/paxflow/network"
)

// residual holds the residual network of a time-expanded graph.
//
//   - capMap[u][v] is the remaining capacity u→v after summing all parallel
//     edges; it may be +Inf for holding edges.
//   - flowMap[u][v] is the net flow pushed u→v, antisymmetric
//     (flowMap[v][u] = -flowMap[u][v]). It is kept apart from capMap because
//     capacity minus residual is NaN on unbounded edges.
//   - adj[u] lists residual neighbours of u in first-seen edge order, so
//     every traversal is deterministic.
type residual struct {
	capMap  []map[network.NodeID]float64
	flowMap []map[network.NodeID]float64
	adj     [][]network.NodeID
	source  network.NodeID
	sink    network.NodeID
}

// buildResidual resolves the terminals and constructs the residual network
// of g for a flow leaving origin.
//
// Steps:
//  1. Validate origin and destination (O(1)).
//  2. Source = (origin, 1), sink = (destination, H).
//  3. For every edge in EdgeID order (O(E)):
//     a. Capacity via CapacityFor, so the origin's gate is open.
//     b. Skip capacities ≤ Epsilon and self-loops.
//     c. Aggregate into capMap[u][v]; register both directions in adj.
//
// Complexity: O(V + E) time and memory.
func buildResidual(g *network.Graph, origin, destination network.Station, opts FlowOptions) (*residual, error) {
	if !g.HasStation(origin) {
		return nil, ErrSourceNotFound
	}
	if !g.HasStation(destination) {
		return nil, ErrSinkNotFound
	}
	if origin == destination {
		return nil, ErrSameTerminal
	}
	if err := opts.Ctx.Err(); err != nil {
		return nil, err
	}

	n := g.NodeCount()
	r := &residual{
		capMap:  make([]map[network.NodeID]float64, n),
		flowMap: make([]map[network.NodeID]float64, n),
		adj:     make([][]network.NodeID, n),
	}
	for u := 0; u < n; u++ {
		r.capMap[u] = make(map[network.NodeID]float64)
		r.flowMap[u] = make(map[network.NodeID]float64)
	}
	r.source, _ = g.Node(origin, 1)
	r.sink, _ = g.Node(destination, g.Horizon())

	for _, e := range g.Edges() {
		c := g.CapacityFor(e.ID, origin)
		if c <= opts.Epsilon {
			continue
		}
		u, _ := g.Node(e.From.Station, e.From.Hour)
		v, _ := g.Node(e.To.Station, e.To.Hour)
		if u == v {
			continue
		}
		r.link(u, v)
		r.link(v, u)
		r.capMap[u][v] += c
	}

	return r, nil
}

func (r *residual) link(u, v network.NodeID) {
	if _, ok := r.capMap[u][v]; !ok {
		r.capMap[u][v] = 0
		r.adj[u] = append(r.adj[u], v)
	}
}

// push sends f units u→v.
func (r *residual) push(u, v network.NodeID, f float64) {
	r.capMap[u][v] -= f
	r.capMap[v][u] += f
	r.flowMap[u][v] += f
	r.flowMap[v][u] -= f
}

// reachable returns the nodes reachable from the source through arcs with
// residual capacity above eps.
func (r *residual) reachable(eps float64) []bool {
	seen := make([]bool, len(r.adj))
	seen[r.source] = true
	queue := []network.NodeID{r.source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, v := range r.adj[u] {
			if !seen[v] && r.capMap[u][v] > eps {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return seen
}

// edgeFlows spreads the net flow of every node pair over the graph's edges
// between that pair, in EdgeID order, each edge taking up to its capacity.
// Merged or parallel flights therefore fill in timetable order.
//
// Complexity: O(E).
func (r *residual) edgeFlows(g *network.Graph, origin network.Station, eps float64) []float64 {
	flows := make([]float64, g.EdgeCount())
	left := make(map[[2]network.NodeID]float64)
	for _, e := range g.Edges() {
		c := g.CapacityFor(e.ID, origin)
		if c <= eps {
			continue
		}
		u, _ := g.Node(e.From.Station, e.From.Hour)
		v, _ := g.Node(e.To.Station, e.To.Hour)
		key := [2]network.NodeID{u, v}
		f, ok := left[key]
		if !ok {
			f = r.flowMap[u][v]
		}
		if f <= eps {
			left[key] = 0
			continue
		}
		take := math.Min(f, c)
		flows[e.ID] = take
		left[key] = f - take
	}
	return flows
}
