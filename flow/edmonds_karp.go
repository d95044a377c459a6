package flow

import (
	"math"

	"github.com/katalvlaran/paxflow/network"
)

// EdmondsKarp computes the same maximum flow as Dinic using shortest
// (fewest-edge) augmenting paths found by BFS.
//
// It returns the flow value, flow per EdgeID and the errors listed on Dinic.
//
// Complexity: O(V · E²)
// Memory:     O(V + E)
func EdmondsKarp(g *network.Graph, origin, destination network.Station, opts FlowOptions) (maxFlow float64, flows []float64, err error) {
	opts.normalize()

	r, err := buildResidual(g, origin, destination, opts)
	if err != nil {
		return 0, nil, err
	}

	parent := make([]network.NodeID, len(r.adj))
	for {
		if err = opts.Ctx.Err(); err != nil {
			return maxFlow, nil, err
		}
		bottle := bfsAugmentingPath(r, parent, opts.Epsilon)
		if bottle <= opts.Epsilon {
			break
		}
		for v := r.sink; v != r.source; v = parent[v] {
			r.push(parent[v], v, bottle)
		}
		maxFlow += bottle
		opts.debug("edmonds-karp", bottle, maxFlow)
	}

	return maxFlow, r.edgeFlows(g, origin, opts.Epsilon), nil
}

// bfsAugmentingPath finds the shortest source→sink path with residual
// capacity > eps, records it in parent and returns its bottleneck, or 0 if
// the sink is unreachable.
func bfsAugmentingPath(r *residual, parent []network.NodeID, eps float64) float64 {
	bottle := make([]float64, len(r.adj))
	visited := make([]bool, len(r.adj))
	visited[r.source] = true
	bottle[r.source] = math.Inf(1)

	queue := []network.NodeID{r.source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, v := range r.adj[u] {
			c := r.capMap[u][v]
			if visited[v] || c <= eps {
				continue
			}
			visited[v] = true
			parent[v] = u
			bottle[v] = math.Min(bottle[u], c)
			if v == r.sink {
				return bottle[v]
			}
			queue = append(queue, v)
		}
	}
	return 0
}
