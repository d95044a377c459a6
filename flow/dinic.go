package flow

import (
	"context"
	"math"

	"github.com/katalvlaran/paxflow/network"
)

// Dinic computes the maximum flow from (origin, 1) to (destination, H) in
// the time-expanded graph g using Dinic's algorithm (level graph + blocking
// flows). The origin's gate is opened regardless of the graph's default
// origin.
//
// It returns:
//   - maxFlow : the total flow value
//   - flows   : flow per EdgeID, parallel edges filled in EdgeID order
//   - err     : ErrSourceNotFound, ErrSinkNotFound, ErrSameTerminal or a
//     context error
//
// Steps:
//  1. Normalize options (O(1)).
//  2. Build the residual network via buildResidual (O(V + E)).
//  3. Repeat until the sink is unreachable:
//     a. Check for cancellation (O(1)).
//     b. BFS from the source to assign levels (O(V + E)).
//     c. If the sink has no level, stop.
//     d. DFS-based blocking flow pushes along level+1 arcs until none
//     remains, optionally rebuilding levels every LevelRebuildInterval
//     augmentations.
//  4. Spread pair flows over edges via edgeFlows (O(E)).
//
// Complexity:
//
//	Time:   O(V²·E) worst case; the time-expanded graph is acyclic and
//	        levels stay shallow, so few phases are needed in practice.
//	Memory: O(V + E).
func Dinic(g *network.Graph, origin, destination network.Station, opts FlowOptions) (maxFlow float64, flows []float64, err error) {
	opts.normalize()

	r, err := buildResidual(g, origin, destination, opts)
	if err != nil {
		return 0, nil, err
	}
	if maxFlow, err = dinicOn(r, opts); err != nil {
		return maxFlow, nil, err
	}

	return maxFlow, r.edgeFlows(g, origin, opts.Epsilon), nil
}

// dinicOn runs the phases of Dinic on r until the sink is unreachable.
func dinicOn(r *residual, opts FlowOptions) (maxFlow float64, err error) {
	ctx := opts.Ctx
	augmentCount := 0
	level := make([]int, len(r.adj))
	iter := make([]int, len(r.adj))
	for {
		if err = ctx.Err(); err != nil {
			return maxFlow, err
		}

		for u := range level {
			level[u] = -1
			iter[u] = 0
		}
		level[r.source] = 0
		queue := []network.NodeID{r.source}
		for i := 0; i < len(queue); i++ {
			u := queue[i]
			for _, v := range r.adj[u] {
				if r.capMap[u][v] > opts.Epsilon && level[v] < 0 {
					level[v] = level[u] + 1
					queue = append(queue, v)
				}
			}
		}
		if level[r.sink] < 0 {
			return maxFlow, nil
		}

		for {
			if err = ctx.Err(); err != nil {
				return maxFlow, err
			}
			pushed := dfsDinicPush(ctx, r, level, iter, r.source, math.Inf(1), opts.Epsilon)
			if pushed <= opts.Epsilon {
				break
			}
			maxFlow += pushed
			augmentCount++
			opts.debug("dinic", pushed, maxFlow)
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}
}

// dfsDinicPush recursively pushes flow along level+1 arcs, advancing iter
// past exhausted arcs, and returns the amount sent.
func dfsDinicPush(
	ctx context.Context,
	r *residual,
	level, iter []int,
	u network.NodeID,
	available, eps float64,
) float64 {
	if ctx.Err() != nil {
		return 0
	}
	if u == r.sink {
		return available
	}
	for ; iter[u] < len(r.adj[u]); iter[u]++ {
		v := r.adj[u][iter[u]]
		capUV := r.capMap[u][v]
		if capUV <= eps || level[v] != level[u]+1 {
			continue
		}
		pushed := dfsDinicPush(ctx, r, level, iter, v, math.Min(available, capUV), eps)
		if pushed > eps {
			r.push(u, v, pushed)
			return pushed
		}
	}

	return 0
}
