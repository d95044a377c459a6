// Package flow implements combinatorial maximum-flow algorithms on the
// time-expanded airport networks of package network. They are an
// alternative to the linear-programming solve in package maxflow and, since
// both must agree, an oracle for it.
//
// The key algorithms offered are:
//
//   - Edmonds–Karp
//
//   - Method: breadth-first search for shortest (fewest-edge) augmenting paths.
//
//   - Time:   O(V · E²) in the worst case.
//
//   - Memory: O(V + E) for the residual maps and BFS queue.
//
//   - Dinic
//
//   - Method: level graph construction + blocking flow via DFS.
//
//   - Time:   O(V² · E) worst case, far less on shallow acyclic networks.
//
//   - Memory: O(V + E) for levels, iterators and recursion state.
//
// # Network conventions
//
// The source is (origin, 1) and the sink is (destination, H). Edge
// capacities come from network.Graph.CapacityFor, so the gate holding edge
// of the requested origin is open and every other gate stays closed.
// Holding edges are unbounded (+Inf); every origin/destination path
// crosses at least one flight, so the flow is always finite.
//
// Parallel edges between the same pair of time nodes are aggregated in the
// residual network. The per-edge flow vector returned by each algorithm
// splits the pair's flow over those edges in EdgeID order, every edge
// taking up to its capacity.
//
// # API
//
//	type FlowOptions struct {
//	    Ctx                  context.Context // for cancellation / timeouts
//	    Epsilon              float64         // ignore capacities ≤ Epsilon
//	    Verbose              bool               // log each augmentation at debug level
//	    Logger               logrus.FieldLogger // destination of Verbose logs
//	    LevelRebuildInterval int             // Dinic only: rebuild level graph every N pushes
//	}
//
//	func Dinic(g *network.Graph, origin, destination network.Station, opts FlowOptions) (float64, []float64, error)
//	func EdmondsKarp(g *network.Graph, origin, destination network.Station, opts FlowOptions) (float64, []float64, error)
//	func MinCut(g *network.Graph, origin, destination network.Station, opts FlowOptions) (*Cut, error)
//
// # Errors
//
//	ErrSourceNotFound - the origin station is missing from the graph.
//	ErrSinkNotFound   - the destination station is missing.
//	ErrSameTerminal   - origin and destination coincide.
//	context.Canceled / context.DeadlineExceeded - if opts.Ctx is done.
package flow
