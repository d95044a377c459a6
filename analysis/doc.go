// Package analysis measures how much each scheduled flight contributes to
// the maximum passenger flow of a network.
//
// Criticality solves the network once, then once more per flight with that
// flight removed (network.Graph.Without). The re-solves are independent and
// run on a bounded ants worker pool; each task owns its graph and solver, so
// nothing is shared but the read-only input.
//
//	res, err := analysis.Criticality(ctx, g, "LAX", "JFK",
//	    analysis.WithWorkers(8),
//	    analysis.WithSolveOptions(maxflow.WithMethod(maxflow.MethodDinic)))
//	for _, im := range res.Critical(1e-6) {
//	    fmt.Println(im.Flight.Name(), im.Loss)
//	}
//
// A flight that carries no passengers in the base solution cannot lower the
// maximum when removed (the base flow stays feasible), so it is reported
// with zero loss without a re-solve.
package analysis
