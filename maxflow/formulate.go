package maxflow

import (
	"fmt"

	"github.com/katalvlaran/paxflow/linprog"
	"github.com/katalvlaran/paxflow/network"
)

// Formulation is the linear program of a max-flow-over-time instance.
// Variable i of Problem is the flow on EdgeID i.
type Formulation struct {
	Problem     *linprog.Problem
	Origin      network.Station
	Destination network.Station
	// Source is (Origin, 1) and Sink is (Destination, H).
	Source, Sink network.NodeID
	// ConservationRow[n] is the constraint index of node n, or -1 for
	// Source and Sink.
	ConservationRow []int
	// CouplingRow is the index of out(Source) − in(Sink) = 0.
	CouplingRow int
}

// Formulate maps g to its linear program for a flow from origin to
// destination:
//
//	maximize    Σ x_e               over e entering Sink
//	subject to  Σ in(n) − Σ out(n) = 0 for every node n ∉ {Source, Sink}
//	            Σ out(Source) − Σ in(Sink) = 0
//	            0 ≤ x_e ≤ capacity(e)
//
// Capacities come from Graph.CapacityFor, so origin's gate is open. The
// coupling row is implied by the conservation rows; it is kept because it
// defines the flow value on both ends.
//
// Formulate is pure: g is not modified and the Problem shares nothing with it.
//
// Complexity: O(V + E).
func Formulate(g *network.Graph, origin, destination network.Station) (*Formulation, error) {
	if err := checkTerminals(g, origin, destination); err != nil {
		return nil, err
	}
	source, _ := g.Node(origin, 1)
	sink, _ := g.Node(destination, g.Horizon())

	p := &linprog.Problem{Name: fmt.Sprintf("maxflow %s→%s", origin, destination)}
	for _, e := range g.Edges() {
		p.AddVariable(e.Label, 0, g.CapacityFor(e.ID, origin))
	}

	f := &Formulation{
		Problem:         p,
		Origin:          origin,
		Destination:     destination,
		Source:          source,
		Sink:            sink,
		ConservationRow: make([]int, g.NodeCount()),
	}
	for i, n := range g.Nodes() {
		id := network.NodeID(i)
		if id == source || id == sink {
			f.ConservationRow[i] = -1
			continue
		}
		terms := make([]linprog.Term, 0, len(g.In(id))+len(g.Out(id)))
		terms = appendTerms(terms, g.In(id), 1)
		terms = appendTerms(terms, g.Out(id), -1)
		f.ConservationRow[i] = p.AddConstraint("conserve "+n.String(), 0, terms...)
	}

	coupling := appendTerms(nil, g.Out(source), 1)
	coupling = appendTerms(coupling, g.In(sink), -1)
	f.CouplingRow = p.AddConstraint("coupling", 0, coupling...)

	p.SetObjective(linprog.Maximize, appendTerms(nil, g.In(sink), 1)...)

	return f, nil
}

func appendTerms(terms []linprog.Term, edges []network.EdgeID, coef float64) []linprog.Term {
	for _, e := range edges {
		terms = append(terms, linprog.Term{Var: int(e), Coef: coef})
	}
	return terms
}

// checkTerminals validates origin and destination against g.
func checkTerminals(g *network.Graph, origin, destination network.Station) error {
	if !g.HasStation(origin) {
		return fmt.Errorf("%w: origin %q", ErrUnknownStation, origin)
	}
	if !g.HasStation(destination) {
		return fmt.Errorf("%w: destination %q", ErrUnknownStation, destination)
	}
	if origin == destination {
		return fmt.Errorf("%w: %q", ErrSameStation, origin)
	}
	return nil
}
