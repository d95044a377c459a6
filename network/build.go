package network

import (
	"fmt"
	"math"
	"strings"
)

// Build constructs the time-expanded network for stations over the horizon
// (24 hours unless WithHorizon says otherwise) and the given flights.
//
// stations is ordered: the first element is the origin, whose gate edge
// (origin,1)→(origin,2) is unbounded; every other station's gate is closed.
// By convention the last element is the destination.
//
// Steps:
//  1. Resolve options (horizon, duplicate policy).
//  2. Validate the station list: at least two, non-empty, unique (O(S)).
//  3. For each station emit H-1 holding edges; gate capacity 0 except for
//     stations[0] (O(S·H)).
//  4. For each flight validate stations, hours and capacity, then emit a
//     flight edge (from,dep)→(to,arr); flights sharing both endpoints are
//     merged, kept or rejected according to the policy (O(F)).
//
// Build is pure: it returns a new immutable Graph, or an error and no Graph.
// Flight problems come back as *FlightError wrapping ErrUnknownStation,
// ErrInvalidFlightSpec or ErrDuplicateFlight.
//
// Complexity:
//
//	Time:   O(S·H + F)
//	Memory: O(S·H + F)
func Build(stations []Station, flights []FlightSpec, opts ...Option) (*Graph, error) {
	cfg := newBuildConfig(opts...)
	H := cfg.horizon

	if len(stations) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNoStations, len(stations))
	}
	index := make(map[Station]int, len(stations))
	for i, s := range stations {
		if s == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyStation, i)
		}
		if prev, dup := index[s]; dup {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateStation, s, prev, i)
		}
		index[s] = i
	}

	g := &Graph{
		stations: append([]Station(nil), stations...),
		index:    index,
		horizon:  H,
		policy:   cfg.duplicates,
		specs:    append([]FlightSpec(nil), flights...),
		in:       make([][]EdgeID, len(stations)*H),
		out:      make([][]EdgeID, len(stations)*H),
		holding:  make([]EdgeID, 0, len(stations)*(H-1)),
		bySpec:   make([]EdgeID, len(flights)),
		between:  make(map[[2]NodeID][]EdgeID),
	}
	g.edges = make([]Edge, 0, len(stations)*(H-1)+len(flights))

	// Holding edges, station by station.
	for si, s := range stations {
		for h := 1; h < H; h++ {
			capacity := math.Inf(1)
			if h == 1 && si != 0 {
				capacity = 0 // no passengers wait at a connecting airport before the horizon
			}
			id := g.addEdge(Edge{
				Kind:     KindHolding,
				From:     TimeNode{Station: s, Hour: h},
				To:       TimeNode{Station: s, Hour: h + 1},
				Capacity: capacity,
				Gate:     h == 1,
				Label:    fmt.Sprintf("%s@%d→%d", s, h, h+1),
			})
			g.holding = append(g.holding, id)
		}
	}

	// Flight edges, in timetable order.
	for i, f := range flights {
		if err := g.validateFlight(i, f); err != nil {
			return nil, err
		}
		from := TimeNode{Station: f.From, Hour: f.DepHour}
		to := TimeNode{Station: f.To, Hour: f.ArrHour}
		key := [2]NodeID{g.nodeID(from), g.nodeID(to)}

		if existing := g.between[key]; len(existing) > 0 {
			first := existing[0]
			switch cfg.duplicates {
			case DuplicateReject:
				return nil, flightErrorf(ErrDuplicateFlight, i, f,
					"same endpoints as flight #%d", g.edges[first].Flights[0])
			case DuplicateMerge:
				e := &g.edges[first]
				e.Capacity += float64(f.Capacity)
				e.Flights = append(e.Flights, i)
				e.Note = mergeNote(g.specs, e.Flights)
				g.bySpec[i] = first
				continue
			}
		}

		id := g.addEdge(Edge{
			Kind:     KindFlight,
			From:     from,
			To:       to,
			Capacity: float64(f.Capacity),
			Label:    f.Name(),
			Flights:  []int{i},
		})
		g.flights = append(g.flights, id)
		g.bySpec[i] = id
		g.between[key] = append(g.between[key], id)
	}

	return g, nil
}

// validateFlight checks one timetable record against the station list and
// the horizon.
func (g *Graph) validateFlight(i int, f FlightSpec) error {
	if _, ok := g.index[f.From]; !ok {
		return flightErrorf(ErrUnknownStation, i, f, "departure station %q not in station list", f.From)
	}
	if _, ok := g.index[f.To]; !ok {
		return flightErrorf(ErrUnknownStation, i, f, "arrival station %q not in station list", f.To)
	}
	if f.From == f.To {
		return flightErrorf(ErrInvalidFlightSpec, i, f, "departs and lands at the same station")
	}
	if f.DepHour < 1 || f.DepHour >= f.ArrHour || f.ArrHour > g.horizon {
		return flightErrorf(ErrInvalidFlightSpec, i, f,
			"hours must satisfy 1 ≤ dep < arr ≤ %d", g.horizon)
	}
	if f.Capacity <= 0 {
		return flightErrorf(ErrInvalidFlightSpec, i, f, "capacity must be positive")
	}

	return nil
}

// addEdge assigns the next EdgeID and records adjacency.
func (g *Graph) addEdge(e Edge) EdgeID {
	e.ID = EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	u, v := g.nodeID(e.From), g.nodeID(e.To)
	g.out[u] = append(g.out[u], e.ID)
	g.in[v] = append(g.in[v], e.ID)

	return e.ID
}

func mergeNote(specs []FlightSpec, idx []int) string {
	names := make([]string, len(idx))
	for i, k := range idx {
		names[i] = specs[k].Name()
	}
	return "merged duplicate flights: " + strings.Join(names, ", ")
}
