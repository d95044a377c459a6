// Package network builds the time-expanded flow network of an airline
// timetable: every station is copied once per hour of the horizon, so a
// time-varying transport problem becomes a static max-flow problem.
//
// The Graph G = (V,E) has:
//
//   - One TimeNode per (Station, hour), hour ∈ [1,H]. A node stands for the
//     passengers present at the station during [hour, hour+1).
//   - One holding edge (S,h)→(S,h+1) per station and hour h ∈ [1,H-1].
//     Holding edges are unbounded, except the gate (S,1)→(S,2), which is
//     closed (capacity 0) for every station but the origin: nobody is at a
//     connecting airport before the horizon starts.
//   - One flight edge (A,dep)→(B,arr) per scheduled flight with capacity equal
//     to its seat count. Passengers are in flight between the two nodes and
//     occupy no intermediate hour.
//
// Quick picture (H = 4, one flight LAX@1 → JFK@3):
//
//	LAX1 ──∞──▶ LAX2 ──∞──▶ LAX3 ──∞──▶ LAX4
//	  ╲
//	   ╲ 100 seats
//	    ▼
//	JFK1 ──0──▶ JFK2 ──∞──▶ JFK3 ──∞──▶ JFK4
//	            (edge lands on JFK3)
//
// Nodes and edges are generated from the ordered station list and the flight
// list; nothing is enumerated by hand. Lookups go through (station, hour)
// keys:
//
//	g, err := network.Build(stations, flights)
//	id, _ := g.Node("JFK", 24)
//	for _, eid := range g.In(id) { ... }
//
// A Graph is immutable once Build returns. Every accessor hands out copies,
// so a Graph can be shared freely between goroutines and solves.
//
// Errors:
//
//	ErrNoStations        - fewer than two stations.
//	ErrEmptyStation      - an empty station code.
//	ErrDuplicateStation  - a station listed twice.
//	ErrUnknownStation    - a flight (or lookup) names a station not in the list.
//	ErrInvalidFlightSpec - hour ordering outside 1 ≤ dep < arr ≤ H, capacity ≤ 0,
//	                       or a flight that departs and lands at the same station.
//	ErrDuplicateFlight   - two flights share both TimeNodes under DuplicateReject.
//	ErrHourOutOfRange    - a lookup outside [1,H].
//
// Flight-level failures are reported as *FlightError, which carries the index
// and the offending record and unwraps to the sentinel.
package network
