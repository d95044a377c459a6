// Package paxflow answers one question about an airline timetable: how many
// passengers can get from an origin airport to a destination airport within
// one day, given the seats on every scheduled flight?
//
// 🚀 What is paxflow?
//
//	A pure-Go toolkit that:
//		• Builds a time-expanded network: one node per (airport, hour)
//		• Formulates the maximum flow over it as a linear program
//		• Solves it with a presolving simplex, or with Dinic / Edmonds–Karp
//		• Verifies conservation, capacity and coupling on every answer
//		• Reports per-flight loads, the bottleneck cut and critical flights
//
// Under the hood the work is split into small packages:
//
//	network/      time-expanded Graph: stations × hours, holding and flight edges
//	linprog/      LP model (Problem) and Simplex solver with presolve
//	maxflow/      Formulate, Solve, Verify; the Solution type
//	flow/         Dinic, Edmonds–Karp and MinCut on the same graphs
//	timetable/    CSV timetable reader and writer
//	config/       TOML scenario files
//	analysis/     per-flight criticality on a worker pool
//	report/       text and PDF rendering
//	cmd/paxflow/  the command-line tool
//
// Quick picture (3 airports, H = 4; UA1 LAX@2→ORD@3 with 150 seats,
// UA2 ORD@3→JFK@4 with 90 seats):
//
//	LAX@1 ──▶ LAX@2 ──▶ LAX@3 ──▶ LAX@4
//	              ╲ UA1
//	ORD@1 ─╳─ ORD@2 ──▶ ORD@3 ──▶ ORD@4
//	                        ╲ UA2
//	JFK@1 ─╳─ JFK@2 ──▶ JFK@3 ──▶ JFK@4
//
// Holding edges (──▶) are unbounded; only the origin may hold passengers
// from hour 1 (─╳─ marks the closed gates). The maximum flow from LAX@1 to
// JFK@4 is 90.
package paxflow
