package network

import (
	"fmt"
	"math"
)

// DefaultHorizon is the number of hourly steps in a scheduling day.
const DefaultHorizon = 24

// Station is an airport code, e.g. "LAX". Codes are compared verbatim.
type Station string

// NodeID is the dense index of a TimeNode: stationIndex*H + (hour-1).
type NodeID int

// EdgeID is the dense index of an Edge, in creation order: all holding edges
// of the first station, then of the second, ..., then the flight edges in
// timetable order.
type EdgeID int

// TimeNode identifies the passengers at Station during [Hour, Hour+1).
type TimeNode struct {
	Station Station
	Hour    int
}

// String renders the node as "LAX@7".
func (n TimeNode) String() string {
	return fmt.Sprintf("%s@%d", n.Station, n.Hour)
}

// EdgeKind tells holding edges from flight edges.
type EdgeKind uint8

const (
	// KindHolding is an intra-airport transition (S,h)→(S,h+1).
	KindHolding EdgeKind = iota
	// KindFlight is a scheduled flight (A,dep)→(B,arr).
	KindFlight
)

// String returns "holding" or "flight".
func (k EdgeKind) String() string {
	switch k {
	case KindHolding:
		return "holding"
	case KindFlight:
		return "flight"
	default:
		return fmt.Sprintf("EdgeKind(%d)", uint8(k))
	}
}

// Edge is one arc of the time-expanded network.
//
// Capacity is +Inf for unbounded holding edges. Gate marks the first holding
// edge of a station, (S,1)→(S,2). For flight edges, Flights lists the indices
// of the FlightSpecs the edge carries: one index normally, several when
// duplicates were merged (Note then says which).
type Edge struct {
	ID       EdgeID
	Kind     EdgeKind
	From, To TimeNode
	Capacity float64
	Gate     bool
	Label    string
	Flights  []int
	Note     string
}

// Unbounded reports whether the edge has no finite capacity.
func (e Edge) Unbounded() bool {
	return math.IsInf(e.Capacity, 1)
}

// FlightSpec is one timetable record: a flight leaving From during DepHour
// and landing at To during ArrHour with Capacity seats. Label is an optional
// human-readable identifier (flight number); when empty a label of the form
// "LAX7-JFK15" is derived.
type FlightSpec struct {
	Label    string
	From     Station
	DepHour  int
	To       Station
	ArrHour  int
	Capacity int
}

// Name returns Label, or the derived "LAX7-JFK15" form when Label is empty.
func (f FlightSpec) Name() string {
	if f.Label != "" {
		return f.Label
	}
	return fmt.Sprintf("%s%d-%s%d", f.From, f.DepHour, f.To, f.ArrHour)
}

// String renders the record in a form suitable for error messages.
func (f FlightSpec) String() string {
	return fmt.Sprintf("%s (%s@%d→%s@%d, %d seats)",
		f.Name(), f.From, f.DepHour, f.To, f.ArrHour, f.Capacity)
}

// DuplicatePolicy decides what Build does with flights that share both
// endpoints (same departure TimeNode and same arrival TimeNode).
type DuplicatePolicy uint8

const (
	// DuplicateMerge folds duplicates into one edge whose capacity is the sum
	// of seats; the edge's Note names the merged flights.
	DuplicateMerge DuplicatePolicy = iota
	// DuplicateKeep keeps every flight as its own parallel edge.
	DuplicateKeep
	// DuplicateReject fails the build with ErrDuplicateFlight.
	DuplicateReject
)

// String returns "merge", "keep" or "reject".
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateMerge:
		return "merge"
	case DuplicateKeep:
		return "keep"
	case DuplicateReject:
		return "reject"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", uint8(p))
	}
}

// ParseDuplicatePolicy maps "merge", "keep" or "reject" to a policy.
// The empty string yields DuplicateMerge.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "merge":
		return DuplicateMerge, nil
	case "keep":
		return DuplicateKeep, nil
	case "reject":
		return DuplicateReject, nil
	default:
		return 0, fmt.Errorf("network: unknown duplicate policy %q", s)
	}
}
