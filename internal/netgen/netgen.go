// Package netgen builds seeded random timetables for tests and benchmarks.
package netgen

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/paxflow/network"
)

// Stations returns n codes S00, S01, ... in order.
func Stations(n int) []network.Station {
	out := make([]network.Station, n)
	for i := range out {
		out[i] = network.Station(fmt.Sprintf("S%02d", i))
	}
	return out
}

// Flights draws n flights between distinct stations with
// 1 ≤ dep < arr ≤ horizon and 1..maxSeats seats.
func Flights(rng *rand.Rand, stations []network.Station, n, horizon, maxSeats int) []network.FlightSpec {
	out := make([]network.FlightSpec, n)
	for i := range out {
		from := rng.Intn(len(stations))
		to := rng.Intn(len(stations) - 1)
		if to >= from {
			to++
		}
		dep := 1 + rng.Intn(horizon-1)
		arr := dep + 1 + rng.Intn(horizon-dep)
		out[i] = network.FlightSpec{
			Label:    fmt.Sprintf("F%d", i),
			From:     stations[from],
			DepHour:  dep,
			To:       stations[to],
			ArrHour:  arr,
			Capacity: 1 + rng.Intn(maxSeats),
		}
	}
	return out
}

// Graph builds a network over `stations` stations and `flights` random
// flights on the default horizon.
func Graph(rng *rand.Rand, stations, flights int, opts ...network.Option) (*network.Graph, error) {
	st := Stations(stations)
	return network.Build(st, Flights(rng, st, flights, network.DefaultHorizon, 300), opts...)
}
