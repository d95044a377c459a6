// SPDX-License-Identifier: MIT
// Package: paxflow/network
//
// errors.go: sentinel errors for network construction and lookups.
//
// Error policy:
//   • Sentinels are package-level variables; callers branch with errors.Is.
//   • Context (station, hour, flight record) is attached with %w wrapping or
//     through *FlightError, never baked into the sentinel text.
//   • Build fails fast on the first offending record and returns no Graph.

package network

import (
	"errors"
	"fmt"
)

// ErrNoStations indicates that fewer than two stations were supplied; a flow
// needs at least an origin and a destination.
var ErrNoStations = errors.New("network: at least two stations are required")

// ErrEmptyStation indicates an empty station code in the station list.
var ErrEmptyStation = errors.New("network: empty station code")

// ErrDuplicateStation indicates that the station list repeats a code.
var ErrDuplicateStation = errors.New("network: duplicate station")

// ErrUnknownStation indicates a reference to a station absent from the list.
var ErrUnknownStation = errors.New("network: unknown station")

// ErrInvalidFlightSpec indicates a flight with bad hour ordering, a
// non-positive capacity or identical departure and arrival stations.
var ErrInvalidFlightSpec = errors.New("network: invalid flight spec")

// ErrDuplicateFlight indicates two flights between the same two TimeNodes
// while the DuplicateReject policy is active.
var ErrDuplicateFlight = errors.New("network: duplicate flight")

// ErrHourOutOfRange indicates a lookup for an hour outside [1,H].
var ErrHourOutOfRange = errors.New("network: hour out of range")

// ErrEdgeNotFound indicates a lookup for an EdgeID the graph does not have.
var ErrEdgeNotFound = errors.New("network: edge not found")

// FlightError reports the timetable record that made Build fail.
type FlightError struct {
	Index  int        // position in the flights slice
	Flight FlightSpec // the offending record
	Reason string     // what was wrong with it
	Err    error      // sentinel: ErrInvalidFlightSpec, ErrUnknownStation or ErrDuplicateFlight
}

func (e *FlightError) Error() string {
	return fmt.Sprintf("%v: flight #%d %s: %s", e.Err, e.Index, e.Flight, e.Reason)
}

// Unwrap exposes the sentinel to errors.Is.
func (e *FlightError) Unwrap() error { return e.Err }

func flightErrorf(sentinel error, idx int, f FlightSpec, format string, args ...interface{}) error {
	return &FlightError{Index: idx, Flight: f, Reason: fmt.Sprintf(format, args...), Err: sentinel}
}
