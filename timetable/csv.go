package timetable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/paxflow/network"
)

// Column names of the CSV header.
const (
	ColFlight = "flight"
	ColFrom   = "from"
	ColDep    = "dep"
	ColTo     = "to"
	ColArr    = "arr"
	ColSeats  = "seats"
)

var requiredColumns = []string{ColFrom, ColDep, ColTo, ColArr, ColSeats}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("timetable: missing required column")

// ErrMalformedField is returned for a field that does not parse.
var ErrMalformedField = errors.New("timetable: malformed field")

// ParseError locates a failure inside the CSV input.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("timetable: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("timetable: line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// headerIndex maps lowercased, trimmed column names to their position.
func headerIndex(header []string) map[string]int {
	h := make(map[string]int, len(header))
	for i, name := range header {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

// ReadCSV parses a timetable. The whole read fails on the first bad row.
func ReadCSV(r io.Reader) ([]network.FlightSpec, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("%w: empty input", ErrMissingColumn)}
	}
	if err != nil {
		return nil, csvError(err)
	}
	h := headerIndex(header)
	for _, col := range requiredColumns {
		if _, ok := h[col]; !ok {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{Line: line, Column: col, Err: ErrMissingColumn}
		}
	}

	var flights []network.FlightSpec
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)

		field := func(col string) (string, error) {
			i, ok := h[col]
			if !ok || i >= len(rec) {
				return "", &ParseError{Line: line, Column: col, Err: fmt.Errorf("%w: missing value", ErrMalformedField)}
			}
			return strings.TrimSpace(rec[i]), nil
		}
		number := func(col string) (int, error) {
			s, err := field(col)
			if err != nil {
				return 0, err
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return 0, &ParseError{Line: line, Column: col, Err: fmt.Errorf("%w: %q is not an integer", ErrMalformedField, s)}
			}
			return n, nil
		}

		var f network.FlightSpec
		if i, ok := h[ColFlight]; ok && i < len(rec) {
			f.Label = strings.TrimSpace(rec[i])
		}
		from, err := field(ColFrom)
		if err != nil {
			return nil, err
		}
		to, err := field(ColTo)
		if err != nil {
			return nil, err
		}
		if from == "" || to == "" {
			col := ColFrom
			if from != "" {
				col = ColTo
			}
			return nil, &ParseError{Line: line, Column: col, Err: fmt.Errorf("%w: empty station", ErrMalformedField)}
		}
		f.From, f.To = network.Station(strings.ToUpper(from)), network.Station(strings.ToUpper(to))
		if f.DepHour, err = number(ColDep); err != nil {
			return nil, err
		}
		if f.ArrHour, err = number(ColArr); err != nil {
			return nil, err
		}
		if f.Capacity, err = number(ColSeats); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}

	return flights, nil
}

// csvError turns an encoding/csv error into a *ParseError.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: fmt.Errorf("%w: %v", ErrMalformedField, pe.Err)}
	}
	return fmt.Errorf("timetable: %w", err)
}

// LoadFile reads the timetable stored at path.
func LoadFile(path string) ([]network.FlightSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("timetable: %w", err)
	}
	defer f.Close()

	flights, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return flights, nil
}

// WriteCSV writes flights with the canonical header, one row per flight.
func WriteCSV(w io.Writer, flights []network.FlightSpec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColFlight, ColFrom, ColDep, ColTo, ColArr, ColSeats}); err != nil {
		return err
	}
	for _, f := range flights {
		rec := []string{
			f.Label,
			string(f.From),
			strconv.Itoa(f.DepHour),
			string(f.To),
			strconv.Itoa(f.ArrHour),
			strconv.Itoa(f.Capacity),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Stations returns the station list of a timetable: origin first,
// destination last, every other station in order of first appearance.
func Stations(flights []network.FlightSpec, origin, destination network.Station) []network.Station {
	seen := map[network.Station]bool{origin: true, destination: true}
	out := []network.Station{origin}
	for _, f := range flights {
		for _, s := range []network.Station{f.From, f.To} {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	if destination != origin {
		out = append(out, destination)
	}
	return out
}
