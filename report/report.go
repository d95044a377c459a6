package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/paxflow/analysis"
	"github.com/katalvlaran/paxflow/flow"
	"github.com/katalvlaran/paxflow/maxflow"
)

// ErrNoSolution indicates a Report without a Solution.
var ErrNoSolution = errors.New("report: no solution")

// Report gathers what one run produced. Only Solution is required.
type Report struct {
	// Title heads the PDF and the text output; empty means no title line.
	Title    string
	Solution *maxflow.Solution
	// Cut, when set, is listed as the bottleneck flights.
	Cut *flow.Cut
	// Critical, when set, lists the flights whose removal lowers the flow.
	Critical *analysis.Result
	// ShowFlights adds the per-flight flow table.
	ShowFlights bool
	// Tolerance decides saturation and criticality; 0 means
	// maxflow.DefaultTolerance.
	Tolerance float64
}

// table is a header plus rows of cells, rendered by both writers.
type table struct {
	header []string
	rows   [][]string
	// right[i] aligns column i to the right.
	right []bool
}

func (r *Report) tol() float64 {
	if r.Tolerance > 0 {
		return r.Tolerance
	}
	return maxflow.DefaultTolerance
}

// Summary returns the one-line result, e.g.
// "max flow LAX -> JFK: 4655 (simplex, 41ms)".
func (r *Report) Summary() string {
	s := r.Solution
	return fmt.Sprintf("max flow %s -> %s: %s (%s, %s)",
		s.Origin, s.Destination, num(s.Value), s.Method, s.Elapsed.Round(time.Microsecond))
}

// saturation counts used and full flights.
func (r *Report) saturation() string {
	sat := len(r.Solution.Saturated(r.tol()))
	used := len(r.Solution.Used(r.tol()))
	return fmt.Sprintf("%d of %d flights used, %d full", used, len(r.Solution.FlightFlows()), sat)
}

func (r *Report) flightTable() table {
	t := table{
		header: []string{"FLIGHT", "FROM", "DEP", "TO", "ARR", "SEATS", "FLOW", "UTIL"},
		right:  []bool{false, false, true, false, true, true, true, true},
	}
	for _, ff := range r.Solution.FlightFlows() {
		f := ff.Flight
		t.rows = append(t.rows, []string{
			f.Name(), string(f.From), strconv.Itoa(f.DepHour), string(f.To), strconv.Itoa(f.ArrHour),
			strconv.Itoa(f.Capacity), num(ff.Flow), fmt.Sprintf("%.0f%%", 100*ff.Utilization()),
		})
	}
	return t
}

func (r *Report) cutTable() table {
	t := table{
		header: []string{"EDGE", "FROM", "DEP", "TO", "ARR", "SEATS"},
		right:  []bool{false, false, true, false, true, true},
	}
	g := r.Solution.Graph()
	for _, id := range r.Cut.Edges {
		e, err := g.Edge(id)
		if err != nil {
			continue
		}
		t.rows = append(t.rows, []string{
			e.Label, string(e.From.Station), strconv.Itoa(e.From.Hour),
			string(e.To.Station), strconv.Itoa(e.To.Hour), num(e.Capacity),
		})
	}
	return t
}

func (r *Report) criticalTable() table {
	t := table{
		header: []string{"FLIGHT", "FLOW", "WITHOUT", "LOSS"},
		right:  []bool{false, true, true, true},
	}
	for _, im := range r.Critical.Critical(r.tol()) {
		t.rows = append(t.rows, []string{im.Flight.Name(), num(im.Flow), num(im.Value), num(im.Loss)})
	}
	return t
}

// WriteText renders the report as aligned plain-text tables:
//
//	max flow LAX -> JFK: 4655 (simplex, 41ms)
//	31 of 51 flights used, 22 full
//
//	FLIGHT  FROM  DEP  TO   ARR  SEATS  FLOW  UTIL
//	...
func (r *Report) WriteText(w io.Writer) error {
	if r.Solution == nil {
		return ErrNoSolution
	}
	ew := &errWriter{w: w}
	if r.Title != "" {
		fmt.Fprintln(ew, r.Title)
	}
	fmt.Fprintln(ew, r.Summary())
	fmt.Fprintln(ew, r.saturation())

	if r.ShowFlights {
		fmt.Fprintln(ew)
		writeTable(ew, r.flightTable())
	}
	if r.Cut != nil {
		fmt.Fprintf(ew, "\nminimum cut: %s seats on %d flights\n", num(r.Cut.Capacity), len(r.Cut.Edges))
		writeTable(ew, r.cutTable())
	}
	if r.Critical != nil {
		t := r.criticalTable()
		if len(t.rows) == 0 {
			fmt.Fprintln(ew, "\nno single flight lowers the maximum")
		} else {
			fmt.Fprintf(ew, "\ncritical flights: %d\n", len(t.rows))
			writeTable(ew, t)
		}
	}

	return ew.err
}

func writeTable(w io.Writer, t table) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	line := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}
	line(t.header)
	for _, row := range t.rows {
		line(row)
	}
	tw.Flush()
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// num prints flows and capacities without a trailing ".0".
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
