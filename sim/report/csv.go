package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	sim "github.com/link-sim/link-sim/sim"
)

// SeriesHeader is the column layout of the per-step CSV export. Plotting
// scripts key on these names, so treat them as a stable surface.
func SeriesHeader() []string {
	cols := []string{"step"}
	for _, c := range sim.Classes() {
		name := c.String()
		cols = append(cols,
			name+"_arrival_bytes",
			name+"_admitted_bytes",
			name+"_dropped_bytes",
			name+"_transmitted_bytes",
			name+"_queued_bytes",
		)
	}
	return cols
}

// WriteSeries writes res's per-step series to w as CSV, one row per step
// after the header.
func WriteSeries(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SeriesHeader()); err != nil {
		return fmt.Errorf("writing series header: %w", err)
	}

	row := make([]string, 0, 1+5*sim.NumClasses)
	for _, sm := range res.Steps {
		row = row[:0]
		row = append(row, strconv.Itoa(sm.Step))
		for _, c := range sim.Classes() {
			row = append(row,
				strconv.FormatInt(sm.Arrivals[c], 10),
				strconv.FormatInt(sm.Admitted[c], 10),
				strconv.FormatInt(sm.Dropped[c], 10),
				strconv.FormatInt(sm.Transmitted[c], 10),
				strconv.FormatInt(sm.Queued[c], 10),
			)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing series row %d: %w", sm.Step, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSeriesFile writes the series to path, creating or truncating it.
func WriteSeriesFile(path string, res *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating series file: %w", err)
	}
	if err := WriteSeries(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
