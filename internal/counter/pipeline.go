package counter

import (
	"fmt"
	"io"
	"log"
	"os"

	"SessionSpectra/internal/interval"
	"SessionSpectra/internal/report"
)

// CountSessions runs the full two-pass pipeline over an intervals file and
// writes the per-second concurrency report to out. Diagnostics go to the
// standard logger; only the report reaches out.
func CountSessions(intervalsFile string, out io.Writer) error {
	file, err := os.Open(intervalsFile)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", intervalsFile, err)
	}
	defer file.Close()

	return Run(interval.NewReader(file), out)
}

// Run executes both passes over an interval reader: bounds discovery first,
// then accumulation into a fresh bin table, then report emission. A file
// with no valid intervals produces no output and no error.
func Run(r *interval.Reader, out io.Writer) error {
	span := ScanBounds(r.Intervals())
	if err := r.Err(); err != nil {
		return err
	}

	if span.Empty() {
		log.Println("Info: no valid intervals found, nothing to report")
		return nil
	}

	log.Printf("Info: lb = %d, ub = %d", span.Begin, span.End)
	log.Printf("Info: numBins = %d", span.NumBins())

	table, err := NewBinTable(span)
	if err != nil {
		return err
	}

	if err := r.Reset(); err != nil {
		return err
	}
	table.Accumulate(r.Intervals())
	if err := r.Err(); err != nil {
		return err
	}

	return report.WriteTo(out, table.Span(), table.Counts())
}
