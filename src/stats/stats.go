// Package stats reads the per-generation statistics files written by the
// simulator into aligned numeric series.
//
// File layout: one row per generation, fields separated by ';', no header.
// The first five fields are, in order, best fitness, mean fitness, winner
// count, shortest run time and mean lifetime; further fields are ignored.
// A blank line ends the data block. The simulator follows it with a footer
// of "Key: value;" lines describing the run parameters.
package stats

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column identifies one positional field of a statistics row.
type Column int

const (
	BestFitness Column = iota
	MeanFitness
	Winners
	BestTime
	MeanTime
)

// Columns is the fixed number of plotted fields per row.
const Columns = 5

// Delimiter separates the fields of a row.
const Delimiter = ';'

func (c Column) String() string {
	switch c {
	case BestFitness:
		return "best_fitness"
	case MeanFitness:
		return "mean_fitness"
	case Winners:
		return "winners"
	case BestTime:
		return "best_time"
	case MeanTime:
		return "mean_time"
	}
	return fmt.Sprintf("column(%d)", int(c))
}

// FooterEntry is one "Key: value" line from the trailer after the data block.
type FooterEntry struct {
	Key   string
	Value string
}

// Run holds the series read from one statistics file.
type Run struct {
	// Name is the path or label the data was read from; used in error messages.
	Name   string
	Series [Columns][]float64
	Footer []FooterEntry
}

// Column returns the series for c.
func (r *Run) Column(c Column) []float64 { return r.Series[c] }

// Generations returns the common length of all series, or ErrSeriesLengthMismatch
// when any series disagrees with the first one.
func (r *Run) Generations() (int, error) {
	n := len(r.Series[0])
	for c := 1; c < Columns; c++ {
		if len(r.Series[c]) != n {
			return 0, fmt.Errorf("%w: %s has %d values, %s has %d",
				ErrSeriesLengthMismatch, Column(0), n, Column(c), len(r.Series[c]))
		}
	}
	return n, nil
}

// Validate asserts the equal-length invariant.
func (r *Run) Validate() error {
	_, err := r.Generations()
	return err
}

// FooterValue returns the value for key and whether it was present.
func (r *Run) FooterValue(key string) (string, bool) {
	for _, e := range r.Footer {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Index returns the generation index 0..n-1 used as the shared x axis.
func Index(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// Load opens path and reads it with Read.
func Load(path string) (*Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open", path, err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a statistics stream. name is only used for error reporting.
// Reading of series stops at the first empty line; a row with fewer than
// Columns fields or a non-numeric field fails the whole stream.
func Read(r io.Reader, name string) (*Run, error) {
	data, footer, err := splitBlocks(r)
	if err != nil {
		return nil, ioError("read", name, err)
	}
	run := &Run{Name: name, Footer: parseFooter(footer)}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &ParseError{Path: name, Line: line, Err: err}
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < Columns {
			return nil, &ParseError{Path: name, Line: line, Value: strings.Join(rec, string(Delimiter)), Err: ErrShortRow}
		}
		var row [Columns]float64
		for i := 0; i < Columns; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, &ParseError{Path: name, Line: line, Field: i + 1, Value: rec[i], Err: err}
			}
			row[i] = v
		}
		for i, v := range row {
			run.Series[i] = append(run.Series[i], v)
		}
	}
	return run, nil
}

// splitBlocks separates the data block from the footer at the first empty line.
func splitBlocks(r io.Reader) (data []byte, footer []string, err error) {
	var buf bytes.Buffer
	br := bufio.NewReader(r)
	inFooter := false
	for {
		line, rerr := br.ReadString('\n')
		if len(line) > 0 {
			text := strings.TrimRight(line, "\r\n")
			switch {
			case inFooter:
				footer = append(footer, text)
			case text == "":
				inFooter = true
			default:
				buf.WriteString(text)
				buf.WriteByte('\n')
			}
		}
		if rerr == io.EOF {
			return buf.Bytes(), footer, nil
		}
		if rerr != nil {
			return nil, nil, rerr
		}
	}
}

// parseFooter keeps well-formed "Key: value;" lines and drops everything else.
func parseFooter(lines []string) []FooterEntry {
	var out []FooterEntry
	for _, l := range lines {
		l = strings.TrimSuffix(strings.TrimSpace(l), string(Delimiter))
		k, v, ok := strings.Cut(l, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out = append(out, FooterEntry{Key: k, Value: strings.TrimSpace(v)})
	}
	return out
}
