// Package tabular implements the mapping-document-driven tabular
// importer: it reads a sheet-like source of named columns, normalizes
// column names against a mapping document, locates rows by an ID
// column, and either creates new stratigraphic nodes or enriches
// existing ones by name, emitting PropertyNode/has_property pairs for
// every other mapped column.
package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
)

// Table is a column-oriented tabular data source: a header row plus
// data rows, both exposed as string slices. Values missing from the
// source are represented as "" by convention; callers distinguish
// "empty string present" from "column absent" using Headers.
type Table interface {
	Headers() []string
	// Row returns the values of row i (0-indexed, after the header),
	// aligned with Headers(). ok is false once i is out of range.
	Row(i int) (values []string, ok bool)
	NumRows() int
}

// sliceTable is an in-memory Table, used directly by tests and by
// CSVTable once it has finished reading.
type sliceTable struct {
	headers []string
	rows    [][]string
}

func (t *sliceTable) Headers() []string { return t.headers }
func (t *sliceTable) NumRows() int      { return len(t.rows) }
func (t *sliceTable) Row(i int) ([]string, bool) {
	if i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i], true
}

// NewSliceTable builds a Table directly from a header row and data
// rows, for callers (and tests) that already hold tabular data in
// memory rather than reading it from a file.
func NewSliceTable(headers []string, rows [][]string) Table {
	return &sliceTable{headers: headers, rows: rows}
}

// na-value strings the original treats as null, matching pandas'
// na_values=['', 'NA', 'N/A'].
var naValues = map[string]bool{"": true, "NA": true, "N/A": true}

// IsNull reports whether a cell value should be treated as absent.
func IsNull(v string) bool {
	return naValues[strings.TrimSpace(v)]
}

// CSVTable reads a Table from a CSV file. The first line is always the
// header; StartRow (1-indexed, matching the mapping document's
// start_row) discards any further rows before data begins, for sheets
// that carry tutorial or example rows immediately under the header.
type CSVTable struct {
	StartRow int
}

// Open reads path as CSV and returns the resulting Table.
//
// Source files are sometimes briefly locked by the application that
// produced them (an open spreadsheet editor, a sync client). Open
// retries a small, bounded number of times with backoff before
// surfacing an io-error, rather than failing on the first transient
// lock.
func (c CSVTable) Open(path string) (Table, error) {
	const op = "CSVTable.Open"

	var (
		f   *os.File
		err error
	)
	const maxAttempts = 4
	delay := 50 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		f, err = os.Open(path)
		if err == nil {
			break
		}
		if !os.IsPermission(err) {
			break
		}
		time.Sleep(delay)
		delay *= 2
	}
	if err != nil {
		return nil, errs.New(errs.IOError, op, fmt.Errorf("could not open %s after retries: %w", path, err))
	}
	defer f.Close()

	return c.Read(bufio.NewReader(f))
}

// Read parses CSV from r into a Table, applying StartRow skipping.
func (c CSVTable) Read(r io.Reader) (Table, error) {
	const op = "CSVTable.Read"

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errs.New(errs.ParseError, op, err)
	}
	if len(records) == 0 {
		return nil, errs.New(errs.ParseError, op, fmt.Errorf("%s: source is empty", path(r)))
	}

	headers := records[0]
	data := records[1:]

	// start_row counts from 1, including the header row; rows strictly
	// between the header and start_row are discarded as tutorial rows.
	if c.StartRow > 1 {
		skip := c.StartRow - 2
		if skip > len(data) {
			skip = len(data)
		}
		if skip > 0 {
			data = data[skip:]
		}
	}

	for i, row := range data {
		for len(row) < len(headers) {
			row = append(row, "")
		}
		data[i] = row
	}

	return &sliceTable{headers: headers, rows: data}, nil
}

// path best-efforts a display name for an io.Reader for error messages;
// most callers pass a file opened by Open, which always has a name, but
// Read also accepts arbitrary readers (e.g. in tests).
func path(r io.Reader) string {
	if named, ok := r.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "<reader>"
}
