package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedRow marks a row that cannot be turned into a typed record.
var ErrMalformedRow = errors.New("malformed row")

// Row is one CSV record keyed by header column. A column missing from the
// header, or cut off by a short record, is absent from the map.
type Row map[string]string

// Lookup returns the raw value of col and whether the column was present.
func (r Row) Lookup(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Get returns the raw value of col, or "" when absent.
func (r Row) Get(col string) string {
	return r[col]
}

// Reader streams a CSV file with a header row.
type Reader struct {
	csv    *csv.Reader
	header []string
	line   int
}

// NewReader reads the header from r. An empty input yields a Reader with
// no columns whose Next returns io.EOF.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return &Reader{csv: cr}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}
	return &Reader{csv: cr, header: header, line: 1}, nil
}

// Header returns the column names in file order.
func (r *Reader) Header() []string {
	return r.header
}

// Line is the file line of the record most recently returned by Next.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next record, or io.EOF when the input is exhausted.
// A record the CSV layer cannot decode returns an error wrapping
// ErrMalformedRow; reading can continue with the following record.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		r.line = perr.StartLine
		return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, perr.StartLine, perr.Err)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	r.line, _ = r.csv.FieldPos(0)

	row := make(Row, len(r.header))
	for i, col := range r.header {
		if i >= len(record) {
			break
		}
		row[col] = record[i]
	}
	return row, nil
}

// Each calls fn for every record in r until fn returns an error.
// CSV decoding faults are returned to the caller like any other error.
func Each(r io.Reader, fn func(line int, row Row) error) error {
	rd, err := NewReader(r)
	if err != nil {
		return err
	}
	for {
		row, err := rd.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(rd.Line(), row); err != nil {
			return err
		}
	}
}
