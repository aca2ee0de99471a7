package fetcher

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// CSVOptions configures ForEachCSVRow.
type CSVOptions struct {
	Delimiter rune // default ','
	Comment   rune // comment character (0 = none)
}

// ForEachCSVRow reads a CSV stream and calls fn for every data row.
// The first row is treated as the header and is passed separately; fn
// receives the header-relative record for each subsequent row. Iteration
// stops at the first error returned by fn.
func ForEachCSVRow(ctx context.Context, r io.Reader, opts CSVOptions, fn func(header, record []string) error) error {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.FieldsPerRecord = -1 // allow ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return eris.New("csv: empty input")
	}
	if err != nil {
		return eris.Wrap(err, "csv: read header")
	}

	for {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "csv: context cancelled")
		}

		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "csv: read row")
		}

		if err := fn(header, record); err != nil {
			return err
		}
	}
}

// ColumnIndex returns the index of a named column in the header, or -1.
func ColumnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
