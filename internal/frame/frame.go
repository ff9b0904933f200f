// Package frame holds tabular data read from a dataset file.
//
// Every cell is kept as text. An empty cell is a missing value.
package frame

import (
	"fmt"
	"slices"
)

// Frame is an in-memory table with named columns.
type Frame struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// New creates an empty frame with the given columns.
func New(name string, columns []string) *Frame {
	f := &Frame{Name: name, Columns: slices.Clone(columns)}
	f.reindex()
	return f
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		f.index[c] = i
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Index returns the position of column, or -1.
func (f *Frame) Index(column string) int {
	if f.index == nil {
		f.reindex()
	}
	if i, ok := f.index[column]; ok {
		return i
	}
	return -1
}

// Has reports whether the frame has column.
func (f *Frame) Has(column string) bool {
	return f.Index(column) >= 0
}

// Append adds a row. Short rows are padded with missing values.
func (f *Frame) Append(row []string) error {
	if len(row) > len(f.Columns) {
		return fmt.Errorf("row has %d fields, expected at most %d", len(row), len(f.Columns))
	}
	if len(row) < len(f.Columns) {
		padded := make([]string, len(f.Columns))
		copy(padded, row)
		row = padded
	}
	f.Rows = append(f.Rows, row)
	return nil
}

// Value returns the cell of row i in column, or "" if the column is unknown.
func (f *Frame) Value(i int, column string) string {
	c := f.Index(column)
	if c < 0 {
		return ""
	}
	return f.Rows[i][c]
}

// Set writes the cell of row i in column.
func (f *Frame) Set(i int, column, value string) error {
	c := f.Index(column)
	if c < 0 {
		return fmt.Errorf("frame %s: unknown column %q", f.Name, column)
	}
	f.Rows[i][c] = value
	return nil
}

// AddColumn appends a column, filling every existing row with "".
// Adding an existing column is a no-op.
func (f *Frame) AddColumn(column string) {
	if f.Has(column) {
		return
	}
	f.Columns = append(f.Columns, column)
	f.index[column] = len(f.Columns) - 1
	for i := range f.Rows {
		f.Rows[i] = append(f.Rows[i], "")
	}
}

// Rename changes column names according to renames; unknown names are ignored.
func (f *Frame) Rename(renames map[string]string) {
	for i, c := range f.Columns {
		if to, ok := renames[c]; ok {
			f.Columns[i] = to
		}
	}
	f.reindex()
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	out := New(f.Name, f.Columns)
	out.Rows = make([][]string, len(f.Rows))
	for i, r := range f.Rows {
		out.Rows[i] = slices.Clone(r)
	}
	return out
}

// Records returns the rows as column-to-value maps, for JSON output.
func (f *Frame) Records() []map[string]string {
	out := make([]map[string]string, len(f.Rows))
	for i, r := range f.Rows {
		rec := make(map[string]string, len(f.Columns))
		for c, name := range f.Columns {
			rec[name] = r[c]
		}
		out[i] = rec
	}
	return out
}
