// Package store exports cleaned frames to a database.
//
// Every frame becomes a table of the same name with one TEXT column per frame
// column plus load_id, the UUID of the export run that wrote the row. Tables
// are created on first use and appended to afterwards, so successive loads
// can be told apart by load_id. Empty cells are stored as NULL.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/vocdata/internal/frame"
	"github.com/google/uuid"
)

// LoadIDColumn is the column holding the export run id.
const LoadIDColumn = "load_id"

// Sink writes a frame to a table named name and returns the number of rows written.
type Sink interface {
	Write(ctx context.Context, name string, f *frame.Frame, loadID uuid.UUID) (int64, error)
	Close() error
}

// createTableSQL builds the DDL for f. quote renders an identifier.
func createTableSQL(name string, f *frame.Frame, quote func(string) string) (string, error) {
	if err := checkColumns(f); err != nil {
		return "", err
	}

	cols := make([]string, 0, len(f.Columns)+1)
	cols = append(cols, quote(LoadIDColumn)+" TEXT NOT NULL")
	for _, c := range f.Columns {
		cols = append(cols, quote(c)+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(name), strings.Join(cols, ", ")), nil
}

func checkColumns(f *frame.Frame) error {
	if len(f.Columns) == 0 {
		return fmt.Errorf("frame %s has no columns", f.Name)
	}
	for _, c := range f.Columns {
		if c == "" {
			return fmt.Errorf("frame %s has an unnamed column", f.Name)
		}
		if c == LoadIDColumn {
			return fmt.Errorf("frame %s: column %q is reserved", f.Name, LoadIDColumn)
		}
	}
	return nil
}

// rowValues returns the load id followed by the row's cells, with empty cells as nil.
func rowValues(loadID string, row []string) []any {
	vals := make([]any, len(row)+1)
	vals[0] = loadID
	for i, v := range row {
		if v == "" {
			continue
		}
		vals[i+1] = v
	}
	return vals
}

// quoteSQLite quotes an identifier for SQLite.
func quoteSQLite(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
