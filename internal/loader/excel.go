package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/vocdata/internal/dataset"
	"github.com/JonMunkholm/vocdata/internal/frame"
	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/JonMunkholm/vocdata/internal/schema"
	"github.com/xuri/excelize/v2"
)

// ReadDAS reads the Dutch Asiatic Shipping voyage table. voyId is renamed to
// das_voyage_id and must be an integer; voyNumberDAS is renamed to
// das_voyage_num and kept as text.
func (l *Loader) ReadDAS(ctx context.Context) (*frame.Frame, error) {
	f, path, err := l.readSheet(ctx, dataset.DAS)
	if err != nil {
		return nil, err
	}
	f.Rename(schema.DASRenames)

	if !f.Has(schema.ColDASVoyageID) || !f.Has(schema.ColDASVoyageNum) {
		return nil, fmt.Errorf("das: expected columns %s and %s, got %v",
			schema.DASSourceVoyageID, schema.DASSourceVoyageNum, f.Columns)
	}

	for i := range f.Rows {
		id, err := parseInt(f.Value(i, schema.ColDASVoyageID))
		if err != nil {
			// +2: one for the header row, one for 1-based lines
			return nil, &RowError{File: path, Line: i + 2, Err: err}
		}
		if err := f.Set(i, schema.ColDASVoyageID, id); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ReadReasons reads the reasons-for-end-of-service reference table.
func (l *Loader) ReadReasons(ctx context.Context) (*frame.Frame, error) {
	f, _, err := l.readSheet(ctx, dataset.Reasons)
	return f, err
}

// readSheet reads the first worksheet of an xlsx dataset; its first row is
// the header. The resolved path is returned for row errors.
func (l *Loader) readSheet(ctx context.Context, label string) (*frame.Frame, string, error) {
	path, err := l.path(label)
	if err != nil {
		return nil, "", err
	}
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("reading %s cancelled: %w", path, err)
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("%s: workbook has no sheets", path)
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, "", fmt.Errorf("%s: read sheet %q: %w", path, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("%s: missing header row", path)
	}

	f := frame.New(label, cleanHeader(rows[0]))
	for i, row := range rows[1:] {
		if err := f.Append(row); err != nil {
			return nil, "", &RowError{File: path, Line: i + 2, Err: err}
		}
	}

	logging.FromContext(ctx).Info("dataset loaded",
		"label", label,
		"path", path,
		"sheet", sheets[0],
		"rows", f.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return f, path, nil
}
