// Package loader reads the registered datasets from disk into frames.
//
// The NT00444 exports have no header row; their column names come from the
// schema package and are applied by position. The reference tables carry
// their own header row. All cells are read as text, which keeps the leading
// zeros of voyage numbers intact.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/vocdata/internal/dataset"
	"github.com/JonMunkholm/vocdata/internal/frame"
	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/JonMunkholm/vocdata/internal/schema"
	"github.com/klauspost/compress/gzip"
)

// ContextCheckInterval is how often (in rows) to check for context cancellation.
var ContextCheckInterval = 1000

// Loader reads datasets relative to BaseDir.
type Loader struct {
	BaseDir  string
	Encoding string
}

// New returns a Loader rooted at baseDir reading files in the given encoding
// ("utf-8", "latin1" or "cp1252").
func New(baseDir, encoding string) *Loader {
	return &Loader{BaseDir: baseDir, Encoding: encoding}
}

// Read loads the dataset registered under label.
func (l *Loader) Read(ctx context.Context, label string) (*frame.Frame, error) {
	switch label {
	case dataset.Voyages:
		return l.ReadVoyages(ctx)
	case dataset.Beneficiaries:
		return l.ReadBeneficiaries(ctx)
	case dataset.Contracts:
		return l.ReadContracts(ctx)
	case dataset.DAS:
		return l.ReadDAS(ctx)
	case dataset.Clusters:
		return l.ReadClusters(ctx)
	case dataset.Ranks:
		return l.ReadRanks(ctx)
	case dataset.Reasons:
		return l.ReadReasons(ctx)
	}
	// Unregistered labels get the registry's error listing the options.
	if _, err := dataset.FilePath(label); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("no reader for dataset %q", label)
}

// ReadVoyages reads the pay-ledger voyages.
func (l *Loader) ReadVoyages(ctx context.Context) (*frame.Frame, error) {
	return l.readHeaderless(ctx, dataset.Voyages, schema.Voyages)
}

// ReadBeneficiaries reads the beneficiaries table.
func (l *Loader) ReadBeneficiaries(ctx context.Context) (*frame.Frame, error) {
	return l.readHeaderless(ctx, dataset.Beneficiaries, schema.Beneficiaries)
}

// ReadContracts reads the per-person contracts (opvarenden).
func (l *Loader) ReadContracts(ctx context.Context) (*frame.Frame, error) {
	return l.readHeaderless(ctx, dataset.Contracts, schema.Contracts)
}

// ReadClusters reads the gzip-compressed person cluster table.
func (l *Loader) ReadClusters(ctx context.Context) (*frame.Frame, error) {
	return l.readWithHeader(ctx, dataset.Clusters)
}

// ReadRanks reads the rank category table.
func (l *Loader) ReadRanks(ctx context.Context) (*frame.Frame, error) {
	return l.readWithHeader(ctx, dataset.Ranks)
}

// path resolves the registered file of label against BaseDir.
func (l *Loader) path(label string) (string, error) {
	file, err := dataset.FilePath(label)
	if err != nil {
		return "", err
	}
	if l.BaseDir == "" || filepath.IsAbs(file) {
		return file, nil
	}
	return filepath.Join(l.BaseDir, file), nil
}

// open returns a decoded reader for the dataset file, transparently
// decompressing .gz files.
func (l *Loader) open(path string) (io.Reader, *countingReader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	counter := &countingReader{r: f}
	var raw io.Reader = counter
	closeFn := f.Close

	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(counter)
		if err != nil {
			f.Close()
			return nil, nil, nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		raw = zr
		closeFn = func() error {
			zr.Close()
			return f.Close()
		}
	}

	return decode(raw, l.Encoding), counter, closeFn, nil
}

func (l *Loader) readHeaderless(ctx context.Context, label string, specs []schema.FieldSpec) (*frame.Frame, error) {
	path, err := l.path(label)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	r, counter, closeFn, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	f := frame.New(label, schema.Names(specs))
	if err := readCSV(ctx, r, path, f, false); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("dataset loaded",
		"label", label,
		"path", path,
		"rows", f.Len(),
		"bytes", counter.bytes,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return f, nil
}

func (l *Loader) readWithHeader(ctx context.Context, label string) (*frame.Frame, error) {
	path, err := l.path(label)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	r, counter, closeFn, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	f := frame.New(label, nil)
	if err := readCSV(ctx, r, path, f, true); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("dataset loaded",
		"label", label,
		"path", path,
		"rows", f.Len(),
		"bytes", counter.bytes,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return f, nil
}

// readCSV appends every record of r to f. With header set, the first record
// names the columns of f.
func readCSV(ctx context.Context, r io.Reader, path string, f *frame.Frame, header bool) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	for i := 0; ; i++ {
		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("reading %s cancelled: %w", path, err)
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &RowError{File: path, Line: parseErrorLine(err), Err: err}
		}

		if header && i == 0 {
			*f = *frame.New(f.Name, cleanHeader(record))
			continue
		}

		if err := f.Append(record); err != nil {
			line, _ := cr.FieldPos(0)
			return &RowError{File: path, Line: line, Err: err}
		}
	}

	if header && len(f.Columns) == 0 {
		return fmt.Errorf("%s: missing header row", path)
	}
	return nil
}

func parseErrorLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}

// cleanHeader trims header names and strips surrounding quotes.
func cleanHeader(record []string) []string {
	out := make([]string, len(record))
	for i, h := range record {
		out[i] = strings.Trim(strings.TrimSpace(h), `"'`)
	}
	return out
}

// parseInt validates an integer cell; blank is allowed and means missing.
func parseInt(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	// xlsx numeric cells may render as "123.0"
	if whole, ok := strings.CutSuffix(s, ".0"); ok {
		s = whole
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return "", fmt.Errorf("invalid integer %q", s)
	}
	return s, nil
}
