// Package normalize runs the cleaning passes over loaded dataset frames.
//
// Each pass works on a copy of its input. Cells that cannot be cleaned are
// left as they were and reported as issues; only a frame that lacks the
// columns a pass needs is an error.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/vocdata/internal/dataset"
	"github.com/JonMunkholm/vocdata/internal/dates"
	"github.com/JonMunkholm/vocdata/internal/frame"
	"github.com/JonMunkholm/vocdata/internal/schema"
	"github.com/JonMunkholm/vocdata/internal/voyage"
)

// Issue is a cell the pass could not clean.
type Issue struct {
	Row     int    // 0-based row in the frame
	Column  string // column name
	Value   string // offending value
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d, %s %q: %s", i.Row, i.Column, i.Value, i.Message)
}

// Report summarizes what a pass changed.
type Report struct {
	Rows      int     `json:"rows"`
	Padded    int     `json:"padded"`     // voyage numbers zero-padded
	Corrected int     `json:"corrected"`  // voyage numbers replaced by the correction table
	EDTFFixed int     `json:"edtf_fixed"` // date cells reduced from an EDTF expression
	IDsFilled int     `json:"ids_filled"` // DAS voyage ids changed by FillMissingID
	Issues    []Issue `json:"issues,omitempty"`
}

func (r *Report) issue(row int, column, value string, err error) {
	r.Issues = append(r.Issues, Issue{Row: row, Column: column, Value: value, Message: err.Error()})
}

func requireColumns(f *frame.Frame, columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !f.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("frame %s: missing columns: %s", f.Name, strings.Join(missing, ", "))
	}
	return nil
}

// Dataset runs the pass for label. Frames of datasets without a pass are
// returned as they are.
func Dataset(label string, f *frame.Frame) (*frame.Frame, Report, error) {
	switch label {
	case dataset.Voyages:
		return Voyages(f)
	case dataset.Contracts:
		return Contracts(f)
	case dataset.DAS:
		return DAS(f)
	default:
		return f, Report{Rows: f.Len()}, nil
	}
}

// Voyages cleans the pay-ledger voyages: das_voyage_num is padded and
// corrected, date_begin and date_end are reduced to plain dates, and
// duration_days is added.
func Voyages(in *frame.Frame) (*frame.Frame, Report, error) {
	if err := requireColumns(in, schema.ColDASVoyageNum, schema.ColDateBegin, schema.ColDateEnd); err != nil {
		return nil, Report{}, err
	}

	f := in.Clone()
	f.AddColumn(schema.ColDurationDays)
	rep := Report{Rows: f.Len()}

	for i := range f.Rows {
		fixNumber(f, i, &rep)
		begin := fixDate(f, i, schema.ColDateBegin, &rep)
		end := fixDate(f, i, schema.ColDateEnd, &rep)
		_ = f.Set(i, schema.ColDurationDays, dates.FormatDelta(dates.CalculateDelta(begin, end)))
	}
	return f, rep, nil
}

// Contracts cleans the per-person contracts: source_type is derived from
// chamber, service dates are reduced to plain dates, and service_days is
// added. das_voyage_num is padded and corrected when present.
func Contracts(in *frame.Frame) (*frame.Frame, Report, error) {
	if err := requireColumns(in, schema.ColChamber, schema.ColServiceBegin, schema.ColServiceEnd); err != nil {
		return nil, Report{}, err
	}

	f := in.Clone()
	f.AddColumn(schema.ColSourceType)
	f.AddColumn(schema.ColServiceDays)
	rep := Report{Rows: f.Len()}

	for i := range f.Rows {
		_ = f.Set(i, schema.ColSourceType, string(ClassifySource(f.Value(i, schema.ColChamber))))
		if f.Has(schema.ColDASVoyageNum) {
			fixNumber(f, i, &rep)
		}
		begin := fixDate(f, i, schema.ColServiceBegin, &rep)
		end := fixDate(f, i, schema.ColServiceEnd, &rep)
		_ = f.Set(i, schema.ColServiceDays, dates.FormatDelta(dates.CalculateDelta(begin, end)))
	}
	return f, rep, nil
}

// DAS resolves missing voyage ids in the DAS table with voyage.FillMissingID.
func DAS(in *frame.Frame) (*frame.Frame, Report, error) {
	if err := requireColumns(in, schema.ColDASVoyageNum, schema.ColDASVoyageID); err != nil {
		return nil, Report{}, err
	}

	f := in.Clone()
	rep := Report{Rows: f.Len()}

	for i := range f.Rows {
		raw := f.Value(i, schema.ColDASVoyageID)
		id, badID := parseID(raw)

		filled := voyage.FillMissingID(voyage.Row{
			DASVoyageNum: voyage.ParseNumber(f.Value(i, schema.ColDASVoyageNum)),
			DASVoyageID:  id,
		})
		if badID != nil {
			// an unparsable id only matters when the row keeps it
			if !filled.Valid {
				rep.issue(i, schema.ColDASVoyageID, raw, badID)
				continue
			}
			rep.IDsFilled++
		} else if filled != id {
			rep.IDsFilled++
		}
		_ = f.Set(i, schema.ColDASVoyageID, formatID(filled))
	}
	return f, rep, nil
}

// fixNumber canonicalizes das_voyage_num in row i.
func fixNumber(f *frame.Frame, i int, rep *Report) {
	raw := f.Value(i, schema.ColDASVoyageNum)
	padded, err := voyage.AddLeadingZeros(voyage.ParseNumber(raw))
	if err != nil {
		rep.issue(i, schema.ColDASVoyageNum, raw, err)
		return
	}
	if !padded.Valid {
		return
	}
	if padded.String != strings.TrimSpace(raw) {
		rep.Padded++
	}
	corrected := voyage.Correct(padded.String)
	if corrected != padded.String {
		rep.Corrected++
	}
	_ = f.Set(i, schema.ColDASVoyageNum, corrected)
}

// fixDate reduces an EDTF cell in row i to a plain date and parses it.
func fixDate(f *frame.Frame, i int, column string, rep *Report) pgtype.Date {
	raw := f.Value(i, column)
	fixed, err := dates.FixEDTF(raw)
	if err != nil {
		rep.issue(i, column, raw, err)
		return pgtype.Date{}
	}
	if fixed != raw {
		rep.EDTFFixed++
		_ = f.Set(i, column, fixed)
	}
	return dates.ParseDate(fixed)
}

func parseID(s string) (pgtype.Int8, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Int8{}, nil
	}
	n, err := strconv.ParseInt(strings.TrimSuffix(s, ".0"), 10, 64)
	if err != nil {
		return pgtype.Int8{}, errors.New("voyage id is not an integer")
	}
	return pgtype.Int8{Int64: n, Valid: true}, nil
}

func formatID(id pgtype.Int8) string {
	if !id.Valid {
		return ""
	}
	return strconv.FormatInt(id.Int64, 10)
}
