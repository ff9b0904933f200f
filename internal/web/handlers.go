package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/vocdata/internal/dataset"
	"github.com/JonMunkholm/vocdata/internal/dates"
	"github.com/JonMunkholm/vocdata/internal/normalize"
	"github.com/JonMunkholm/vocdata/internal/voyage"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// DatasetInfo is the API view of a registered dataset.
type DatasetInfo struct {
	Label  string         `json:"label"`
	File   string         `json:"file"`
	Dir    string         `json:"dir"`
	Format dataset.Format `json:"format"`
}

func datasetInfo(d dataset.Descriptor) DatasetInfo {
	return DatasetInfo{Label: d.Label, File: d.File, Dir: d.Dir, Format: d.Format}
}

func listDatasets() []DatasetInfo {
	all := dataset.All()
	infos := make([]DatasetInfo, len(all))
	for i, d := range all {
		infos[i] = datasetInfo(d)
	}
	return infos
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, listDatasets())
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	if _, err := dataset.FilePath(label); err != nil {
		respondError(w, r, err)
		return
	}
	d, _ := dataset.Get(label)
	writeJSON(w, r, http.StatusOK, datasetInfo(d))
}

// RowsResponse is a page of dataset rows.
type RowsResponse struct {
	Label   string              `json:"label"`
	Columns []string            `json:"columns"`
	Total   int                 `json:"total"`
	Rows    []map[string]string `json:"rows"`
	Report  *normalize.Report   `json:"report,omitempty"`
}

// handleDatasetRows loads a dataset and returns its first rows.
// Query params: limit (default DefaultRowLimit), clean (run the cleaning pass).
func (s *Server) handleDatasetRows(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	if _, err := dataset.FilePath(label); err != nil {
		respondError(w, r, err)
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	clean, _ := strconv.ParseBool(r.URL.Query().Get("clean"))

	f, err := s.loader.Read(r.Context(), label)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := RowsResponse{Label: label}
	if clean {
		cleaned, rep, err := normalize.Dataset(label, f)
		if err != nil {
			respondError(w, r, err)
			return
		}
		f = cleaned
		resp.Report = &rep
	}

	resp.Columns = f.Columns
	resp.Total = f.Len()
	records := f.Records()
	if len(records) > limit {
		records = records[:limit]
	}
	resp.Rows = records

	writeJSON(w, r, http.StatusOK, resp)
}

// VoyageNumberResponse shows how a voyage number is canonicalized.
type VoyageNumberResponse struct {
	Input     string `json:"input"`
	Padded    string `json:"padded"`
	Canonical string `json:"canonical"`
	Corrected bool   `json:"corrected"`
}

func (s *Server) handleVoyageNumber(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "number")
	padded, err := voyage.AddLeadingZeros(pgtype.Text{String: input, Valid: true})
	if err != nil {
		respondError(w, r, err)
		return
	}
	canonical := voyage.Correct(padded.String)

	writeJSON(w, r, http.StatusOK, VoyageNumberResponse{
		Input:     input,
		Padded:    padded.String,
		Canonical: canonical,
		Corrected: canonical != padded.String,
	})
}

func (s *Server) handleDiscrepancies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, voyage.Discrepancies())
}

func (s *Server) handleSourceType(w http.ResponseWriter, r *http.Request) {
	chamber := r.URL.Query().Get("chamber")
	writeJSON(w, r, http.StatusOK, map[string]string{
		"chamber":     chamber,
		"source_type": string(normalize.ClassifySource(chamber)),
	})
}

// DeltaResponse is the day count between two dates. Fields are null when
// the corresponding value is not available.
type DeltaResponse struct {
	Begin *string `json:"begin"`
	End   *string `json:"end"`
	Days  *int32  `json:"days"`
}

func (s *Server) handleDateDelta(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	begin := dates.ParseDate(q.Get("begin"))
	end := dates.ParseDate(q.Get("end"))
	delta := dates.CalculateDelta(begin, end)

	resp := DeltaResponse{Begin: dateOrNil(begin), End: dateOrNil(end)}
	if delta.Valid {
		resp.Days = &delta.Int32
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleEDTF(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if value == "" {
		badRequest(w, r, "value is required")
		return
	}
	fixed, err := dates.FixEDTF(value)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"value": value, "date": fixed})
}

func dateOrNil(d pgtype.Date) *string {
	if !d.Valid {
		return nil
	}
	s := dates.FormatDate(d)
	return &s
}

var errInvalidLimit = errors.New("limit must be a positive integer")

// parseLimit reads the limit query parameter, bounded by MaxRowLimit.
func parseLimit(r *http.Request) (int, error) {
	val := r.URL.Query().Get("limit")
	if val == "" {
		return DefaultRowLimit, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 1 {
		return 0, errInvalidLimit
	}
	return min(n, MaxRowLimit), nil
}
