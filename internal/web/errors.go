package web

// errors.go maps domain errors onto HTTP responses.
//
// Every error is logged server-side with the request id and returned to the
// client as a JSON ErrorResponse. Client errors (4xx) log at warn level,
// everything else at error level.

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/JonMunkholm/vocdata/internal/dataset"
	"github.com/JonMunkholm/vocdata/internal/dates"
	"github.com/JonMunkholm/vocdata/internal/loader"
	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/JonMunkholm/vocdata/internal/voyage"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Options []string `json:"options,omitempty"`
}

// respondError classifies err, logs it and writes the JSON error.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := classifyError(err)
	writeError(w, r, status, resp)
}

// badRequest writes a 400 for a missing or invalid query parameter.
func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	logger := logging.FromContext(r.Context()).With(
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", resp.Code,
		"error", resp.Error,
	)
	if status >= http.StatusInternalServerError {
		logger.Error("request error")
	} else {
		logger.Warn("request error")
	}

	writeJSON(w, r, status, resp)
}

// classifyError returns the status code and client-facing body for err.
func classifyError(err error) (int, ErrorResponse) {
	var unknown *dataset.UnknownLabelError
	var rowErr *loader.RowError

	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "unknown_dataset", Options: unknown.Options}
	case errors.Is(err, voyage.ErrMalformedNumber):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "malformed_voyage_number"}
	case errors.Is(err, dates.ErrInvalidEDTF):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_edtf"}
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, ErrorResponse{Error: "dataset file not found", Code: "dataset_file_missing"}
	case errors.As(err, &rowErr):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "malformed_dataset"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"}
	}
}
