package web

import (
	"net/http"

	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/JonMunkholm/vocdata/internal/web/templates"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	datasets := listDatasets()
	rows := make([]templates.DatasetRow, len(datasets))
	for i, d := range datasets {
		rows[i] = templates.DatasetRow{Label: d.Label, File: d.File, Format: string(d.Format)}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Index(rows).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render index", "error", err)
	}
}
