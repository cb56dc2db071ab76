package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"studentcontrol/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler exposes class grade reports and their export.
type ReportHandler struct {
	Report *report.Service
}

// ClassReport handles GET /api/reports/{className}.
func (h *ReportHandler) ClassReport(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	className := chi.URLParam(r, "className")
	rep, err := h.Report.ClassReport(r.Context(), session.Scope, className)
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rep)
}

// Export handles GET /api/reports/{className}/export, serving the
// report as an xlsx attachment.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	className := chi.URLParam(r, "className")
	rep, err := h.Report.ClassReport(r.Context(), session.Scope, className)
	if err != nil {
		HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.ExportFileName(className)))

	if err := h.Report.WriteExport(w, rep); err != nil {
		// Headers are already out; all we can do is log.
		log.Error().Err(err).Str("class", className).Msg("report export failed")
	}
}
