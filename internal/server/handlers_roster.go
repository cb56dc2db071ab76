package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studentcontrol/internal/roster"
)

// maxImportSize bounds roster upload parsing (form data held in memory).
const maxImportSize = 10 << 20 // 10 MB

// RosterHandler exposes class listing and roster import.
type RosterHandler struct {
	Roster *roster.Service
}

// ListClasses handles GET /api/classes.
func (h *RosterHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	classes, err := h.Roster.ListClasses(r.Context(), session.Scope)
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, classes)
}

// ListStudents handles GET /api/classes/{className}/students.
func (h *RosterHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	className := chi.URLParam(r, "className")
	students, err := h.Roster.ListStudents(r.Context(), session.Scope, className)
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, students)
}

// Import handles POST /api/roster/import (multipart: file, class_name).
// The response reports per-row outcomes; an error after some rows were
// written means those rows stay persisted.
func (h *RosterHandler) Import(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "spreadsheet file is required")
		return
	}
	defer file.Close()

	className := r.FormValue("class_name")
	result, err := h.Roster.Import(r.Context(), session.Scope, className, file)
	if err != nil {
		HandleError(w, err)
		return
	}

	status := http.StatusOK
	if result.Failed > 0 {
		// Partial failure: surfaced, not rolled back.
		status = http.StatusMultiStatus
	}
	WriteJSON(w, status, result)
}
