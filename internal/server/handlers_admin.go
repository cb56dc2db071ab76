package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studentcontrol/internal/admin"
)

// AdminHandler exposes teacher authorization management.
type AdminHandler struct {
	Admin *admin.Service
}

// CreateTeacher handles POST /api/admin/teachers.
func (h *AdminHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req admin.CreateTeacher
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Admin.Create(r.Context(), req)
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, profile)
}

// ListTeachers handles GET /api/admin/teachers.
func (h *AdminHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.Admin.List(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, teachers)
}

// DeleteTeacher handles DELETE /api/admin/teachers/{id}.
func (h *AdminHandler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Admin.Delete(r.Context(), id); err != nil {
		HandleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "teacher authorization removed"})
}
