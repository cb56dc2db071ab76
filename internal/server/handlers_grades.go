package server

import (
	"encoding/json"
	"net/http"

	"studentcontrol/internal/grading"
)

// GradeHandler exposes grade entry submission.
type GradeHandler struct {
	Grading *grading.Service
}

// Submit handles POST /api/grades. Validation failures reject the batch
// with no writes; a store failure partway through returns the partial
// result.
func (h *GradeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var sub grading.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Grading.SubmitGrades(r.Context(), session.Scope, sub)
	if err != nil {
		HandleError(w, err)
		return
	}

	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	WriteJSON(w, status, result)
}
