package server

import (
	"encoding/json"
	"net/http"

	"studentcontrol/internal/auth"
)

// AuthHandler exposes login, logout, and token validation.
type AuthHandler struct {
	Auth *auth.Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, scope, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, err)
		return
	}

	// A denied scope still logs in; the frontend shows the
	// contact-administrator state based on the role field.
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  scope,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := ExtractToken(r)
	if err != nil {
		WriteJSONError(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	if err := h.Auth.Logout(r.Context(), token); err != nil {
		HandleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// Validate handles GET /api/auth/validate.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"email": session.Email,
		"user":  session.Scope,
	})
}
