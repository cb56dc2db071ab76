// Package server wires the HTTP surface: router, middleware, and
// handlers over the domain services.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"studentcontrol/internal/access"
	"studentcontrol/internal/admin"
	"studentcontrol/internal/auth"
	"studentcontrol/internal/grading"
	"studentcontrol/internal/report"
	"studentcontrol/internal/roster"
	"studentcontrol/internal/shared"
)

// Services bundles the domain services behind the HTTP surface.
type Services struct {
	Auth    *auth.Service
	Admin   *admin.Service
	Roster  *roster.Service
	Grading *grading.Service
	Report  *report.Service
}

// NewRouter configures the chi router, middleware, and route handlers.
func NewRouter(cfg *shared.Config, svc Services) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	authHandler := &AuthHandler{Auth: svc.Auth}
	adminHandler := &AdminHandler{Admin: svc.Admin}
	rosterHandler := &RosterHandler{Roster: svc.Roster}
	gradeHandler := &GradeHandler{Grading: svc.Grading}
	reportHandler := &ReportHandler{Report: svc.Report}

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(svc.Auth))

			r.Get("/auth/validate", authHandler.Validate)

			r.Route("/classes", func(r chi.Router) {
				r.Get("/", rosterHandler.ListClasses)
				r.Get("/{className}/students", rosterHandler.ListStudents)
			})
			r.Post("/roster/import", rosterHandler.Import)

			r.Post("/grades", gradeHandler.Submit)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/{className}", reportHandler.ClassReport)
				r.Get("/{className}/export", reportHandler.Export)
			})

			// Administrator only
			r.Route("/admin/teachers", func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Post("/", adminHandler.CreateTeacher)
				r.Get("/", adminHandler.ListTeachers)
				r.Delete("/{id}", adminHandler.DeleteTeacher)
			})
		})
	})

	return r
}

// AuthMiddleware validates the bearer token and injects the resolved
// session (identity + scope) into the request context. Scope is carried
// explicitly from here on; no handler reads global state.
func AuthMiddleware(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractToken(r)
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "authorization token required")
				return
			}

			session, err := authService.Validate(r.Context(), token)
			if err != nil {
				HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(access.NewContext(r.Context(), session)))
		})
	}
}

// RequireAdmin rejects non-administrator callers.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := access.FromContext(r.Context())
		if !ok || !session.Scope.IsAdmin() {
			WriteJSONError(w, http.StatusForbidden, "administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionFromRequest extracts the injected session, failing the request
// if the middleware did not run.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (*access.Session, bool) {
	session, ok := access.FromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return session, true
}
