package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hellenika/hellenika-api/internal/api"
	apimiddleware "github.com/hellenika/hellenika-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.accountService,
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.loginLimiter,
	)
	catalogHandler := api.NewCatalogHandler(app.wordStore, app.groupStore)
	studyHandler := api.NewStudyHandler(app.studyEngine)
	sessionHandler := api.NewSessionHandler(app.sessionStore, app.tracker)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/profile", authHandler.Profile)

			// Catalog browsing
			r.Get("/words", catalogHandler.ListWords)
			r.Get("/groups", catalogHandler.ListGroups)
			r.Get("/groups/{groupID}", catalogHandler.GetGroup)
			r.Get("/groups/{groupID}/words", catalogHandler.ListGroupWords)
			r.Get("/activities", catalogHandler.ListActivities)

			// Study sessions
			r.Post("/study/sessions", studyHandler.StartSession)
			r.Get("/study/sessions/{sessionID}", studyHandler.GetSession)
			r.Post("/study/sessions/{sessionID}/answer", studyHandler.SubmitAnswer)
			r.Post("/study/sessions/{sessionID}/restart", studyHandler.RestartSession)

			// History and progress
			r.Get("/sessions", sessionHandler.ListSessions)
			r.Get("/dashboard", sessionHandler.Dashboard)
			r.Get("/progress/words", sessionHandler.ListWordProgress)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
