package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/omnistudy/internal/api"
	apiMiddleware "github.com/phrazzld/omnistudy/internal/api/middleware"
	"github.com/phrazzld/omnistudy/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDLogging)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)

	authHandler := api.NewAuthHandler(app.identity, app.jwtService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	studyHandler := api.NewStudyHandler(app.studyService, app.pdfText)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(apiMiddleware.Timeout(app.requestTimeout))

			r.Get("/auth/me", authHandler.Me)
			r.Get("/providers", studyHandler.Providers)

			r.Route("/study", func(r chi.Router) {
				r.Post("/explain", studyHandler.Explain)
				r.Post("/summarize", studyHandler.Summarize)
				r.Post("/quiz", studyHandler.Quiz)
				r.Post("/flashcards", studyHandler.Flashcards)
				r.Post("/documents/analyze", studyHandler.AnalyzeDocument)
				r.Post("/documents/chat", studyHandler.DocumentChat)
				r.Post("/mnemonics", studyHandler.Mnemonic)
				r.Post("/stories", studyHandler.Story)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// requestIDLogging copies chi's request ID into the logging context.
func requestIDLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logger.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
