// Package server exposes the engine over HTTP for the web frontend. The
// surface mirrors the CLI: roadmaps, toggles, scenes, gamification.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"skillbloom/internal/engine"
	"skillbloom/internal/generate"
)

// Server is the HTTP API server.
type Server struct {
	svc    *engine.Service
	gen    generate.Generator
	router *chi.Mux
}

// NewServer wires the API around an engine service and a roadmap generator.
func NewServer(svc *engine.Service, gen generate.Generator) *Server {
	s := &Server{svc: svc, gen: gen}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/gamification", s.handleGamification)

		r.Route("/roadmaps", func(r chi.Router) {
			r.Get("/", s.handleListRoadmaps)
			r.Post("/import", s.handleImport)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetRoadmap)
				r.Delete("/", s.handleDeleteRoadmap)
				r.Post("/activate", s.handleActivate)
				r.Get("/export", s.handleExport)
				r.Get("/scene", s.handleScene)
				r.Get("/scene.svg", s.handleSceneSVG)
				r.Post("/tasks/{taskID}/toggle", s.handleToggle)
			})
		})
	})

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
