// Package api serves the generator over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness and build version
//	POST /v1/generate   generate an assignment for a JSON request
//	POST /v1/check      validate a request without searching
//	POST /v1/cycles     decompose an existing assignment into cycles
//
// Errors are JSON objects with a machine-readable code and a message. A
// search that cannot satisfy the request is not an error: the response is
// 200 with success false and a reason in the result.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/giftring/pkg/observability"
	"github.com/matzehuels/giftring/pkg/pipeline"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server backed by runner. A nil logger means the
// runner's logger.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/generate", s.handleGenerate)
		r.Post("/check", s.handleCheck)
		r.Post("/cycles", s.handleCycles)
	})
	return r
}

// logRequests logs each request and reports it to the API hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		observability.API().OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.API().OnResponse(ctx, r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(ctx),
			"duration", elapsed)
	})
}
