// Package server exposes the encode/decode pipeline over HTTP.
//
// The API is deliberately small:
//
//	GET  /healthz          liveness probe
//	POST /api/encode       multipart carrier + message, returns the stego PNG
//	POST /api/decode       multipart stego image, returns the message as JSON
//	POST /api/capacity     multipart image, returns capacity figures as JSON
//
// Stego images are returned as raw PNG bodies so curl can pipe them straight
// to disk; everything else is JSON.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/gzrlab/gzrsteg/pkg/pipeline"
)

// DefaultMaxUploadBytes bounds multipart bodies. Carriers are grayscale
// PNGs; 32 MiB covers anything a sane client sends.
const DefaultMaxUploadBytes int64 = 32 << 20

// Server handles HTTP requests for the steganography API.
type Server struct {
	logger         *log.Logger
	runner         *pipeline.Runner
	maxUploadBytes int64
}

// New creates a server. A nil logger falls back to log.Default().
func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger:         logger,
		runner:         pipeline.NewRunner(logger),
		maxUploadBytes: DefaultMaxUploadBytes,
	}
}

// Router builds the chi route tree with request-ID and logging middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.logMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/encode", s.handleEncode)
		r.Post("/decode", s.handleDecode)
		r.Post("/capacity", s.handleCapacity)
	})

	return r
}

// ListenAndServe runs the HTTP server until the context is cancelled, then
// shuts down gracefully with a short drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
