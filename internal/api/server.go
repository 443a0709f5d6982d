// Package api wires the HTTP surface: directory and company pages, the
// place-photo proxy, and the submission endpoints.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"huangye/pkg/logging"
	"huangye/pkg/version"
)

// NewServer creates and configures the HTTP server.
func NewServer(addr string, pages *PageHandler, photo *PhotoHandler, submit *SubmitHandler, subs *SubmissionsHandler, stream *StreamHandler) *http.Server {
	mux := http.NewServeMux()

	// Health and version endpoints
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /api/version", handleVersion)

	// Directory page and its legacy aliases
	mux.HandleFunc("GET /directory", pages.HandleDirectory)
	mux.HandleFunc("GET /companies", pages.HandleDirectory)
	mux.HandleFunc("GET /restaurants", pages.HandleDirectory)
	mux.HandleFunc("GET /enterprises", pages.HandleDirectory)
	mux.HandleFunc("GET /{$}", pages.HandleDirectory)

	// Company detail page
	mux.HandleFunc("GET /company/{slug}", pages.HandleCompany)

	// Place photo proxy
	mux.HandleFunc("GET /api/place-photo/{placeId}", photo.Handle)
	mux.HandleFunc("GET /api/place-photo/{placeId}/{index}", photo.Handle)

	// Submissions
	mux.HandleFunc("POST /api/submit", submit.Handle)
	mux.HandleFunc("GET /api/submissions", subs.HandleList)
	mux.HandleFunc("GET /api/submissions/export", subs.HandleExport)
	if stream != nil {
		mux.HandleFunc("GET /api/submissions/stream", stream.HandleStream)
	}

	return &http.Server{
		Addr:         addr,
		Handler:      withRequestLog(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestLog logs every request to the dedicated requests logger.
// Websocket upgrades bypass the recorder so the Hijacker interface
// stays reachable.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		if logging.RequestLogger != nil {
			logging.RequestLogger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
				"remote", r.RemoteAddr)
		}
	})
}
