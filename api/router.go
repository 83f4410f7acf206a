// Package api is the local preview server: it serves the menu HTML and the
// generated QR artifacts so they can be checked before printing or deploying.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	HTMLPaths []string
	OutputDir string
	Log       *slog.Logger
	Version   string
	Started   time.Time
}

// NewRouter returns a chi router with all preview routes.
func NewRouter(s *Server) http.Handler {
	if s.Started.IsZero() {
		s.Started = time.Now()
	}
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(requestLogger(s.Log))

	r.Get("/", s.handleIndex)
	r.Get("/status", s.handleStatus)

	r.Get("/gallery", s.handleGallery)
	r.Get("/qr", s.handleQRList)
	r.Get("/qr/data", s.handleQRData)
	r.Get("/qr/{name}", s.handleQRFile)

	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
			next.ServeHTTP(w, r)
		})
	}
}
