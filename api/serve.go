package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ListenAndServe runs the preview server on addr until ctx is cancelled,
// then shuts it down gracefully.
func ListenAndServe(ctx context.Context, addr string, s *Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Log.Info("preview server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.Log.Info("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview server shutdown: %w", err)
	}
	return nil
}
