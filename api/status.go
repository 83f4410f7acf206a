package api

import (
	"net/http"
	"time"

	"github.com/cafelife/menuqr/deploy"
)

type statusResponse struct {
	Status    string `json:"status"`
	HTML      string `json:"html,omitempty"`
	OutputDir string `json:"output_dir"`
	Artifacts int    `json:"artifacts"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{
		Status:    "ok",
		OutputDir: s.OutputDir,
		Uptime:    time.Since(s.Started).Truncate(time.Second).String(),
		Version:   s.Version,
	}
	if p, err := deploy.FindHTML(s.HTMLPaths); err == nil {
		resp.HTML = p
	} else {
		resp.Status = "no_html"
	}
	if files, err := s.artifacts(); err == nil {
		resp.Artifacts = len(files)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	p, err := deploy.FindHTML(s.HTMLPaths)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	http.ServeFile(w, r, p)
}
