package deploy

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

// VercelDeployer creates a static deployment with a single file.
type VercelDeployer struct {
	Endpoint string
	Token    string
	Project  string
	Client   *http.Client
	Log      *slog.Logger
}

type vercelFile struct {
	File     string `json:"file"`
	Data     string `json:"data"`
	Encoding string `json:"encoding"`
}

type vercelPayload struct {
	Name            string       `json:"name"`
	Files           []vercelFile `json:"files"`
	ProjectSettings struct {
		Framework *string `json:"framework"`
	} `json:"projectSettings"`
}

type vercelDeployment struct {
	URL string `json:"url"`
}

// Deploy uploads htmlPath as index.html and returns the deployment URL.
func (d *VercelDeployer) Deploy(ctx context.Context, htmlPath string) (string, error) {
	if d.Token == "" {
		return "", fmt.Errorf("vercel: %w", ErrMissingToken)
	}
	html, err := os.ReadFile(htmlPath) //nolint:gosec // located by FindHTML
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}

	payload := vercelPayload{
		Name: d.Project,
		Files: []vercelFile{{
			File:     "index.html",
			Data:     base64.StdEncoding.EncodeToString(html),
			Encoding: "base64",
		}},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode vercel payload: %w", err)
	}

	endpoint := strings.TrimRight(d.Endpoint, "/") + "/v13/deployments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("vercel request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.Token)
	req.Header.Set("Content-Type", "application/json")

	d.Log.Info("uploading to vercel", "project", d.Project)
	var dep vercelDeployment
	status, err := send(d.Client, req, "vercel deploy", &dep, nil)
	if err != nil {
		return "", err
	}
	if dep.URL == "" {
		return "", &APIError{Op: "vercel deploy", Status: status, Body: "response has no url"}
	}
	return "https://" + dep.URL, nil
}
