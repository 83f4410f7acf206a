package deploy

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

// NetlifyDeployer creates a new site from a single-file zip.
type NetlifyDeployer struct {
	Endpoint string
	// Token is optional; anonymous drops are accepted by the API but expire.
	Token string
	// TempDir holds the upload archive; "" means the system temp dir.
	TempDir string
	Client  *http.Client
	Log     *slog.Logger
}

type netlifySite struct {
	Subdomain string `json:"subdomain"`
}

// Deploy zips htmlPath as index.html, uploads it and returns the site URL.
// The temporary archive is removed on every path.
func (d *NetlifyDeployer) Deploy(ctx context.Context, htmlPath string) (string, error) {
	html, err := os.ReadFile(htmlPath) //nolint:gosec // located by FindHTML
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}

	tmp, err := os.CreateTemp(d.TempDir, "menuqr-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temp archive: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			d.Log.Warn("temp archive not removed", "path", tmp.Name(), "error", err)
		}
	}()

	if err := writeZipEntry(tmp, "index.html", html); err != nil {
		return "", fmt.Errorf("write temp archive: %w", err)
	}
	size, err := tmp.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", fmt.Errorf("write temp archive: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind temp archive: %w", err)
	}

	endpoint := strings.TrimRight(d.Endpoint, "/") + "/api/v1/sites"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, io.NopCloser(tmp))
	if err != nil {
		return "", fmt.Errorf("netlify request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", "application/zip")
	if d.Token != "" {
		req.Header.Set("Authorization", "Bearer "+d.Token)
	}

	d.Log.Info("uploading to netlify", "endpoint", endpoint, "bytes", size)
	var site netlifySite
	status, err := send(d.Client, req, "netlify deploy", &site, nil)
	if err != nil {
		return "", err
	}
	if site.Subdomain == "" {
		return "", &APIError{Op: "netlify deploy", Status: status, Body: "response has no subdomain"}
	}
	return "https://" + site.Subdomain + ".netlify.app", nil
}

// writeZipEntry writes a zip with one stored entry to w.
func writeZipEntry(w io.Writer, name string, content []byte) error {
	zw := zip.NewWriter(w)
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		return err
	}
	return zw.Close()
}
