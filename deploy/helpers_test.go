package deploy

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cafelife/menuqr/config"
	"github.com/cafelife/menuqr/logging"
)

const testHTML = "<html><body><h1>Menu</h1></body></html>"

var fixedNow = time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC)

func writeHTML(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(p, []byte(testHTML), 0o600))
	return p
}

func unzip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	files := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = b
	}
	return files
}

// testConfig points every endpoint at base and keeps output under dir.
func testConfig(dir, base string) *config.Config {
	cfg := config.Defaults()
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.Deploy.HTMLPaths = []string{filepath.Join(dir, "missing.html"), filepath.Join(dir, "index.html")}
	cfg.Deploy.AssetsDir = filepath.Join(dir, "images")
	cfg.Deploy.Timeout = config.Duration{Duration: 5 * time.Second}
	cfg.Deploy.Netlify.Endpoint = base
	cfg.Deploy.GitHub.API = base
	cfg.Deploy.Vercel.Endpoint = base
	return cfg
}

type fakePrompter struct {
	answers []string
	confirm bool
	asked   []string
}

func (p *fakePrompter) Ask(label string, _ bool) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *fakePrompter) Confirm(question string) bool {
	p.asked = append(p.asked, question)
	return p.confirm
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) Copy(text string) error {
	c.text = text
	return c.err
}

type fakeBrowser struct{ opened []string }

func (b *fakeBrowser) Open(url string) error {
	b.opened = append(b.opened, url)
	return nil
}

type fakeQR struct {
	urls []string
	err  error
}

func (q *fakeQR) Generate(_ context.Context, url string) ([]string, error) {
	q.urls = append(q.urls, url)
	if q.err != nil {
		return nil, q.err
	}
	return []string{"qr_codes/a.png"}, nil
}

var discard = logging.Discard()
