package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cafelife/menuqr/composer"
)

// previewQRSize is the pixel size of codes rendered by /qr/data.
const previewQRSize = 512

var artifactExts = map[string]string{
	".png": "image/png",
	".md":  "text/markdown; charset=utf-8",
}

type artifact struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	URL      string    `json:"url"`
}

type qrDataResponse struct {
	URL   string `json:"url"`
	QRPNG string `json:"qr_png"`
}

// artifacts lists the generated files in the output dir, sorted by name.
// A missing output dir yields an empty list.
func (s *Server) artifacts() ([]artifact, error) {
	entries, err := os.ReadDir(s.OutputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []artifact{}, nil
		}
		return nil, err
	}
	files := make([]artifact, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := artifactExts[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, artifact{
			Name:     e.Name(),
			Size:     info.Size(),
			Modified: info.ModTime().UTC(),
			URL:      "/qr/" + e.Name(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (s *Server) handleQRList(w http.ResponseWriter, _ *http.Request) {
	files, err := s.artifacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleQRFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctype, ok := artifactExts[strings.ToLower(filepath.Ext(name))]
	if !ok || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	path := filepath.Join(s.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.Header().Set("Content-Type", ctype)
	http.ServeFile(w, r, path)
}

// handleQRData renders a plain code for ?url= and returns it base64-encoded.
func (s *Server) handleQRData(w http.ResponseWriter, r *http.Request) {
	target, err := composer.ParseMenuURL(r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	png, err := composer.EncodePNG(target, previewQRSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, qrDataResponse{
		URL:   target,
		QRPNG: base64.StdEncoding.EncodeToString(png),
	})
}

func (s *Server) handleGallery(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(galleryHTML))
}

const galleryHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Menu QR preview</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #fff7f2;
    color: #222;
    padding: 32px;
  }
  h1 { font-size: 22px; margin-bottom: 4px; color: #ff6b35; }
  .subtitle { color: #777; font-size: 14px; margin-bottom: 24px; }
  #grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 16px; }
  .card {
    background: #fff;
    border: 1px solid #eee;
    border-radius: 12px;
    padding: 12px;
    text-align: center;
  }
  .card img { max-width: 100%; max-height: 260px; }
  .card a { display: block; font-size: 12px; color: #555; margin-top: 8px; word-break: break-all; }
  #status { color: #888; font-size: 13px; }
</style>
</head>
<body>
<h1>Generated artifacts</h1>
<p class="subtitle"><a href="/">Open the menu page</a></p>
<div id="status">Loading...</div>
<div id="grid"></div>
<script>
(function() {
  var grid = document.getElementById('grid');
  var statusEl = document.getElementById('status');

  function clearChildren(el) {
    while (el.firstChild) el.removeChild(el.firstChild);
  }

  function render(files) {
    clearChildren(grid);
    statusEl.textContent = files.length ? '' : 'Nothing generated yet. Run "menuqr qr <url>".';
    files.forEach(function(f) {
      var card = document.createElement('div');
      card.className = 'card';
      if (/\.png$/i.test(f.name)) {
        var img = document.createElement('img');
        img.setAttribute('alt', f.name);
        img.setAttribute('src', f.url);
        card.appendChild(img);
      }
      var link = document.createElement('a');
      link.setAttribute('href', f.url);
      link.textContent = f.name;
      card.appendChild(link);
      grid.appendChild(card);
    });
  }

  function poll() {
    fetch('/qr')
      .then(function(r) { return r.json(); })
      .then(render)
      .catch(function() { statusEl.textContent = 'Connection error, retrying...'; });
  }

  poll();
  setInterval(poll, 5000);
})();
</script>
</body>
</html>`
