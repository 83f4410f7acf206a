package deploy

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Archive is a zip prepared for manual upload.
type Archive struct {
	Path         string
	Entries      []string
	Instructions []string
}

// CreateArchive writes <outDir>/<project>_<YYYYMMDD_HHMMSS>.zip holding the
// HTML as index.html and each image in assetsDir under images/. outDir must
// exist. A missing assets directory is not an error.
func CreateArchive(htmlPath, assetsDir, outDir, project string, now time.Time) (Archive, error) {
	name := fmt.Sprintf("%s_%s.zip", project, now.Format("20060102_150405"))
	path := filepath.Join(outDir, name)

	f, err := os.Create(path) //nolint:gosec // output dir is configured
	if err != nil {
		return Archive{}, fmt.Errorf("create archive: %w", err)
	}
	zw := zip.NewWriter(f)

	entries, err := fillArchive(zw, htmlPath, assetsDir)
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return Archive{}, fmt.Errorf("write archive: %w", err)
	}

	return Archive{Path: path, Entries: entries, Instructions: ManualInstructions(path)}, nil
}

func fillArchive(zw *zip.Writer, htmlPath, assetsDir string) ([]string, error) {
	if err := addFile(zw, htmlPath, "index.html"); err != nil {
		return nil, err
	}
	entries := []string{"index.html"}

	dir, err := os.ReadDir(assetsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("read assets dir: %w", err)
	}
	for _, e := range dir {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		entry := "images/" + e.Name()
		if err := addFile(zw, filepath.Join(assetsDir, e.Name()), entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func addFile(zw *zip.Writer, src, name string) error {
	in, err := os.Open(src) //nolint:gosec // paths come from config
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

// ManualInstructions lists the steps for uploading the archive by hand.
func ManualInstructions(zipPath string) []string {
	return []string{
		"Archive: " + zipPath,
		"Netlify: open https://app.netlify.com/drop and drag the zip onto the page.",
		"GitHub Pages: create a public repository, upload the extracted files, then enable Pages under Settings > Pages.",
		"Vercel: run `vercel` in the extracted folder or import it at https://vercel.com/new.",
	}
}
