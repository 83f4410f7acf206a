package composer

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FallbackMode picks the face used when the named font cannot be loaded.
type FallbackMode string

const (
	// FallbackGoRegular scales the embedded Go Regular face to the requested size.
	FallbackGoRegular FallbackMode = "goregular"
	// FallbackBitmap uses the fixed 7x13 bitmap face regardless of size.
	FallbackBitmap FallbackMode = "bitmap"
)

// Fonts resolves a named system font once and caches faces per point size.
type Fonts struct {
	name     string
	fallback FallbackMode
	dirs     []string
	log      *slog.Logger

	located  bool
	path     string
	regular  *opentype.Font
	cache    map[float64]font.Face
	reported bool
}

// NewFonts returns a font source for name, searched as a path first and then
// by base name under dirs.
func NewFonts(name string, fallback FallbackMode, dirs []string, log *slog.Logger) *Fonts {
	if fallback == "" {
		fallback = FallbackGoRegular
	}
	return &Fonts{
		name:     name,
		fallback: fallback,
		dirs:     dirs,
		log:      log,
		cache:    make(map[float64]font.Face),
	}
}

// Face returns a face at points. It never fails.
func (f *Fonts) Face(points float64) font.Face {
	if face, ok := f.cache[points]; ok {
		return face
	}
	face := f.load(points)
	f.cache[points] = face
	return face
}

// Path reports the resolved font file, or "" when the fallback is in use.
func (f *Fonts) Path() string {
	return f.locate()
}

func (f *Fonts) load(points float64) font.Face {
	if p := f.locate(); p != "" {
		face, err := gg.LoadFontFace(p, points)
		if err == nil {
			return face
		}
		f.log.Warn("font unusable, using fallback", "font", p, "error", err)
		f.path = ""
	}
	return f.fallbackFace(points)
}

func (f *Fonts) fallbackFace(points float64) font.Face {
	if !f.reported {
		f.log.Info("font not available, using fallback", "font", f.name, "fallback", string(f.fallback))
		f.reported = true
	}
	if f.fallback == FallbackBitmap {
		return basicfont.Face7x13
	}
	if f.regular == nil {
		parsed, err := opentype.Parse(goregular.TTF)
		if err != nil {
			f.log.Warn("embedded font unusable", "error", err)
			return basicfont.Face7x13
		}
		f.regular = parsed
	}
	face, err := opentype.NewFace(f.regular, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		f.log.Warn("embedded font face failed", "size", points, "error", err)
		return basicfont.Face7x13
	}
	return face
}

// locate finds the font file once per Fonts value.
func (f *Fonts) locate() string {
	if f.located {
		return f.path
	}
	f.located = true
	if f.name == "" {
		return ""
	}
	if info, err := os.Stat(f.name); err == nil && !info.IsDir() {
		f.path = f.name
		return f.path
	}
	want := strings.ToLower(filepath.Base(f.name))
	for _, dir := range f.dirs {
		_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && strings.ToLower(d.Name()) == want {
				f.path = p
				return fs.SkipAll
			}
			return nil
		})
		if f.path != "" {
			f.log.Debug("font resolved", "font", f.name, "path", f.path)
			break
		}
	}
	return f.path
}
