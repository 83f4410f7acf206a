package composer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cafelife/menuqr/logging"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestFonts_MissingFontFallsBackToGoRegular(t *testing.T) {
	t.Parallel()

	f := NewFonts("no-such-font.ttf", FallbackGoRegular, []string{t.TempDir()}, logging.Discard())
	face := f.Face(48)
	require.NotNil(t, face)
	assert.Empty(t, f.Path())
	assert.NotEqual(t, basicfont.Face7x13, face)
	// scaled to the requested size
	assert.Greater(t, face.Metrics().Height.Ceil(), 40)
	assert.Same(t, face, f.Face(48), "faces are cached per size")
}

func TestFonts_BitmapFallback(t *testing.T) {
	t.Parallel()

	f := NewFonts("no-such-font.ttf", FallbackBitmap, nil, logging.Discard())
	assert.Equal(t, basicfont.Face7x13, f.Face(120))
}

func TestFonts_FindsNamedFontInDirs(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "truetype", "msttcorefonts")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "Arial.TTF")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o600))

	f := NewFonts("arial.ttf", FallbackBitmap, []string{filepath.Dir(filepath.Dir(dir))}, logging.Discard())
	assert.Equal(t, path, f.Path())
	face := f.Face(24)
	assert.NotEqual(t, basicfont.Face7x13, face)
}

func TestFonts_CorruptFontFallsBack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "arial.ttf")
	require.NoError(t, writeFile(path, "not a font"))

	f := NewFonts(path, FallbackBitmap, nil, logging.Discard())
	assert.Equal(t, basicfont.Face7x13, f.Face(20))
}

func TestCenterX(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 300.0, centerX(800, 200))
	assert.Equal(t, 299.0, centerX(800, 201.5))
}
