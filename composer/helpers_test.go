package composer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/require"

	"github.com/cafelife/menuqr/logging"
)

const testURL = "https://cafe-life-menu.netlify.app"

var fixedNow = time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC)

func testBrand() Brand {
	return Brand{
		Name:         "Cafe Life",
		Subtitle:     "Digital Menu",
		Instruction:  "Point your camera at the QR code",
		TentLines:    []string{"Scan the QR code", "View the menu", "Place your order"},
		WiFi:         "WiFi: CafeLife_Guest",
		StickerLabel: "Cafe Life Menu",
		TableLabel:   "Table %d",
		Locale:       "en",
	}
}

// newTestComposer writes into a temp dir and never touches system fonts.
func newTestComposer(t *testing.T, logoPaths ...string) *Composer {
	t.Helper()
	return New(Options{
		OutputDir: filepath.Join(t.TempDir(), "qr_codes"),
		Brand:     testBrand(),
		LogoPaths: logoPaths,
		FontName:  "arial.ttf",
		FontDirs:  []string{},
		Now:       func() time.Time { return fixedNow },
	}, logging.Discard())
}

func decodeQR(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	res, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)
	return res.GetText()
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func readPNGBytes(data []byte) (image.Image, error) {
	return png.Decode(bytes.NewReader(data))
}

func crop(img image.Image, r image.Rectangle) image.Image {
	return imaging.Crop(img, r)
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// writeLogo creates a solid red PNG logo.
func writeLogo(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 300, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	path := filepath.Join(dir, "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}
