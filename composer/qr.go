package composer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"
)

// renderQR encodes content and rasterizes it to a size x size image in the
// given colors. Every module gets the same whole number of pixels; the
// symbol (quiet zone included) is centered on a bg-filled square.
func renderQR(content string, level qrcode.RecoveryLevel, fg, bg color.Color, size int) (image.Image, error) {
	q, err := qrcode.New(content, level)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	q.ForegroundColor = fg
	q.BackgroundColor = bg

	modules := len(q.Bitmap())
	ppm := size / modules
	if ppm < 1 {
		return nil, fmt.Errorf("encode qr: %d modules do not fit in %dpx", modules, size)
	}
	return imaging.PasteCenter(imaging.New(size, size, bg), q.Image(-ppm)), nil
}

// EncodePNG returns a plain black-on-white code as PNG bytes.
func EncodePNG(content string, size int) ([]byte, error) {
	img, err := renderQR(content, qrcode.Medium, color.Black, color.White, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
