package composer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"
)

const (
	tentWidth  = 2480
	tentHeight = 1240
	tentQRSize = 400
	tentQRLeft = 200

	logoSize    = 150
	logoPadding = 10
	// logoLift is how far above the symbol the logo's top edge sits.
	logoLift = 180
)

// tentGradient is the background color of row y on a canvas of the given height.
func tentGradient(y, height int) color.RGBA {
	t := float64(y) / float64(height)
	return color.RGBA{
		R: uint8(255 * (1 - t*0.1)),
		G: uint8(154 + 101*t*0.3),
		B: uint8(86 + 169*t*0.2),
		A: 255,
	}
}

// tentQRTop is the y of the symbol, vertically centered on the card.
func tentQRTop() int {
	return (tentHeight - tentQRSize) / 2
}

// logoOrigin is the top-left corner of the logo above the symbol.
func logoOrigin() image.Point {
	return image.Pt(tentQRLeft+(tentQRSize-logoSize)/2, tentQRTop()-logoLift)
}

// findLogo loads the first decodable candidate, resized for the card. It
// returns nil when none is usable.
func (c *Composer) findLogo() (image.Image, string) {
	for _, p := range c.opts.LogoPaths {
		_, err := os.Stat(p)
		c.log.Debug("logo candidate", "path", p, "exists", err == nil)
	}
	for _, p := range c.opts.LogoPaths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		img, err := imaging.Open(p, imaging.AutoOrientation(true))
		if err != nil {
			c.log.Warn("logo unreadable, skipping", "path", p, "error", err)
			continue
		}
		return imaging.Resize(img, logoSize, logoSize, imaging.Lanczos), p
	}
	c.log.Info("no logo found, table tent will omit it", "candidates", c.opts.LogoPaths)
	return nil, ""
}

// ComposeTableTent lays out the 2480x1240 card. The bool reports whether a
// logo was placed.
func (c *Composer) ComposeTableTent(url string) (image.Image, bool, error) {
	logo, logoPath := c.findLogo()

	canvas := image.NewRGBA(image.Rect(0, 0, tentWidth, tentHeight))
	for y := 0; y < tentHeight; y++ {
		row := image.Rect(0, y, tentWidth, y+1)
		draw.Draw(canvas, row, &image.Uniform{C: tentGradient(y, tentHeight)}, image.Point{}, draw.Src)
	}
	dc := gg.NewContextForRGBA(canvas)

	qr, err := renderQR(url, qrcode.Medium, accent, white, tentQRSize)
	if err != nil {
		return nil, false, err
	}
	dc.DrawImage(qr, tentQRLeft, tentQRTop())

	if logo != nil {
		o := logoOrigin()
		r := float64(logoSize+2*logoPadding) / 2
		dc.SetColor(white)
		dc.DrawCircle(float64(o.X-logoPadding)+r, float64(o.Y-logoPadding)+r, r)
		dc.Fill()
		dc.DrawImage(logo, o.X, o.Y)
		c.log.Debug("logo placed", "path", logoPath)
	}

	b := c.opts.Brand
	x := float64(tentWidth/2 + 200)
	drawText(dc, c.title(b.Name), c.fonts.Face(120), x, 150, white)
	drawText(dc, c.title(b.Subtitle), c.fonts.Face(60), x, 280, white)
	for i, line := range b.TentLines {
		drawText(dc, line, c.fonts.Face(60), x, float64(450+70*i), white)
	}
	if b.WiFi != "" {
		drawText(dc, b.WiFi, c.fonts.Face(40), x, 700, lightGray)
	}

	return dc.Image(), logo != nil, nil
}

// TableTent writes the table-tent card and returns its path.
func (c *Composer) TableTent(url string) (string, error) {
	if err := c.ensureDir(); err != nil {
		return "", err
	}
	img, _, err := c.ComposeTableTent(url)
	if err != nil {
		return "", fmt.Errorf("table tent: %w", err)
	}
	path := c.filePath("table_tent", "png")
	if err := writePNG(path, img, printDPI); err != nil {
		return "", fmt.Errorf("table tent: %w", err)
	}
	c.log.Info("table tent written", "file", path)
	return path, nil
}
