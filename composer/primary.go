package composer

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"
)

const (
	primaryQRSize = 800
	primaryWidth  = 800
	primaryHeight = 1000
	primaryQRTop  = 100

	captionMaxRunes = 50
)

// ComposePrimary lays out one plain code: title and subtitle above the
// symbol, instruction and the URL caption below it.
func (c *Composer) ComposePrimary(url string, v StyleVariant) (image.Image, error) {
	qr, err := renderQR(url, qrcode.Medium, v.Foreground, v.Background, primaryQRSize)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(primaryWidth, primaryHeight)
	dc.SetColor(v.Background)
	dc.Clear()
	dc.DrawImage(qr, (primaryWidth-primaryQRSize)/2, primaryQRTop)

	b := c.opts.Brand
	drawCentered(dc, c.title(b.Name), c.fonts.Face(48), primaryWidth, 20, v.Foreground)
	drawCentered(dc, c.title(b.Subtitle), c.fonts.Face(24), primaryWidth, 70, v.Foreground)
	drawCentered(dc, b.Instruction, c.fonts.Face(24), primaryWidth, 920, v.Foreground)
	drawCentered(dc, truncateURL(url, captionMaxRunes), c.fonts.Face(20), primaryWidth, 960, gray)

	return dc.Image(), nil
}

// Primary writes one 800x1000 code per palette entry and returns the paths.
// The first failure stops the product.
func (c *Composer) Primary(url string) ([]string, error) {
	if err := c.ensureDir(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(c.opts.Palette))
	for i, v := range c.opts.Palette {
		img, err := c.ComposePrimary(url, v)
		if err != nil {
			return paths, fmt.Errorf("primary code %s: %w", v.Token, err)
		}
		path := c.filePath("qr_"+v.Token, "png")
		if err := writePNG(path, img, 0); err != nil {
			return paths, fmt.Errorf("primary code %s: %w", v.Token, err)
		}
		paths = append(paths, path)
		c.log.Info("qr code written", "n", i+1, "file", path, "variant", v.Token)
	}
	return paths, nil
}
