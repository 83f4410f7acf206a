package composer

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"
)

const (
	sheetWidth  = 2480
	sheetHeight = 3508

	stickerSize   = 590
	stickerQRSize = 400
	stickerQRTop  = 50
	stickerBorder = 5
)

// StickerPositions are the top-left corners of the four stickers on the A4 sheet.
var StickerPositions = [4]image.Point{
	{X: 300, Y: 400},
	{X: 1590, Y: 400},
	{X: 300, Y: 2500},
	{X: 1590, Y: 2500},
}

// composeSticker draws one 590x590 sticker around an already rendered symbol.
func (c *Composer) composeSticker(qr image.Image, table int) image.Image {
	dc := gg.NewContext(stickerSize, stickerSize)
	dc.SetColor(white)
	dc.Clear()

	half := float64(stickerBorder) / 2
	dc.SetColor(accent)
	dc.SetLineWidth(stickerBorder)
	dc.DrawRectangle(half, half, stickerSize-stickerBorder, stickerSize-stickerBorder)
	dc.Stroke()

	dc.DrawImage(qr, (stickerSize-stickerQRSize)/2, stickerQRTop)

	face := c.fonts.Face(28)
	drawCentered(dc, c.title(c.opts.Brand.StickerLabel), face, stickerSize, 480, accent)
	drawCentered(dc, c.tableLabel(table), face, stickerSize, 520, gray)
	return dc.Image()
}

// ComposeStickerSheet tiles four stickers, numbered 1..4, on an A4 canvas.
// Stickers use the highest error-correction level since they get scuffed.
func (c *Composer) ComposeStickerSheet(url string) (image.Image, error) {
	qr, err := renderQR(url, qrcode.Highest, accent, white, stickerQRSize)
	if err != nil {
		return nil, err
	}
	sheet := imaging.New(sheetWidth, sheetHeight, white)
	for i, pos := range StickerPositions {
		sheet = imaging.Paste(sheet, c.composeSticker(qr, i+1), pos)
	}
	return sheet, nil
}

// Stickers writes the sticker sheet and returns its path.
func (c *Composer) Stickers(url string) (string, error) {
	if err := c.ensureDir(); err != nil {
		return "", err
	}
	img, err := c.ComposeStickerSheet(url)
	if err != nil {
		return "", fmt.Errorf("sticker sheet: %w", err)
	}
	path := c.filePath("stickers", "png")
	if err := writePNG(path, img, printDPI); err != nil {
		return "", fmt.Errorf("sticker sheet: %w", err)
	}
	c.log.Info("sticker sheet written", "file", path)
	return path, nil
}
