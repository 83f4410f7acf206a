package composer

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// centerX is the left edge that centers a run of width textW on a canvas of width canvasW.
func centerX(canvasW, textW float64) float64 {
	return math.Floor((canvasW - textW) / 2)
}

// drawText draws s with the top of its line box at y; the baseline sits one
// ascent below.
func drawText(dc *gg.Context, s string, face font.Face, x, y float64, c color.Color) {
	dc.SetFontFace(face)
	dc.SetColor(c)
	dc.DrawString(s, x, y+float64(face.Metrics().Ascent)/64)
}

// drawCentered draws s horizontally centered using its measured width.
func drawCentered(dc *gg.Context, s string, face font.Face, canvasW, y float64, c color.Color) {
	dc.SetFontFace(face)
	w, _ := dc.MeasureString(s)
	drawText(dc, s, face, centerX(canvasW, w), y, c)
}
