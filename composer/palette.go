package composer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// StyleVariant is one foreground/background pairing used for the plain codes.
type StyleVariant struct {
	// Token identifies the variant in file names.
	Token      string
	Foreground color.RGBA
	Background color.RGBA
}

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black     = color.RGBA{A: 255}
	gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	lightGray = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	accent    = color.RGBA{R: 0xff, G: 0x6b, B: 0x35, A: 255}
)

var namedColors = map[string]color.RGBA{
	"white":     white,
	"black":     black,
	"gray":      gray,
	"lightgray": lightGray,
}

// DefaultPalette returns the brand palette in render order.
func DefaultPalette() []StyleVariant {
	return []StyleVariant{
		mustVariant("#ff6b35", "white"),
		mustVariant("#ff9a56", "white"),
		mustVariant("black", "white"),
		mustVariant("#8B4513", "#FFE4B3"),
	}
}

// NewVariant builds a variant from two color specs (CSS names or #rrggbb).
func NewVariant(fg, bg string) (StyleVariant, error) {
	f, err := ParseColor(fg)
	if err != nil {
		return StyleVariant{}, err
	}
	b, err := ParseColor(bg)
	if err != nil {
		return StyleVariant{}, err
	}
	token := strings.ReplaceAll(strings.TrimPrefix(fg, "#"), " ", "_")
	return StyleVariant{Token: token, Foreground: f, Background: b}, nil
}

func mustVariant(fg, bg string) StyleVariant {
	v, err := NewVariant(fg, bg)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseColor accepts a handful of CSS color names and #rgb / #rrggbb hex.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("unsupported color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
