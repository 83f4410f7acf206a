package composer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	require.Len(t, p, 4)

	tokens := make([]string, len(p))
	for i, v := range p {
		tokens[i] = v.Token
	}
	assert.Equal(t, []string{"ff6b35", "ff9a56", "black", "8B4513"}, tokens)
	assert.Equal(t, color.RGBA{R: 0x8b, G: 0x45, B: 0x13, A: 255}, p[3].Foreground)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xe4, B: 0xb3, A: 255}, p[3].Background)
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "white", want: white},
		{in: "Black", want: black},
		{in: "#ff6b35", want: accent},
		{in: "#fff", want: white},
		{in: "00ff00", want: color.RGBA{G: 255, A: 255}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "teal", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
