package composer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"math"
	"os"
)

// printDPI is stamped into the print products so they come out at A4 size.
const printDPI = 300

// encodePNG encodes img and, when dpi > 0, records the resolution in a pHYs chunk.
func encodePNG(img image.Image, dpi int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	if dpi <= 0 {
		return buf.Bytes(), nil
	}
	return withPhysicalDims(buf.Bytes(), dpi)
}

// withPhysicalDims inserts a pHYs chunk right after IHDR.
func withPhysicalDims(data []byte, dpi int) ([]byte, error) {
	// signature (8) + IHDR length/type/data/crc (4+4+13+4)
	const ihdrEnd = 8 + 25
	if len(data) < ihdrEnd || string(data[12:16]) != "IHDR" {
		return nil, fmt.Errorf("encode png: unexpected header")
	}

	ppm := uint32(math.Round(float64(dpi) / 0.0254))
	body := make([]byte, 9)
	binary.BigEndian.PutUint32(body[0:4], ppm)
	binary.BigEndian.PutUint32(body[4:8], ppm)
	body[8] = 1 // unit: metre

	chunk := make([]byte, 0, 12+len(body))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(body)))
	chunk = append(chunk, "pHYs"...)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out, nil
}

// writePNG encodes img and writes it to path.
func writePNG(path string, img image.Image, dpi int) error {
	data, err := encodePNG(img, dpi)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // images are meant to be shared
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
