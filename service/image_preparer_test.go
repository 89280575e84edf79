package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareForPrintPadsSmallImage(t *testing.T) {
	prepared, err := PrepareForPrint(encodePNG(t, 400, 300))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(prepared))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1800, img.Bounds().Dx())
	assert.Equal(t, 2400, img.Bounds().Dy())

	// Padding is white.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestPrepareForPrintShrinksOversizedImage(t *testing.T) {
	prepared, err := PrepareForPrint(encodePNG(t, 3600, 2400))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(prepared))
	require.NoError(t, err)
	assert.Equal(t, 1800, img.Bounds().Dx())
	assert.Equal(t, 2400, img.Bounds().Dy())
}

func TestPrepareForPrintRejectsGarbage(t *testing.T) {
	_, err := PrepareForPrint([]byte("definitely not an image"))
	assert.Error(t, err)
}
