package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/disintegration/imaging"
)

const (
	// Print canvas for a 12"x16" front placement at 150 DPI.
	printWidth  = 1800
	printHeight = 2400
)

// PrepareForPrint normalizes a generated image for the print provider:
// decode, fit inside the print canvas preserving aspect ratio, center on a
// white background, re-encode as PNG.
// imageData: raw image bytes (PNG, JPEG, etc.)
func PrepareForPrint(imageData []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	bounds := img.Bounds()
	if bounds.Dx() > printWidth || bounds.Dy() > printHeight {
		img = imaging.Fit(img, printWidth, printHeight, imaging.Lanczos)
	}

	canvas := imaging.New(printWidth, printHeight, color.White)
	canvas = imaging.PasteCenter(canvas, img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode prepared image: %w", err)
	}

	prepared := buf.Bytes()
	log.Printf("✓ Image prepared for print: %dx%d, output_size=%d bytes", printWidth, printHeight, len(prepared))
	return prepared, nil
}
