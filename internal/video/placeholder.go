package video

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

const (
	defaultWidth  = 1920
	defaultHeight = 1080
)

// placeholderColor is a dark slate fill, close to the rendered news
// page background so a substituted slide does not flash.
var placeholderColor = color.RGBA{R: 0x1e, G: 0x22, B: 0x2e, A: 0xff}

// WritePlaceholderPNG renders a solid frame used when a section's
// image is missing.
func WritePlaceholderPNG(path string, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, placeholderColor)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create placeholder: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return nil
}
