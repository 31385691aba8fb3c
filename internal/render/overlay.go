// Package render visualizes classification masks for inspection.
//
// Rendering is a debugging aid for the pipeline, not part of the
// classification contract: the overlay shows where the structure and
// exclusion masks landed on the source image, and MaskImage turns a mask
// into a plain grayscale image for saving to disk.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/chemvision/structseg/internal/mask"
)

// Tint hues, degrees in HSV space.
const (
	structureHue = 120 // green
	exclusionHue = 0   // red
)

// overlayOpacity is the blend strength of the tint layer.
const overlayOpacity = 0.5

// MaskImage converts a Bitmap to an 8-bit grayscale image, white where
// the mask is set.
func MaskImage(b *mask.Bitmap) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// Overlay renders the structure mask (green tint) and exclusion mask (red
// tint) over the source image at half opacity. Where the two masks overlap
// the exclusion tint wins, so misclassified pixels stand out. The masks
// must match the image's dimensions.
func Overlay(img image.Image, structure, exclusion *mask.Bitmap) (*image.RGBA, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if structure.Width != width || structure.Height != height ||
		exclusion.Width != width || exclusion.Height != height {
		return nil, fmt.Errorf("render: mask shapes do not match image %dx%d", width, height)
	}

	structureTint := hueColor(structureHue)
	exclusionTint := hueColor(exclusionHue)

	base := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(base, base.Bounds(), img, bounds.Min, draw.Src)

	layer := image.NewRGBA(base.Bounds())
	draw.Draw(layer, layer.Bounds(), base, image.Point{}, draw.Src)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch {
			case exclusion.At(x, y):
				layer.SetRGBA(x, y, exclusionTint)
			case structure.At(x, y):
				layer.SetRGBA(x, y, structureTint)
			}
		}
	}

	return blend.Opacity(base, layer, overlayOpacity), nil
}

// hueColor builds a fully saturated tint from an HSV hue.
func hueColor(hue float64) color.RGBA {
	r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
