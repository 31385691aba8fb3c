// Package binarize converts raster images to boolean foreground masks.
//
// The conversion pipeline is grayscale reduction followed by global
// thresholding. The produced mask is true where the grayscale intensity
// exceeds the threshold, i.e. a set pixel is a light (background) pixel on
// a typical dark-ink-on-white document scan. Callers that need ink
// polarity invert the result.
//
// # Threshold Selection
//
// Pass OtsuAuto to compute Otsu's global threshold: the intensity cut point
// that maximizes the between-class variance of the image's 256-bin
// histogram. An explicit value in [0, 255] bypasses the histogram analysis.
//
// A constant-intensity image has no meaningful cut point; Otsu then returns
// a deterministic but arbitrary threshold (0) and the condition is logged.
// This is an observability concern only, not an error.
package binarize

import (
	"image"
	"log"

	"github.com/disintegration/imaging"

	"github.com/chemvision/structseg/internal/mask"
)

// OtsuAuto selects automatic threshold computation via Otsu's method.
const OtsuAuto = -1

// Grayscale reduces an image to one luminosity byte per pixel, row-major.
// Multi-channel input is combined with the standard luminosity weights;
// grayscale input passes through unchanged.
func Grayscale(img image.Image) []uint8 {
	gray := imaging.Grayscale(img)
	w := gray.Rect.Dx()
	h := gray.Rect.Dy()

	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w*4]
		for x := 0; x < w; x++ {
			out[y*w+x] = row[x*4] // R == G == B after Grayscale
		}
	}
	return out
}

// OtsuThreshold computes the global Otsu threshold of a grayscale pixel
// slice. The returned cut point maximizes between-class variance; ties are
// broken toward the lowest intensity, so the result is deterministic.
func OtsuThreshold(gray []uint8) uint8 {
	var hist [256]int
	for _, v := range gray {
		hist[v]++
	}
	total := len(gray)

	sum := 0
	for i, c := range hist {
		sum += i * c
	}

	var (
		sumB, wB   int
		maxBetween float64
		threshold  uint8
	)
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += t * hist[t]

		meanB := float64(sumB) / float64(wB)
		meanF := float64(sum-sumB) / float64(wF)
		diff := meanB - meanF
		between := float64(wB) * float64(wF) * diff * diff
		if between > maxBetween {
			maxBetween = between
			threshold = uint8(t)
		}
	}

	if maxBetween == 0 {
		log.Printf("binarize: degenerate histogram (constant intensity), otsu threshold defaults to %d", threshold)
	}
	return threshold
}

// Binarize converts an image to a boolean mask, true where the grayscale
// intensity exceeds the threshold. Pass OtsuAuto (or any negative value)
// to select the threshold automatically.
func Binarize(img image.Image, threshold int) *mask.Bitmap {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	gray := Grayscale(img)

	if threshold < 0 {
		threshold = int(OtsuThreshold(gray))
	}

	out := mask.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if int(gray[y*w+x]) > threshold {
				out.Set(x, y, true)
			}
		}
	}
	return out
}
