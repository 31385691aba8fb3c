// Package pipeline composes binarization, mask construction and line
// detection into the end-to-end structure/noise classification.
//
// Detect is the single-image entry point; DetectAll fans independent
// images out across goroutines. Every tunable constant of the underlying
// algorithms is carried in Options so callers can sweep parameters instead
// of relying on hardcoded values.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chemvision/structseg/internal/binarize"
	"github.com/chemvision/structseg/internal/detection"
	"github.com/chemvision/structseg/internal/mask"
)

// Options carries every tunable parameter of the pipeline.
type Options struct {
	// Threshold is the binarization cut point in [0, 255], or a negative
	// value to select Otsu's method.
	Threshold int `yaml:"threshold"`

	// KernelSize is the side of the square structuring element used to
	// smooth the ink mask into the structure mask.
	KernelSize int `yaml:"kernel_size"`

	// SizeDivisor derives the depiction size estimate from the image
	// dimensions: (height/SizeDivisor, width/SizeDivisor).
	SizeDivisor int `yaml:"size_divisor"`

	// VoteThreshold is the Hough accumulator vote minimum.
	VoteThreshold int `yaml:"vote_threshold"`

	// MinLengthDivisor derives the minimum segment length from the longer
	// side of the size estimate.
	MinLengthDivisor int `yaml:"min_length_divisor"`

	// MaxGap is the largest gap across which colinear fragments merge.
	MaxGap int `yaml:"max_gap"`

	// SamplePoints is the number of divisions when sampling a segment's
	// interior against the structure mask.
	SamplePoints int `yaml:"sample_points"`

	// LineThickness is the rasterization width for excluded segments.
	LineThickness int `yaml:"line_thickness"`

	// SeedMargin is the bounding-box fraction trimmed per side when
	// extracting seeds (0.1 keeps the inner 80%).
	SeedMargin float64 `yaml:"seed_margin"`
}

// DefaultOptions returns the reference parameter set.
func DefaultOptions() Options {
	return Options{
		Threshold:        binarize.OtsuAuto,
		KernelSize:       5,
		SizeDivisor:      10,
		VoteThreshold:    5,
		MinLengthDivisor: 4,
		MaxGap:           10,
		SamplePoints:     7,
		LineThickness:    3,
		SeedMargin:       0.1,
	}
}

// Validate reports the first structurally invalid option.
func (o Options) Validate() error {
	switch {
	case o.KernelSize < 1:
		return fmt.Errorf("pipeline: kernel_size must be >= 1, got %d", o.KernelSize)
	case o.SizeDivisor < 1:
		return fmt.Errorf("pipeline: size_divisor must be >= 1, got %d", o.SizeDivisor)
	case o.MinLengthDivisor < 1:
		return fmt.Errorf("pipeline: min_length_divisor must be >= 1, got %d", o.MinLengthDivisor)
	case o.SamplePoints < 2:
		return fmt.Errorf("pipeline: sample_points must be >= 2, got %d", o.SamplePoints)
	case o.SeedMargin < 0 || o.SeedMargin >= 0.5:
		return fmt.Errorf("pipeline: seed_margin must be in [0, 0.5), got %g", o.SeedMargin)
	}
	return nil
}

// StructureMask smooths an ink-polarity mask into a structure-region mask
// with a single square morphological opening. Specks and thin rules
// narrower than the kernel vanish; the bulk shape of larger connected ink
// regions survives.
func StructureMask(ink *mask.Bitmap, kernelSize int) *mask.Bitmap {
	return mask.Open(ink, kernelSize, kernelSize, 1)
}

// Result is the classification output for one image.
type Result struct {
	// Structure marks pixels belonging to chemical structure depictions
	// (true = structure ink).
	Structure *mask.Bitmap

	// Exclusion marks pixels judged to be noise line-art (true = noise).
	Exclusion *mask.Bitmap
}

// Detect classifies an image's pixels into structure and noise-line masks.
//
// The image is binarized, inverted to ink polarity, and smoothed with a
// square morphological opening into the structure mask; the opening drops
// thin rules and specks while keeping the bulk of drawn structures. The
// geometric line detector then runs over the ink mask with the structure
// mask as its candidate, so long bond strokes stay out of the exclusion
// mask. Both returned masks share the image's dimensions; the axis-aligned
// detector is not invoked here and remains an independent primitive
// (compose it with detection.OrthogonalLines and Result.Exclusion.Or).
func Detect(img image.Image, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("pipeline: empty image %dx%d", width, height)
	}

	binarized := binarize.Binarize(img, opts.Threshold)
	ink := binarized.Invert()
	structure := StructureMask(ink, opts.KernelSize)

	maxHeight := height / opts.SizeDivisor
	maxWidth := width / opts.SizeDivisor
	longest := maxHeight
	if maxWidth > longest {
		longest = maxWidth
	}

	params := detection.Params{
		VoteThreshold: opts.VoteThreshold,
		MinLength:     longest / opts.MinLengthDivisor,
		MaxGap:        opts.MaxGap,
		SamplePoints:  opts.SamplePoints,
		Thickness:     opts.LineThickness,
	}
	exclusion, err := detection.NoiseLines(ink, structure, params)
	if err != nil {
		return nil, fmt.Errorf("pipeline: line detection: %w", err)
	}

	return &Result{Structure: structure, Exclusion: exclusion}, nil
}

// DetectAll runs Detect over independent images concurrently. Results are
// index-aligned with the input slice. The first failure cancels the
// remaining work and is returned; ctx cancellation has the same effect.
func DetectAll(ctx context.Context, imgs []image.Image, opts Options) ([]*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Result, len(imgs))
	for i, img := range imgs {
		i, img := i, img
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			r, err := Detect(img, opts)
			if err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
