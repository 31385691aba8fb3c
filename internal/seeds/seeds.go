// Package seeds extracts interior sample coordinates for region growing.
//
// A seed is an ink pixel inside a region of interest, away from the
// region's edges, and not covered by an exclusion mask. Downstream
// segmentation uses seeds to initialize flood-style region growing.
package seeds

import (
	"fmt"

	"github.com/chemvision/structseg/internal/mask"
)

// Point is an (x, y) pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DefaultMargin shrinks the region's bounding box by 10% of its width and
// height on each side, keeping seeds in the inner 80% of the region.
const DefaultMargin = 0.1

// Extract returns the seed points for one region of interest.
//
// ink marks non-background pixels of the full image, region marks the
// region of interest, and exclusion marks pixels to discard (detected
// noise lines). margin is the fraction of the region's bounding-box width
// and height trimmed from each side; pass DefaultMargin for the standard
// inner-80% window.
//
// Seeds are returned in row-major order (ascending y, then x), so output
// is deterministic across runs. A region with no set pixels has no defined
// bounding box; it yields an empty result, not an error. Masks of
// differing dimensions are rejected.
func Extract(ink, region, exclusion *mask.Bitmap, margin float64) ([]Point, error) {
	if !ink.SameSize(region) || !ink.SameSize(exclusion) {
		return nil, fmt.Errorf("seeds: mask shapes differ (ink %dx%d, region %dx%d, exclusion %dx%d)",
			ink.Width, ink.Height, region.Width, region.Height, exclusion.Width, exclusion.Height)
	}

	bounds, ok := region.Bounds()
	if !ok {
		return nil, nil
	}

	// Inner window limits; bounds.Max is exclusive, the diffs span the
	// inclusive extremes.
	xDiff := float64(bounds.Max.X - 1 - bounds.Min.X)
	yDiff := float64(bounds.Max.Y - 1 - bounds.Min.Y)
	xLo := float64(bounds.Min.X) + xDiff*margin
	xHi := float64(bounds.Max.X-1) - xDiff*margin
	yLo := float64(bounds.Min.Y) + yDiff*margin
	yHi := float64(bounds.Max.Y-1) - yDiff*margin

	points := make([]Point, 0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if float64(y) < yLo || float64(y) > yHi {
			continue
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if float64(x) < xLo || float64(x) > xHi {
				continue
			}
			if !ink.At(x, y) || !region.At(x, y) || exclusion.At(x, y) {
				continue
			}
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points, nil
}
