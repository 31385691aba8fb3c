package detection

import (
	"fmt"

	"github.com/chemvision/structseg/internal/mask"
)

// orthogonalIterations is the number of erosion/dilation passes per
// directional opening, matching the reference implementation.
const orthogonalIterations = 2

// OrthogonalLines returns an exclusion mask marking pixels that belong to
// long horizontal or vertical foreground runs.
//
// The input is an ink-polarity mask (true = ink). maxHeight and maxWidth
// are the estimated maximum depiction size (conventionally image height/10
// and width/10); they set the length a run must reach to count as a line.
// The detector performs two independent morphological openings, one with a
// maxWidth×1 kernel and one with a 1×maxHeight kernel, two iterations each,
// and returns the union of the surviving runs.
func OrthogonalLines(bin *mask.Bitmap, maxHeight, maxWidth int) (*mask.Bitmap, error) {
	if maxHeight <= 0 || maxWidth <= 0 {
		return nil, fmt.Errorf("detection: non-positive size estimate %dx%d", maxHeight, maxWidth)
	}

	horizontal := mask.Open(bin, maxWidth, 1, orthogonalIterations)
	vertical := mask.Open(bin, 1, maxHeight, orthogonalIterations)
	return horizontal.Or(vertical), nil
}
