package detection

import (
	"fmt"
	"math"
	"sort"

	"github.com/chemvision/structseg/internal/mask"
)

// Point is a 2D pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Segment is a straight line segment with inclusive endpoints.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Params controls the geometric line detector.
type Params struct {
	// VoteThreshold is the minimum accumulator vote count for a line
	// candidate.
	VoteThreshold int

	// MinLength is the minimum segment length in pixels.
	MinLength int

	// MaxGap is the largest break, in pixels, across which colinear
	// fragments are merged into one segment.
	MaxGap int

	// SamplePoints is the number of divisions used when sampling a
	// segment's interior against the candidate mask.
	SamplePoints int

	// Thickness is the rasterization width for excluded segments.
	Thickness int
}

// DefaultParams returns the reference parameter set for a depiction size
// estimate: 5 votes, max(maxHeight, maxWidth)/4 minimum length, 10 px gap,
// 7 sample divisions, 3 px rasterization.
func DefaultParams(maxHeight, maxWidth int) Params {
	longest := maxHeight
	if maxWidth > longest {
		longest = maxWidth
	}
	return Params{
		VoteThreshold: 5,
		MinLength:     longest / 4,
		MaxGap:        10,
		SamplePoints:  7,
		Thickness:     3,
	}
}

// maxSegments bounds the number of segments traced per image.
const maxSegments = 200

// NoiseLines detects straight segments in an ink-polarity mask and returns
// an exclusion mask covering the segments judged to be noise.
//
// Each detected segment is sampled at p.SamplePoints equidistant divisions;
// the strictly interior sample points are tested against the candidate
// mask. If any interior point falls inside the candidate mask the segment
// is taken to be part of a drawn structure (a long bond stroke) and is
// skipped. Otherwise the full segment is rasterized p.Thickness pixels wide
// into the result. There is no majority vote: a single interior hit keeps
// the segment.
//
// An input with no detectable segments yields an all-false mask of the
// same shape. bin and candidate must share dimensions.
func NoiseLines(bin, candidate *mask.Bitmap, p Params) (*mask.Bitmap, error) {
	if !bin.SameSize(candidate) {
		return nil, fmt.Errorf("detection: mask shape %dx%d does not match candidate %dx%d",
			bin.Width, bin.Height, candidate.Width, candidate.Height)
	}
	if p.SamplePoints < 2 {
		return nil, fmt.Errorf("detection: sample points must be >= 2, got %d", p.SamplePoints)
	}

	out := mask.New(bin.Width, bin.Height)
	for _, seg := range houghSegments(bin, p) {
		points := Equidistant(seg.X1, seg.Y1, seg.X2, seg.Y2, p.SamplePoints)
		inStructure := false
		for _, pt := range points[1 : len(points)-1] {
			if candidate.At(pt.X, pt.Y) {
				inStructure = true
				break
			}
		}
		if inStructure {
			continue
		}
		stampLine(out, seg, p.Thickness)
	}
	return out, nil
}

// Equidistant returns the n+1 equally spaced points from (x1, y1) to
// (x2, y2) inclusive, at interpolation parameters t = i/n. Coordinates are
// truncated to integers.
func Equidistant(x1, y1, x2, y2, n int) []Point {
	if n < 1 {
		n = 1
	}
	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x := float64(x1)*(1-t) + float64(x2)*t
		y := float64(y1)*(1-t) + float64(y2)*t
		points = append(points, Point{X: int(x), Y: int(y)})
	}
	return points
}

// houghSegments runs a probabilistic Hough transform over the set pixels
// of bin: standard (rho, theta) accumulator voting at 1 degree resolution,
// peak extraction, then tracing each peak's colinear pixels into segments,
// splitting where the gap between consecutive pixels exceeds p.MaxGap.
// Pixels consumed by an accepted segment do not seed further segments.
func houghSegments(bin *mask.Bitmap, p Params) []Segment {
	width := bin.Width
	height := bin.Height
	if width == 0 || height == 0 {
		return nil
	}

	const numAngles = 180
	sinTab := make([]float64, numAngles)
	cosTab := make([]float64, numAngles)
	for t := 0; t < numAngles; t++ {
		angle := float64(t) * math.Pi / 180.0
		sinTab[t] = math.Sin(angle)
		cosTab[t] = math.Cos(angle)
	}

	maxDist := int(math.Hypot(float64(width), float64(height))) + 1
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !bin.At(x, y) {
				continue
			}
			for t := 0; t < numAngles; t++ {
				rho := float64(x)*cosTab[t] + float64(y)*sinTab[t]
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][t]++
				}
			}
		}
	}

	// Local maxima above the vote threshold become line candidates
	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for t := 0; t < numAngles; t++ {
			votes := accumulator[rhoIdx][t]
			if votes < p.VoteThreshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				nr := rhoIdx + dr
				if nr < 0 || nr >= maxDist*2 {
					continue
				}
				for dt := -2; dt <= 2; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nt := (t + dt + numAngles) % numAngles
					if accumulator[nr][nt] > votes {
						isMax = false
						break
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: t, votes: votes})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		if peaks[i].rho != peaks[j].rho {
			return peaks[i].rho < peaks[j].rho
		}
		return peaks[i].theta < peaks[j].theta
	})

	used := mask.New(width, height)
	segments := make([]Segment, 0)

	for _, pk := range peaks {
		if len(segments) >= maxSegments {
			break
		}

		cosA := cosTab[pk.theta]
		sinA := sinTab[pk.theta]
		rho := float64(pk.rho)

		// Gather unconsumed pixels lying on this line
		type linePoint struct {
			pt   Point
			proj float64
		}
		linePoints := make([]linePoint, 0)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !bin.At(x, y) || used.At(x, y) {
					continue
				}
				dist := math.Abs(float64(x)*cosA + float64(y)*sinA - rho)
				if dist < 2.0 {
					// Projection onto the line's direction vector
					proj := -float64(x)*sinA + float64(y)*cosA
					linePoints = append(linePoints, linePoint{pt: Point{X: x, Y: y}, proj: proj})
				}
			}
		}
		if len(linePoints) < 2 {
			continue
		}

		sort.Slice(linePoints, func(i, j int) bool {
			return linePoints[i].proj < linePoints[j].proj
		})

		// Split into runs at gaps larger than MaxGap
		runStart := 0
		for i := 1; i <= len(linePoints); i++ {
			if i < len(linePoints) && linePoints[i].proj-linePoints[i-1].proj <= float64(p.MaxGap) {
				continue
			}
			run := linePoints[runStart:i]
			runStart = i
			if len(run) < 2 {
				continue
			}

			first := run[0].pt
			last := run[len(run)-1].pt
			dx := float64(last.X - first.X)
			dy := float64(last.Y - first.Y)
			if math.Hypot(dx, dy) < float64(p.MinLength) {
				continue
			}

			segments = append(segments, Segment{X1: first.X, Y1: first.Y, X2: last.X, Y2: last.Y})
			for _, lp := range run {
				used.Set(lp.pt.X, lp.pt.Y, true)
			}
			if len(segments) >= maxSegments {
				break
			}
		}
	}

	return segments
}

// stampLine rasterizes a segment into dst with the given thickness,
// walking the segment with Bresenham's algorithm and stamping a
// thickness×thickness square at every step.
func stampLine(dst *mask.Bitmap, s Segment, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	r := thickness / 2

	x, y := s.X1, s.Y1
	dx := abs(s.X2 - s.X1)
	dy := -abs(s.Y2 - s.Y1)
	sx := 1
	if s.X1 > s.X2 {
		sx = -1
	}
	sy := 1
	if s.Y1 > s.Y2 {
		sy = -1
	}
	err := dx + dy

	for {
		for oy := -r; oy <= thickness-1-r; oy++ {
			for ox := -r; ox <= thickness-1-r; ox++ {
				dst.Set(x+ox, y+oy, true)
			}
		}
		if x == s.X2 && y == s.Y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
