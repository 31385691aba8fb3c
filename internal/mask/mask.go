package mask

import "image"

// Bitmap is a dense 2-D boolean raster stored in row-major order.
type Bitmap struct {
	Width  int
	Height int
	pix    []bool
}

// New creates an all-false Bitmap of the given dimensions.
// Non-positive dimensions yield an empty Bitmap.
func New(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		pix:    make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) is set.
// Coordinates outside the raster are unset.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return false
	}
	return b.pix[y*b.Width+x]
}

// Set assigns the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *Bitmap) Set(x, y int, v bool) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.pix[y*b.Width+x] = v
}

// SameSize reports whether two bitmaps have identical dimensions.
func (b *Bitmap) SameSize(o *Bitmap) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := New(b.Width, b.Height)
	copy(c.pix, b.pix)
	return c
}

// Invert returns a new Bitmap with every pixel flipped.
func (b *Bitmap) Invert() *Bitmap {
	c := New(b.Width, b.Height)
	for i, v := range b.pix {
		c.pix[i] = !v
	}
	return c
}

// Or returns the pixel-wise union of b and o.
// The bitmaps must have identical dimensions; Or panics otherwise, since a
// size mismatch is always a programming error inside a single pipeline run.
func (b *Bitmap) Or(o *Bitmap) *Bitmap {
	if !b.SameSize(o) {
		panic("mask: Or on bitmaps of different dimensions")
	}
	c := New(b.Width, b.Height)
	for i := range b.pix {
		c.pix[i] = b.pix[i] || o.pix[i]
	}
	return c
}

// And returns the pixel-wise intersection of b and o.
// Panics on dimension mismatch, like Or.
func (b *Bitmap) And(o *Bitmap) *Bitmap {
	if !b.SameSize(o) {
		panic("mask: And on bitmaps of different dimensions")
	}
	c := New(b.Width, b.Height)
	for i := range b.pix {
		c.pix[i] = b.pix[i] && o.pix[i]
	}
	return c
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.pix {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether two bitmaps have the same dimensions and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if !b.SameSize(o) {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Bounds returns the tight bounding box of the set pixels, following the
// image.Rectangle convention (Min inclusive, Max exclusive). The second
// return value is false if no pixel is set, in which case the rectangle is
// the zero value and must not be used.
func (b *Bitmap) Bounds() (image.Rectangle, bool) {
	minX, minY := b.Width, b.Height
	maxX, maxY := -1, -1
	for y := 0; y < b.Height; y++ {
		row := b.pix[y*b.Width : (y+1)*b.Width]
		for x, v := range row {
			if !v {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
