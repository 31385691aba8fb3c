package mask

// Erode applies binary erosion with a kw×kh all-true rectangular kernel.
// A pixel survives only if every position under the kernel is set; positions
// outside the raster count as unset.
func Erode(b *Bitmap, kw, kh int) *Bitmap {
	if kw <= 1 && kh <= 1 {
		return b.Clone()
	}
	ax, ay := kw/2, kh/2
	out := New(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if !b.pix[y*b.Width+x] {
				continue
			}
			all := true
			for dy := -ay; dy <= kh-1-ay && all; dy++ {
				for dx := -ax; dx <= kw-1-ax; dx++ {
					if !b.At(x+dx, y+dy) {
						all = false
						break
					}
				}
			}
			out.pix[y*b.Width+x] = all
		}
	}
	return out
}

// Dilate applies binary dilation with a kw×kh all-true rectangular kernel.
// A pixel is set if any position under the kernel is set.
func Dilate(b *Bitmap, kw, kh int) *Bitmap {
	if kw <= 1 && kh <= 1 {
		return b.Clone()
	}
	ax, ay := kw/2, kh/2
	out := New(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			any := false
			for dy := -ay; dy <= kh-1-ay && !any; dy++ {
				for dx := -ax; dx <= kw-1-ax; dx++ {
					if b.At(x+dx, y+dy) {
						any = true
						break
					}
				}
			}
			out.pix[y*b.Width+x] = any
		}
	}
	return out
}

// Open performs a morphological opening: iterations erosions followed by
// iterations dilations with the same kernel. Opening removes foreground
// features smaller than the kernel while preserving the bulk shape of
// larger regions.
func Open(b *Bitmap, kw, kh, iterations int) *Bitmap {
	out := b
	for i := 0; i < iterations; i++ {
		out = Erode(out, kw, kh)
	}
	for i := 0; i < iterations; i++ {
		out = Dilate(out, kw, kh)
	}
	if out == b {
		return b.Clone()
	}
	return out
}
