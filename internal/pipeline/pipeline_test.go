package pipeline

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/chemvision/structseg/internal/mask"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createDocumentImage creates a white page with one solid blob (a stand-in
// for a structure depiction) and one long thin border line below it
func createDocumentImage() *image.RGBA {
	img := createTestImage(200, 200, color.White)

	// Solid 40x40 blob
	for y := 60; y < 100; y++ {
		for x := 60; x < 100; x++ {
			img.Set(x, y, color.Black)
		}
	}
	// Horizontal border line, 2 px thick
	for y := 160; y < 162; y++ {
		for x := 10; x < 190; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

// maskWithBlob creates a mask with a filled rectangle, exclusive max bounds
func maskWithBlob(w, h, x1, y1, x2, y2 int) *mask.Bitmap {
	m := mask.New(w, h)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func TestDetectEndToEnd(t *testing.T) {
	result, err := Detect(createDocumentImage(), DefaultOptions())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if result.Structure.Width != 200 || result.Structure.Height != 200 {
		t.Fatalf("structure mask shape = %dx%d, want 200x200",
			result.Structure.Width, result.Structure.Height)
	}

	// The blob is structure.
	if !result.Structure.At(80, 80) {
		t.Error("blob center missing from structure mask")
	}
	// The thin border line is opened away from the structure mask.
	if result.Structure.At(100, 160) {
		t.Error("border line leaked into structure mask")
	}
	// The border line lands in the exclusion mask.
	if !result.Exclusion.At(100, 160) {
		t.Error("border line missing from exclusion mask")
	}
	// The two masks do not overlap.
	if overlap := result.Structure.And(result.Exclusion).Count(); overlap != 0 {
		t.Errorf("structure and exclusion masks overlap on %d pixels", overlap)
	}
}

func TestDetectBlankPage(t *testing.T) {
	result, err := Detect(createTestImage(100, 100, color.White), DefaultOptions())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.Structure.Count() != 0 {
		t.Errorf("blank page produced %d structure pixels", result.Structure.Count())
	}
	if result.Exclusion.Count() != 0 {
		t.Errorf("blank page produced %d exclusion pixels", result.Exclusion.Count())
	}
}

func TestDetectBlobOnlyKeepsExclusionEmpty(t *testing.T) {
	img := createTestImage(120, 120, color.White)
	for y := 40; y < 80; y++ {
		for x := 40; x < 80; x++ {
			img.Set(x, y, color.Black)
		}
	}

	result, err := Detect(img, DefaultOptions())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if !result.Structure.At(60, 60) {
		t.Error("blob missing from structure mask")
	}
	if overlap := result.Structure.And(result.Exclusion).Count(); overlap != 0 {
		t.Errorf("blob pixels leaked into exclusion mask (%d overlapping)", overlap)
	}
}

func TestStructureMaskDropsSpecks(t *testing.T) {
	ink := maskWithBlob(60, 60, 20, 20, 40, 40)
	ink.Set(5, 5, true) // isolated speck

	structure := StructureMask(ink, 5)
	if structure.At(5, 5) {
		t.Error("isolated speck survived the opening")
	}
	if !structure.At(30, 30) {
		t.Error("blob interior lost by the opening")
	}
}

func TestDetectInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.SizeDivisor = 0
	if _, err := Detect(createTestImage(10, 10, color.White), opts); err == nil {
		t.Error("expected error for zero size_divisor")
	}
}

func TestDetectAll(t *testing.T) {
	imgs := []image.Image{
		createTestImage(60, 60, color.White),
		createDocumentImage(),
		createTestImage(60, 60, color.Black),
	}

	results, err := DetectAll(context.Background(), imgs, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectAll failed: %v", err)
	}
	if len(results) != len(imgs) {
		t.Fatalf("got %d results, want %d", len(results), len(imgs))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
		if r.Structure.Width != imgs[i].Bounds().Dx() {
			t.Errorf("result %d width = %d, want %d", i, r.Structure.Width, imgs[i].Bounds().Dx())
		}
	}
	if results[1].Exclusion.Count() == 0 {
		t.Error("document image produced no exclusion pixels")
	}
}

func TestDetectAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imgs := []image.Image{createTestImage(40, 40, color.White)}
	if _, err := DetectAll(ctx, imgs, DefaultOptions()); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"kernel", func(o *Options) { o.KernelSize = 0 }},
		{"divisor", func(o *Options) { o.SizeDivisor = -1 }},
		{"min_length_divisor", func(o *Options) { o.MinLengthDivisor = 0 }},
		{"samples", func(o *Options) { o.SamplePoints = 1 }},
		{"margin", func(o *Options) { o.SeedMargin = 0.5 }},
	}
	for _, tc := range cases {
		opts := DefaultOptions()
		tc.mutate(&opts)
		if err := opts.Validate(); err == nil {
			t.Errorf("%s: invalid options passed validation", tc.name)
		}
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("default options failed validation: %v", err)
	}
}
