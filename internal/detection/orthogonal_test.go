package detection

import (
	"testing"

	"github.com/chemvision/structseg/internal/mask"
)

// createRunMask draws a horizontal or vertical foreground run
func createRunMask(w, h, x, y, length int, horizontal bool) *mask.Bitmap {
	m := mask.New(w, h)
	for i := 0; i < length; i++ {
		if horizontal {
			m.Set(x+i, y, true)
		} else {
			m.Set(x, y+i, true)
		}
	}
	return m
}

func TestOrthogonalLinesLongHorizontalRun(t *testing.T) {
	// Run of 100 px, kernel width 30: survives two erosions comfortably.
	m := createRunMask(200, 200, 20, 100, 100, true)

	excl, err := OrthogonalLines(m, 30, 30)
	if err != nil {
		t.Fatalf("OrthogonalLines failed: %v", err)
	}
	if excl.Count() == 0 {
		t.Error("long horizontal run not detected")
	}
	if !excl.At(70, 100) {
		t.Error("center of the long run not marked")
	}
}

func TestOrthogonalLinesShortRunIgnored(t *testing.T) {
	m := createRunMask(200, 200, 20, 100, 20, true) // 20 < kernel width 30

	excl, err := OrthogonalLines(m, 30, 30)
	if err != nil {
		t.Fatalf("OrthogonalLines failed: %v", err)
	}
	if excl.Count() != 0 {
		t.Errorf("short run produced %d exclusion pixels, want 0", excl.Count())
	}
}

func TestOrthogonalLinesVerticalRun(t *testing.T) {
	m := createRunMask(200, 200, 100, 20, 100, false)

	excl, err := OrthogonalLines(m, 30, 30)
	if err != nil {
		t.Fatalf("OrthogonalLines failed: %v", err)
	}
	if !excl.At(100, 70) {
		t.Error("center of the long vertical run not marked")
	}
}

func TestOrthogonalLinesBothDirections(t *testing.T) {
	m := createRunMask(200, 200, 10, 50, 150, true)
	for i := 0; i < 150; i++ {
		m.Set(150, 10+i, true)
	}

	excl, err := OrthogonalLines(m, 30, 30)
	if err != nil {
		t.Fatalf("OrthogonalLines failed: %v", err)
	}
	if !excl.At(80, 50) {
		t.Error("horizontal run missing from union")
	}
	if !excl.At(150, 80) {
		t.Error("vertical run missing from union")
	}
}

func TestOrthogonalLinesDiagonalIgnored(t *testing.T) {
	m := mask.New(200, 200)
	for i := 0; i < 150; i++ {
		m.Set(20+i, 20+i, true)
	}

	excl, err := OrthogonalLines(m, 30, 30)
	if err != nil {
		t.Fatalf("OrthogonalLines failed: %v", err)
	}
	if excl.Count() != 0 {
		t.Errorf("diagonal produced %d exclusion pixels, want 0", excl.Count())
	}
}

func TestOrthogonalLinesBadSizeEstimate(t *testing.T) {
	m := mask.New(10, 10)
	if _, err := OrthogonalLines(m, 0, 5); err == nil {
		t.Error("expected error for zero size estimate")
	}
	if _, err := OrthogonalLines(m, 5, -1); err == nil {
		t.Error("expected error for negative size estimate")
	}
}
