package canvasimg

import (
	"math"
	"testing"

	"graphcut/pkg/pixel"
)

// TestVarianceWorkedExample is scenario S6: variance of a 2x2 image with
// pixels (0,0,0), (10,10,10), (20,20,20), (30,30,30).
func TestVarianceWorkedExample(t *testing.T) {
	im := NewImage(2, 2)
	im.Set(0, 0, pixel.Pixel{R: 0, G: 0, B: 0})
	im.Set(1, 0, pixel.Pixel{R: 10, G: 10, B: 10})
	im.Set(0, 1, pixel.Pixel{R: 20, G: 20, B: 20})
	im.Set(1, 1, pixel.Pixel{R: 30, G: 30, B: 30})

	// Per-channel mean is 15; per-channel squared deviations are
	// 225, 25, 25, 225, summed across 3 channels and averaged over 4 pixels.
	want := (225.0 + 25.0 + 25.0 + 225.0) * 3 / 4
	if got := im.Variance(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("Variance() = %v, want %v", got, want)
	}
}

// TestVarianceZeroForSolidColor is part of scenario S1.
func TestVarianceZeroForSolidColor(t *testing.T) {
	im := NewImage(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			im.Set(x, y, pixel.Pixel{R: 255, G: 0, B: 0})
		}
	}
	if got := im.Variance(); got != 0 {
		t.Fatalf("Variance() = %v, want 0 for a solid-color image", got)
	}
}

func TestFlipCorners(t *testing.T) {
	im := NewImage(2, 2)
	im.Set(0, 0, pixel.Pixel{R: 1})
	im.Set(1, 0, pixel.Pixel{R: 2})
	im.Set(0, 1, pixel.Pixel{R: 3})
	im.Set(1, 1, pixel.Pixel{R: 4})

	flipped := im.Flip()
	if flipped.At(0, 0) != (pixel.Pixel{R: 4}) {
		t.Fatalf("Flip().At(0,0) = %+v, want R=4", flipped.At(0, 0))
	}
	if flipped.At(1, 1) != (pixel.Pixel{R: 1}) {
		t.Fatalf("Flip().At(1,1) = %+v, want R=1", flipped.At(1, 1))
	}
}

func TestAtSetOutOfRangePanics(t *testing.T) {
	im := NewImage(2, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("At(-1,0) did not panic")
		}
	}()
	im.At(-1, 0)
}
