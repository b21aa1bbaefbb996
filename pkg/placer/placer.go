// Package placer implements the four stateless patch-placement operations:
// initial tiling, random placement, FFT-accelerated (or brute-force random)
// entire-matching, and sub-patch matching.
package placer

import (
	"fmt"
	"math"
	"os"

	"graphcut/pkg/canvasimg"
	"graphcut/pkg/fft"
	"graphcut/pkg/rng"
)

// Init tiles the canvas with copies of texture, stepping through canvas
// rows and columns with increments drawn from U[fractionLow*H, fractionHigh*H]
// (rows) and U[fractionLow*W, fractionHigh*W] (columns), establishing a
// complete canvas for the subsequent FFT-based refinement phase.
func Init(canvas *canvasimg.Canvas, texture *canvasimg.Image, r *rng.Source, fractionLow, fractionHigh float64) error {
	if texture.W < 3 || texture.H < 3 {
		return fmt.Errorf("placer: init: texture %dx%d too small to derive a tiling step", texture.W, texture.H)
	}
	yLo, yHi := int(fractionLow*float64(texture.H)), int(fractionHigh*float64(texture.H))
	xLo, xHi := int(fractionLow*float64(texture.W)), int(fractionHigh*float64(texture.W))
	if yLo < 1 {
		yLo = 1
	}
	if yHi < yLo {
		yHi = yLo
	}
	if xLo < 1 {
		xLo = 1
	}
	if xHi < xLo {
		xHi = xLo
	}

	rows := 0
	for y := 0; y < canvas.H; y += r.Int(yLo, yHi) {
		for x := 0; x < canvas.W; x += r.Int(xLo, xHi) {
			if err := canvas.Apply(canvasimg.NewPatch(texture, x, y)); err != nil {
				return fmt.Errorf("placer: init: %w", err)
			}
		}
		rows++
		fmt.Fprintf(os.Stdout, "init: tiled row %d (y=%d)\n", rows, y)
	}
	return nil
}

// Random draws a uniform (x, y) within the texture's own extent and places
// it directly; a baseline / debug operation.
func Random(canvas *canvasimg.Canvas, texture *canvasimg.Image, r *rng.Source) error {
	x := r.Int(0, texture.W-1)
	y := r.Int(0, texture.H-1)
	if err := canvas.Apply(canvasimg.NewPatch(texture, x, y)); err != nil {
		return fmt.Errorf("placer: random: %w", err)
	}
	return nil
}

// EntireMatching chooses a single placement covering the whole texture. In
// random mode it samples `times` canvas-space offsets and keeps the one
// minimizing brute-force overlap SSD. In FFT mode it runs the full
// prefix-sum + FFT cross-correlation + Boltzmann sampler.
func EntireMatching(canvas *canvasimg.Canvas, texture *canvasimg.Image, r *rng.Source, random bool, times int, k float64) error {
	if random {
		return entireMatchingRandom(canvas, texture, r, times)
	}
	return entireMatchingFFT(canvas, texture, r, k)
}

func entireMatchingRandom(canvas *canvasimg.Canvas, texture *canvasimg.Image, r *rng.Source, times int) error {
	var best *canvasimg.Patch
	bestSSD := math.Inf(1)
	for i := 0; i < times; i++ {
		x := r.Int(0, canvas.W-1)
		y := r.Int(0, canvas.H-1)
		candidate := canvasimg.NewPatch(texture, x, y)
		ssd, err := canvas.SSD(candidate)
		if err != nil {
			continue // candidate doesn't overlap any assigned pixel yet
		}
		if ssd < bestSSD {
			bestSSD, best = ssd, candidate
		}
	}
	if best == nil {
		return fmt.Errorf("placer: entire_matching(random): no candidate overlapped an assigned pixel in %d tries", times)
	}
	return canvas.Apply(best)
}

func entireMatchingFFT(canvas *canvasimg.Canvas, texture *canvasimg.Image, r *rng.Source, k float64) error {
	if !canvas.Complete() {
		return fmt.Errorf("placer: entire_matching(fft): canvas is not complete")
	}

	textureSum := prefixSumOfSquares(texture)
	canvasSum := prefixSumOfSquares(canvas.Image)

	flipped := texture.Flip()
	dftW := fft.RoundUpPow2(texture.W + canvas.W)
	dftH := fft.RoundUpPow2(texture.H + canvas.H)

	bufTexture, err := fft.Load(flipped.Data, flipped.W, flipped.H, dftW, dftH)
	if err != nil {
		return fmt.Errorf("placer: entire_matching(fft): %w", err)
	}
	bufCanvas, err := fft.Load(canvas.Data, canvas.W, canvas.H, dftW, dftH)
	if err != nil {
		return fmt.Errorf("placer: entire_matching(fft): %w", err)
	}
	if err := bufTexture.Transform(false); err != nil {
		return fmt.Errorf("placer: entire_matching(fft): %w", err)
	}
	if err := bufCanvas.Transform(false); err != nil {
		return fmt.Errorf("placer: entire_matching(fft): %w", err)
	}
	if err := bufTexture.Multiply(bufCanvas); err != nil {
		return fmt.Errorf("placer: entire_matching(fft): %w", err)
	}
	if err := bufTexture.Transform(true); err != nil {
		return fmt.Errorf("placer: entire_matching(fft): %w", err)
	}

	variance := texture.Variance()
	if variance == 0 {
		variance = 1e-9 // a solid texture has zero variance; avoid dividing by it
	}

	possibility := make([]float64, canvas.W*canvas.H)
	for y, idx := 0, 0; y < canvas.H; y++ {
		for x := 0; x < canvas.W; x, idx = x+1, idx+1 {
			overlapW := min(texture.W, canvas.W-x)
			overlapH := min(texture.H, canvas.H-y)

			ssd := float64(queryPrefixSum(textureSum, 0, 0, overlapW, overlapH, texture.W, texture.H))
			ssd += float64(queryPrefixSum(canvasSum, x, y, overlapW, overlapH, canvas.W, canvas.H))
			realSum := bufTexture.At(texture.W+x-1, texture.H+y-1).RealSum()
			ssd -= math.Floor(2 * realSum)
			ssd /= float64(overlapW * overlapH)

			possibility[idx] = math.Exp(-ssd / (k * variance))
		}
	}

	var total float64
	for _, p := range possibility {
		total += p
	}

	position := r.Float(0, 1)
	var up float64
	var bestX, bestY int
	found := false

search:
	for y, idx := 0, 0; y < canvas.H; y++ {
		for x := 0; x < canvas.W; x, idx = x+1, idx+1 {
			normalized := possibility[idx] / total
			if up+normalized >= position {
				bestX, bestY = x, y
				found = true
				break search
			}
			up += normalized
		}
	}
	if !found {
		// Floating-point rounding can leave a sliver of probability mass
		// unassigned; fall back to the last cell scanned.
		bestX, bestY = canvas.W-1, canvas.H-1
	}

	return canvas.Apply(canvasimg.NewPatch(texture, bestX, bestY))
}

// SubPatchMatching picks a random sub-window of size (W/3, H/3) in the
// canvas, samples `times` random texture alignments such that the window
// maps into the texture, minimizes SSD restricted to the window, and
// applies the best one.
func SubPatchMatching(canvas *canvasimg.Canvas, texture *canvasimg.Image, r *rng.Source, times int) error {
	subW, subH := texture.W/3, texture.H/3
	if subW <= 0 || subH <= 0 || subW > canvas.W || subH > canvas.H {
		return fmt.Errorf("placer: sub_patch_matching: sub-patch size %dx%d doesn't fit the canvas", subW, subH)
	}

	canvasX := r.Int(0, canvas.W-subW)
	canvasY := r.Int(0, canvas.H-subH)

	var best *canvasimg.Patch
	bestSSD := math.Inf(1)
	for i := 0; i < times; i++ {
		x := r.Int(0, texture.W-subW)
		y := r.Int(0, texture.H-subH)
		candidate := canvasimg.NewPatch(texture, canvasX-x, canvasY-y)
		ssd, err := canvas.SSDWindow(candidate, canvasX, canvasY, subW, subH)
		if err != nil {
			continue
		}
		if ssd < bestSSD {
			bestSSD, best = ssd, candidate
		}
	}
	if best == nil {
		return fmt.Errorf("placer: sub_patch_matching: no candidate overlapped an assigned pixel in %d tries", times)
	}
	return canvas.Apply(best)
}

// prefixSumOfSquares builds a 2-D prefix-sum table over each pixel's
// channel sum-of-squares, used to read off Sum(S^2) for any axis-aligned
// rectangle in O(1).
func prefixSumOfSquares(im *canvasimg.Image) []uint64 {
	sum := make([]uint64, im.W*im.H)
	for y, idx := 0, 0; y < im.H; y++ {
		for x := 0; x < im.W; x, idx = x+1, idx+1 {
			var up, left, upLeft uint64
			if y > 0 {
				up = sum[idx-im.W]
			}
			if x > 0 {
				left = sum[idx-1]
			}
			if x > 0 && y > 0 {
				upLeft = sum[idx-im.W-1]
			}
			sum[idx] = up + left + im.Data[idx].SqrSum() - upLeft
		}
	}
	return sum
}

// queryPrefixSum reads Sum(S^2) over the sizeX x sizeY rectangle with
// top-left corner (x, y) via inclusion-exclusion on the four table corners.
func queryPrefixSum(sum []uint64, x, y, sizeX, sizeY, w, h int) uint64 {
	lastX, lastY := x+sizeX-1, y+sizeY-1
	result := sum[lastY*w+lastX]
	if x > 0 && y > 0 {
		result += sum[(y-1)*w+x-1]
	}
	if x > 0 {
		result -= sum[lastY*w+x-1]
	}
	if y > 0 {
		result -= sum[(y-1)*w+lastX]
	}
	return result
}
