package canvasimg

import (
	"fmt"

	"graphcut/pkg/pixel"
)

// Patch is an immutable view of a source image placed at canvas offset
// (X, Y). Two Patches are equal iff they are the same object; callers
// compare identity via pointer equality, never by value.
type Patch struct {
	X, Y   int
	Source *Image
}

// NewPatch builds a patch referencing source, positioned with its (0,0)
// corner at canvas coordinates (x, y).
func NewPatch(source *Image, x, y int) *Patch {
	return &Patch{X: x, Y: y, Source: source}
}

// InRange reports whether canvas coordinate (a, b) falls inside this
// patch's source extent.
func (p *Patch) InRange(a, b int) bool {
	return p.Source.InRange(a-p.X, b-p.Y)
}

// Pixel returns the source pixel backing canvas coordinate (a, b). The
// caller must have checked InRange first; this is an internal invariant,
// not a caller-facing precondition, so it panics rather than erroring.
func (p *Patch) Pixel(a, b int) pixel.Pixel {
	sx, sy := a-p.X, b-p.Y
	if !p.Source.InRange(sx, sy) {
		panic(fmt.Sprintf("canvasimg: Patch.Pixel(%d,%d) maps outside source extent", a, b))
	}
	return p.Source.At(sx, sy)
}

// Width and Height report the patch's source extent.
func (p *Patch) Width() int  { return p.Source.W }
func (p *Patch) Height() int { return p.Source.H }
