package canvasimg

import (
	"fmt"

	"graphcut/pkg/bitset"
	"graphcut/pkg/flowgraph"
)

// neighborOffset is a 4-neighbor direction; the first two entries are the
// "forward" directions used to avoid double-counting seam edges.
type neighborOffset struct{ dx, dy int }

var allNeighbors = [4]neighborOffset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Canvas composes an owned pixel buffer with a per-pixel origin-patch
// index. origin[i] == -1 means pixel i is unassigned; otherwise it indexes
// into the patch arena below. Canvas "is-an Image" in the original design;
// here that's composition (embedding) plus the façade it gives for free,
// not inheritance.
type Canvas struct {
	*Image
	origin  []int
	patches []*Patch
}

// NewCanvas allocates an empty (fully unassigned) canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	origin := make([]int, w*h)
	for i := range origin {
		origin[i] = -1
	}
	return &Canvas{Image: NewImage(w, h), origin: origin}
}

// Complete reports whether every origin entry is assigned.
func (c *Canvas) Complete() bool {
	for _, o := range c.origin {
		if o == -1 {
			return false
		}
	}
	return true
}

// Apply composites patch p onto the canvas: pixels previously unassigned
// and covered by p are taken directly from it; pixels previously assigned
// to a different patch are re-decided by a minimum-cost cut over the
// overlap region; pixels outside p are untouched.
func (c *Canvas) Apply(p *Patch) error {
	pidx := len(c.patches)
	c.patches = append(c.patches, p)

	xs, xe := max(0, p.X), min(c.W, p.X+p.Source.W)
	ys, ye := max(0, p.Y), min(c.H, p.Y+p.Source.H)
	if xs >= xe || ys >= ye {
		return nil
	}

	var overlap []int
	overlapSet := bitset.New(c.W * c.H)
	ordinal := make([]int, c.W*c.H)
	nOld := 0

	// Phase 1 — classification.
	for y := ys; y < ye; y++ {
		for x := xs; x < xe; x++ {
			idx := y*c.W + x
			if c.origin[idx] == -1 {
				c.origin[idx] = pidx
				c.Data[idx] = p.Pixel(x, y)
				continue
			}

			ordinal[idx] = len(overlap)
			overlapSet.Set(idx, true)
			overlap = append(overlap, idx)

			for _, d := range allNeighbors[:2] {
				a, b := x+d.dx, y+d.dy
				if !c.InRange(a, b) {
					continue
				}
				nidx := b*c.W + a
				if c.origin[nidx] != -1 && c.origin[nidx] != c.origin[idx] {
					nOld++
				}
			}
		}
	}

	if len(overlap) == 0 {
		return nil
	}

	// Phase 2 — graph construction.
	nOverlap := len(overlap)
	s, t := nOverlap+nOld, nOverlap+nOld+1
	g := flowgraph.New(nOverlap + nOld + 2)
	oldSeamCursor := nOverlap

	for i, idx := range overlap {
		x, y := idx%c.W, idx/c.W
		ms := c.At(x, y).Distance(p.Pixel(x, y))
		r := c.patches[c.origin[idx]]

		for dir, d := range allNeighbors {
			a, b := x+d.dx, y+d.dy
			if !c.InRange(a, b) {
				continue
			}
			nidx := b*c.W + a
			qidx := c.origin[nidx]

			if qidx == pidx {
				g.AddEdge(i, t, flowgraph.InfCapacity)
				continue
			}

			if !overlapSet.Get(nidx) {
				if qidx != -1 {
					g.AddEdge(s, i, flowgraph.InfCapacity)
				}
				continue
			}
			j := ordinal[nidx]

			if dir >= 2 {
				// Backward direction: the forward pass from the other
				// endpoint already added this link.
				continue
			}

			q := c.patches[qidx]
			mt := c.At(a, b).Distance(p.Pixel(a, b))

			if r != q && r.InRange(a, b) && q.InRange(x, y) {
				oldMs := r.Pixel(x, y).Distance(q.Pixel(x, y))
				oldMt := r.Pixel(a, b).Distance(q.Pixel(a, b))
				k := oldSeamCursor
				oldSeamCursor++
				g.AddEdge(k, i, int(ms+mt))
				g.AddEdge(k, j, int(ms+mt))
				g.AddEdge(k, t, int(oldMs+oldMt))
			} else {
				g.AddEdge(i, j, int(ms+mt))
			}
		}
	}

	// Phase 3 — min-cut and overwrite.
	decisions := g.MinCut(s, t)
	for i, idx := range overlap {
		if !decisions[i] {
			continue
		}
		x, y := idx%c.W, idx/c.W
		c.origin[idx] = pidx
		c.Data[idx] = p.Pixel(x, y)
	}
	return nil
}

// SSD is the brute-force overlap cost used by random-mode entire-matching
// and debug paths: mean squared RGB distance over the clipped intersection
// of p's extent, the canvas bounds, and the already-assigned pixels within
// them.
func (c *Canvas) SSD(p *Patch) (float64, error) {
	return c.windowedSSD(p, 0, 0, c.W, c.H)
}

// SSDWindow restricts SSD to an additional (wx, wy, ww, wh) rectangle, as
// used by sub-patch matching.
func (c *Canvas) SSDWindow(p *Patch, wx, wy, ww, wh int) (float64, error) {
	return c.windowedSSD(p, wx, wy, ww, wh)
}

func (c *Canvas) windowedSSD(p *Patch, wx, wy, ww, wh int) (float64, error) {
	xs := max(0, wx, p.X)
	xe := min(c.W, wx+ww, p.X+p.Source.W)
	ys := max(0, wy, p.Y)
	ye := min(c.H, wy+wh, p.Y+p.Source.H)

	var sum, count int64
	for y := ys; y < ye; y++ {
		for x := xs; x < xe; x++ {
			idx := y*c.W + x
			if c.origin[idx] == -1 {
				continue
			}
			sum += c.At(x, y).SquaredDistance(p.Pixel(x, y))
			count++
		}
	}
	if count == 0 {
		return 0, fmt.Errorf("canvasimg: ssd: overlap is empty")
	}
	return float64(sum) / float64(count), nil
}
