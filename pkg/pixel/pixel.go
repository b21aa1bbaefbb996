// Package pixel implements the 8-bit RGB triple and its complex-valued
// counterpart used by the FFT matching path.
package pixel

import "math"

// Pixel is an 8-bit RGB triple, packed to exactly 3 bytes so a contiguous
// W*H buffer of Pixels is a valid raw-RGB image.
type Pixel struct {
	R, G, B uint8
}

// Distance returns the Euclidean distance between two pixels, truncated to
// an integer.
func (p Pixel) Distance(q Pixel) int64 {
	return int64(math.Sqrt(float64(p.SquaredDistance(q))))
}

// SquaredDistance returns the sum of squared per-channel differences.
func (p Pixel) SquaredDistance(q Pixel) int64 {
	dr := int64(p.R) - int64(q.R)
	dg := int64(p.G) - int64(q.G)
	db := int64(p.B) - int64(q.B)
	return dr*dr + dg*dg + db*db
}

// SqrSum returns the sum of squares of the three channels.
func (p Pixel) SqrSum() uint64 {
	r, g, b := uint64(p.R), uint64(p.G), uint64(p.B)
	return r*r + g*g + b*b
}

// ComplexPixel is a triple of complex128 channels, one per color, used only
// during SSD computation via FFT cross-correlation.
type ComplexPixel struct {
	R, G, B complex128
}

// FromPixel lifts a Pixel into the complex domain with zero imaginary part.
func FromPixel(p Pixel) ComplexPixel {
	return ComplexPixel{
		R: complex(float64(p.R), 0),
		G: complex(float64(p.G), 0),
		B: complex(float64(p.B), 0),
	}
}

// FromScalar builds a ComplexPixel whose three channels all equal c.
func FromScalar(c complex128) ComplexPixel {
	return ComplexPixel{R: c, G: c, B: c}
}

// Add returns the element-wise sum of two ComplexPixels.
func (p ComplexPixel) Add(q ComplexPixel) ComplexPixel {
	return ComplexPixel{R: p.R + q.R, G: p.G + q.G, B: p.B + q.B}
}

// Sub returns the element-wise difference of two ComplexPixels.
func (p ComplexPixel) Sub(q ComplexPixel) ComplexPixel {
	return ComplexPixel{R: p.R - q.R, G: p.G - q.G, B: p.B - q.B}
}

// Mul returns the element-wise product of two ComplexPixels.
func (p ComplexPixel) Mul(q ComplexPixel) ComplexPixel {
	return ComplexPixel{R: p.R * q.R, G: p.G * q.G, B: p.B * q.B}
}

// Scale multiplies every channel by a complex scalar.
func (p ComplexPixel) Scale(c complex128) ComplexPixel {
	return ComplexPixel{R: p.R * c, G: p.G * c, B: p.B * c}
}

// Div divides every channel by a complex scalar.
func (p ComplexPixel) Div(c complex128) ComplexPixel {
	return ComplexPixel{R: p.R / c, G: p.G / c, B: p.B / c}
}

// RealSum returns the sum of the real parts of the three channels.
func (p ComplexPixel) RealSum() float64 {
	return real(p.R) + real(p.G) + real(p.B)
}
