// Package fft implements the 2-D radix-2 decimation-in-time FFT over
// ComplexPixel buffers used by the FFT-accelerated SSD matching path.
package fft

import (
	"fmt"
	"math"

	"graphcut/pkg/pixel"
)

// Buffer is a W x H grid of ComplexPixels, row-major, with W and H both
// required to be powers of two for Transform to operate on it.
type Buffer struct {
	W, H int
	data []pixel.ComplexPixel
}

// NewBuffer allocates a zeroed buffer of the given power-of-two dimensions.
func NewBuffer(w, h int) (*Buffer, error) {
	if !isPowerOfTwo(w) || !isPowerOfTwo(h) {
		return nil, fmt.Errorf("fft: dimensions %dx%d are not both powers of two", w, h)
	}
	return &Buffer{W: w, H: h, data: make([]pixel.ComplexPixel, w*h)}, nil
}

// At returns the sample at (x, y).
func (b *Buffer) At(x, y int) pixel.ComplexPixel {
	return b.data[y*b.W+x]
}

// Set assigns the sample at (x, y).
func (b *Buffer) Set(x, y int, v pixel.ComplexPixel) {
	b.data[y*b.W+x] = v
}

// RoundUpPow2 rounds x up to the next power of two (x itself if already one).
func RoundUpPow2(x int) int {
	length := 1
	for length < x {
		length *= 2
	}
	return length
}

func isPowerOfTwo(x int) bool {
	return x > 0 && x&(-x) == x
}

// Load zero-pads a W x H pixel window into a freshly allocated power-of-two
// buffer at least as large as minW x minH in each dimension.
func Load(pixels []pixel.Pixel, w, h, minW, minH int) (*Buffer, error) {
	dftW, dftH := RoundUpPow2(minW), RoundUpPow2(minH)
	buf, err := NewBuffer(dftW, dftH)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, pixel.FromPixel(pixels[y*w+x]))
		}
	}
	return buf, nil
}

// Transform runs the forward (or, if inverse is true, the inverse) 2-D FFT
// in place: bit-reversal permutation plus butterflies along rows, then the
// same along columns. The inverse transform negates the twiddle factor's
// imaginary sign and scales the result by 1/(W*H).
func (b *Buffer) Transform(inverse bool) error {
	if !isPowerOfTwo(b.W) || !isPowerOfTwo(b.H) {
		return fmt.Errorf("fft: buffer dimensions %dx%d are not both powers of two", b.W, b.H)
	}

	coefficient := 1.0
	if inverse {
		coefficient = -1.0
	}

	// Bit-reversal permutation along rows.
	for row := 0; row < b.H; row++ {
		base := row * b.W
		for i, j := 0, 0; i < b.W; i++ {
			if i > j {
				b.data[base+i], b.data[base+j] = b.data[base+j], b.data[base+i]
			}
			for t := b.W / 2; ; t /= 2 {
				j ^= t
				if j < t {
					continue
				}
				break
			}
		}
	}

	// Bit-reversal permutation along columns.
	for col := 0; col < b.W; col++ {
		for i, j := 0, 0; i < b.H; i++ {
			if i > j {
				b.data[i*b.W+col], b.data[j*b.W+col] = b.data[j*b.W+col], b.data[i*b.W+col]
			}
			for t := b.H / 2; ; t /= 2 {
				j ^= t
				if j < t {
					continue
				}
				break
			}
		}
	}

	// Butterflies along rows.
	for row := 0; row < b.H; row++ {
		base := row * b.W
		for m := 2; m <= b.W; m *= 2 {
			wn := complex(math.Cos(2*math.Pi/float64(m)), coefficient*math.Sin(2*math.Pi/float64(m)))
			for i := 0; i < b.W; i += m {
				w := complex(1.0, 0.0)
				half := m / 2
				for k := 0; k < half; k, w = k+1, w*wn {
					t := b.data[base+i+k+half].Scale(w)
					u := b.data[base+i+k]
					b.data[base+i+k] = u.Add(t)
					b.data[base+i+k+half] = u.Sub(t)
				}
			}
		}
	}

	// Butterflies along columns.
	for col := 0; col < b.W; col++ {
		for m := 2; m <= b.H; m *= 2 {
			wn := complex(math.Cos(2*math.Pi/float64(m)), coefficient*math.Sin(2*math.Pi/float64(m)))
			for i := 0; i < b.H; i += m {
				w := complex(1.0, 0.0)
				half := m / 2
				for k := 0; k < half; k, w = k+1, w*wn {
					t := b.data[(i+k+half)*b.W+col].Scale(w)
					u := b.data[(i+k)*b.W+col]
					b.data[(i+k)*b.W+col] = u.Add(t)
					b.data[(i+k+half)*b.W+col] = u.Sub(t)
				}
			}
		}
	}

	if inverse {
		scale := complex(1.0/float64(b.W*b.H), 0)
		for i := range b.data {
			b.data[i] = b.data[i].Scale(scale)
		}
	}
	return nil
}

// Multiply multiplies b element-wise by other, in place, as required by FFT
// cross-correlation (pointwise product of two spectra before the inverse
// transform). Both buffers must share dimensions.
func (b *Buffer) Multiply(other *Buffer) error {
	if b.W != other.W || b.H != other.H {
		return fmt.Errorf("fft: multiply dimension mismatch %dx%d vs %dx%d", b.W, b.H, other.W, other.H)
	}
	for i := range b.data {
		b.data[i] = b.data[i].Mul(other.data[i])
	}
	return nil
}
