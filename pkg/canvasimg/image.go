// Package canvasimg implements the owned pixel buffer, the patch view into
// it, and the canvas composition model (per-pixel origin tracking plus the
// overlap graph-cut resolver) that together drive texture synthesis.
package canvasimg

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"graphcut/pkg/pixel"
)

func toRGBA(p pixel.Pixel) color.RGBA {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

// Image owns a contiguous row-major buffer of W*H Pixels.
type Image struct {
	W, H int
	Data []pixel.Pixel
}

// NewImage allocates a zeroed image of the given dimensions.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Data: make([]pixel.Pixel, w*h)}
}

// At returns the pixel at (x, y).
func (im *Image) At(x, y int) pixel.Pixel {
	if x < 0 || x >= im.W || y < 0 || y >= im.H {
		panic(fmt.Sprintf("canvasimg: At(%d,%d) out of range for %dx%d image", x, y, im.W, im.H))
	}
	return im.Data[y*im.W+x]
}

// Set assigns the pixel at (x, y).
func (im *Image) Set(x, y int, p pixel.Pixel) {
	if x < 0 || x >= im.W || y < 0 || y >= im.H {
		panic(fmt.Sprintf("canvasimg: Set(%d,%d) out of range for %dx%d image", x, y, im.W, im.H))
	}
	im.Data[y*im.W+x] = p
}

// InRange reports whether (x, y) is a valid coordinate in this image.
func (im *Image) InRange(x, y int) bool {
	return x >= 0 && x < im.W && y >= 0 && y < im.H
}

// Variance is the mean, over all pixels, of the sum across channels of the
// squared deviation from that channel's mean.
func (im *Image) Variance() float64 {
	n := len(im.Data)
	if n == 0 {
		return 0
	}
	var sumR, sumG, sumB float64
	for _, p := range im.Data {
		sumR += float64(p.R)
		sumG += float64(p.G)
		sumB += float64(p.B)
	}
	meanR, meanG, meanB := sumR/float64(n), sumG/float64(n), sumB/float64(n)

	var total float64
	for _, p := range im.Data {
		dr := float64(p.R) - meanR
		dg := float64(p.G) - meanG
		db := float64(p.B) - meanB
		total += dr*dr + dg*dg + db*db
	}
	return total / float64(n)
}

// Flip returns a new image where (x, y) maps to the source's
// (W-1-x, H-1-y) — the 180-degree rotation used to prepare the texture for
// FFT cross-correlation.
func (im *Image) Flip() *Image {
	out := NewImage(im.W, im.H)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.Set(x, y, im.At(im.W-1-x, im.H-1-y))
		}
	}
	return out
}

// LoadImage decodes a PNG, JPEG, or GIF file into a raw-RGB Image.
func LoadImage(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("canvasimg: loading %s: %w", path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("canvasimg: decoding %s: %w", path, err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Set(x, y, pixel.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		}
	}
	return out, nil
}

// Save encodes the image as PNG, or JPEG if path ends in .jpg/.jpeg.
func (im *Image) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvasimg: creating %s: %w", path, err)
	}
	defer file.Close()

	img := image.NewRGBA(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			p := im.At(x, y)
			img.SetRGBA(x, y, toRGBA(p))
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(file, img, &jpeg.Options{Quality: 95}); err != nil {
			return fmt.Errorf("canvasimg: encoding %s: %w", path, err)
		}
	default:
		if err := png.Encode(file, img); err != nil {
			return fmt.Errorf("canvasimg: encoding %s: %w", path, err)
		}
	}
	return nil
}
