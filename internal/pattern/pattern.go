// Package pattern generates synthetic test images: gradients, checkerboards,
// Perlin noise and salt-and-pepper noise.
package pattern

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// Gradient returns a horizontal ramp from 0 on the left to 255 on the right.
func Gradient(width, height int) *raster.Image {
	img := raster.NewMono(height, width)
	pix := img.Pix()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := 0
			if width > 1 {
				v = x * 255 / (width - 1)
			}
			pix[y*width+x] = uint8(v)
		}
	}
	return img
}

// Checkerboard returns alternating cell x cell squares of dark and light.
func Checkerboard(width, height, cell int, dark, light uint8) (*raster.Image, error) {
	if cell < 1 {
		return nil, fmt.Errorf("%w: checker cell must be positive, got %d", raster.ErrInvalidArgument, cell)
	}
	img := raster.NewMono(height, width)
	pix := img.Pix()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				pix[y*width+x] = dark
			} else {
				pix[y*width+x] = light
			}
		}
	}
	return img, nil
}

// Perlin generates a grayscale Perlin noise image. scale controls the feature size
// in pixels; the same seed always produces the same image.
func Perlin(width, height int, scale float64, seed int64) (*raster.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: noise scale must be positive, got %v", raster.ErrInvalidArgument, scale)
	}
	// alpha 2 (persistence), beta 2 (lacunarity), 3 octaves
	p := perlin.NewPerlin(2.0, 2.0, 3, seed)

	img := raster.NewMono(height, width)
	pix := img.Pix()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := p.Noise2D(float64(x)/scale, float64(y)/scale)
			normalized := (val + 1.0) / 2.0
			pix[y*width+x] = uint8(math.Max(0, math.Min(255, normalized*255)))
		}
	}
	return img, nil
}

// SaltAndPepper returns a copy of img in which a fraction amount of the pixels is
// set to 0 or 255 in every channel, chosen with equal probability.
func SaltAndPepper(img *raster.Image, amount float64, seed int64) (*raster.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrInvalidShape)
	}
	if amount < 0 || amount > 1 {
		return nil, fmt.Errorf("%w: noise amount must be in [0, 1], got %v", raster.ErrInvalidArgument, amount)
	}

	rng := rand.New(rand.NewSource(seed))
	out := img.Clone()
	pix := out.Pix()
	n := img.Channels()
	for i := 0; i < img.PixelCount(); i++ {
		if rng.Float64() >= amount {
			continue
		}
		v := uint8(0)
		if rng.Intn(2) == 1 {
			v = 255
		}
		for c := 0; c < n; c++ {
			pix[i*n+c] = v
		}
	}
	return out, nil
}
