package filter

import (
	"fmt"
	"math"

	"github.com/disintegration/gift"

	"github.com/MeKo-Tech/imagelab/internal/kernel"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// DefaultCannySigma is the Gaussian smoothing applied before gradients are taken.
const DefaultCannySigma = 1.0

// Canny detects edges with the classic pipeline: Gaussian smoothing, Sobel
// gradients (L1 magnitude), non-maximum suppression and hysteresis between low and
// high. Gradients above high are edges; those above low survive only when
// 8-connected to an edge. The result is a Mono image of 0 and 255.
//
// For multi-channel images each pixel uses the channel with the strongest gradient.
func Canny(img *raster.Image, low, high float64) (*raster.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrInvalidShape)
	}
	if low < 0 || high < 0 || math.IsNaN(low) || math.IsNaN(high) {
		return nil, fmt.Errorf("%w: thresholds must be non-negative, got %v and %v", raster.ErrInvalidArgument, low, high)
	}
	if low > high {
		low, high = high, low
	}

	w, h := img.Width(), img.Height()
	out := raster.NewMono(h, w)
	if w == 0 || h == 0 {
		return out, nil
	}

	gx, gy, mag := gradients(img)
	nms := suppress(gx, gy, mag, w, h)
	hysteresis(out.Pix(), nms, w, h, low, high)
	return out, nil
}

// gradients smooths every channel and keeps, per pixel, the Sobel response of the
// channel with the largest magnitude.
func gradients(img *raster.Image) (gx, gy, mag []float64) {
	n := img.PixelCount()
	gx, gy, mag = make([]float64, n), make([]float64, n), make([]float64, n)

	blur := newGIFT(gift.GaussianBlur(DefaultCannySigma))
	sx, sy := kernel.MustLookup("sobel-x"), kernel.MustLookup("sobel-y")

	for c, p := range img.Planes() {
		smooth := draw(blur, p)
		dx, dy := correlate(smooth, sx), correlate(smooth, sy)
		for i := range dx {
			m := math.Abs(dx[i]) + math.Abs(dy[i])
			if c == 0 || m > mag[i] {
				gx[i], gy[i], mag[i] = dx[i], dy[i], m
			}
		}
	}
	return gx, gy, mag
}

// suppress thins ridges to one pixel by keeping only local maxima along the
// gradient direction, quantized to four sectors.
func suppress(gx, gy, mag []float64, w, h int) []float64 {
	at := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	out := make([]float64, len(mag))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if m == 0 {
				continue
			}

			angle := math.Atan2(gy[i], gx[i]) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			// neighbors before and after the pixel along the gradient
			var before, after float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				before, after = at(x-1, y), at(x+1, y)
			case angle < 67.5:
				before, after = at(x-1, y-1), at(x+1, y+1)
			case angle < 112.5:
				before, after = at(x, y-1), at(x, y+1)
			default:
				before, after = at(x+1, y-1), at(x-1, y+1)
			}

			// strict on one side so a two-pixel plateau yields a single line
			if m > before && m >= after {
				out[i] = m
			}
		}
	}
	return out
}

// hysteresis marks strong pixels and grows them through 8-connected weak ones.
func hysteresis(dst []uint8, nms []float64, w, h int, low, high float64) {
	stack := make([]int, 0, 64)
	for i, m := range nms {
		if m > high && dst[i] == 0 {
			dst[i] = 255
			stack = append(stack, i)
		}
		for len(stack) > 0 {
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := j%w, j/w
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					k := ny*w + nx
					if dst[k] == 0 && nms[k] > low {
						dst[k] = 255
						stack = append(stack, k)
					}
				}
			}
		}
	}
}
