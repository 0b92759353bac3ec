package filter

import (
	"fmt"
	"image"

	"github.com/MeKo-Tech/imagelab/internal/kernel"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// Sharpen adds the edge response of k back onto the image. A negative center
// weight (the classic Laplacian) means the response has the opposite sign of the
// edge, so it is subtracted instead.
func Sharpen(img *raster.Image, k kernel.Kernel, border Border) (*raster.Image, error) {
	if k.Size() == 0 {
		return nil, fmt.Errorf("%w: empty kernel", raster.ErrInvalidArgument)
	}
	sign := 1.0
	if k.Center() < 0 {
		sign = -1
	}

	return border.apply(img, k.Radius(), func(p *image.Gray) *image.Gray {
		edges := correlate(p, k)
		b := p.Bounds()
		w, h := b.Dx(), b.Dy()
		dst := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			row := p.Pix[p.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				dst.Pix[y*dst.Stride+x] = clampU8(float64(row[x]) + sign*edges[y*w+x])
			}
		}
		return dst
	})
}

// correlate slides k over src with replicated edges and returns the raw responses
// in row-major order.
func correlate(src *image.Gray, k kernel.Kernel) []float64 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	r, n := k.Radius(), k.Size()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var s float64
			for ky := 0; ky < n; ky++ {
				sy := clampInt(y+ky-r, 0, h-1)
				row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+sy):]
				for kx := 0; kx < n; kx++ {
					wgt := k.At(ky, kx)
					if wgt == 0 {
						continue
					}
					s += wgt * float64(row[clampInt(x+kx-r, 0, w-1)])
				}
			}
			out[y*w+x] = s
		}
	}
	return out
}
