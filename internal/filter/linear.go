package filter

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"

	"github.com/MeKo-Tech/imagelab/internal/kernel"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// newGIFT builds a single-threaded filter chain.
func newGIFT(filters ...gift.Filter) *gift.GIFT {
	g := gift.New(filters...)
	g.SetParallelization(false)
	return g
}

func draw(g *gift.GIFT, src *image.Gray) *image.Gray {
	dst := image.NewGray(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// Linear correlates every channel with k as given (no normalization). Results are
// rounded and clipped to [0, 255].
func Linear(img *raster.Image, k kernel.Kernel, border Border) (*raster.Image, error) {
	if k.Size() == 0 {
		return nil, fmt.Errorf("%w: empty kernel", raster.ErrInvalidArgument)
	}
	g := newGIFT(gift.Convolution(k.Float32(), false, false, false, 0))
	return border.apply(img, k.Radius(), func(p *image.Gray) *image.Gray {
		return draw(g, p)
	})
}

// Median replaces every sample with the median of its size x size neighborhood.
func Median(img *raster.Image, size int, border Border) (*raster.Image, error) {
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("%w: median window must be odd and positive, got %d", raster.ErrInvalidArgument, size)
	}
	g := newGIFT(gift.Median(size, false))
	return border.apply(img, size/2, func(p *image.Gray) *image.Gray {
		return draw(g, p)
	})
}
