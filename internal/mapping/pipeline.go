package mapping

import (
	"github.com/MeKo-Tech/imagelab/internal/histogram"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// StretchImage stretches every channel of img using its own histogram.
// A nil clipFrac stretches between the occupied extremes.
func StretchImage(img *raster.Image, clipFrac *float64) (*raster.Image, error) {
	return perChannel(img, func(t histogram.Table) (LUT, error) {
		if clipFrac == nil {
			return StretchLinear(t, histogram.DefaultLevels)
		}
		return StretchLinearClipped(t, histogram.DefaultLevels, *clipFrac)
	})
}

// EqualizeImage equalizes every channel of img independently.
func EqualizeImage(img *raster.Image) (*raster.Image, error) {
	return perChannel(img, func(t histogram.Table) (LUT, error) {
		return EqualizeSelective(t, histogram.DefaultLevels)
	})
}

func perChannel(img *raster.Image, derive func(histogram.Table) (LUT, error)) (*raster.Image, error) {
	h, err := histogram.Compute(img, histogram.DefaultLevels)
	if err != nil {
		return nil, err
	}
	luts := make([]LUT, len(h.Channels))
	for c, t := range h.Channels {
		if luts[c], err = derive(t); err != nil {
			return nil, err
		}
	}
	return ApplyPerChannel(img, luts)
}
