package mapping

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/imagelab/internal/histogram"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// DefaultClipFraction is the share of pixels a saturated stretch discards, split
// between both tails.
const DefaultClipFraction = 0.05

func checkTable(h histogram.Table, levels int) error {
	if err := checkLevels(levels); err != nil {
		return err
	}
	if len(h) != levels {
		return fmt.Errorf("%w: histogram has %d bins, expected %d", raster.ErrInvalidShape, len(h), levels)
	}
	return nil
}

// StretchLinear builds a contrast-stretch LUT spanning the first and last occupied
// levels of h.
func StretchLinear(h histogram.Table, levels int) (LUT, error) {
	if err := checkTable(h, levels); err != nil {
		return nil, err
	}
	if h.Sum() == 0 {
		return Identity(levels), nil
	}

	zmin, zmax := 0, levels-1
	for i, v := range h {
		if v > 0 {
			zmin = i
			break
		}
	}
	for i := levels - 1; i >= 0; i-- {
		if h[i] > 0 {
			zmax = i
			break
		}
	}
	return stretch(zmin, zmax, levels), nil
}

// StretchLinearClipped builds a contrast-stretch LUT that ignores up to clipFrac of
// all pixels, half taken from the dark tail and the rest from the bright tail.
func StretchLinearClipped(h histogram.Table, levels int, clipFrac float64) (LUT, error) {
	if err := checkTable(h, levels); err != nil {
		return nil, err
	}
	if clipFrac < 0 || clipFrac >= 1 || math.IsNaN(clipFrac) {
		return nil, fmt.Errorf("%w: clip fraction must be in [0, 1), got %v", raster.ErrInvalidArgument, clipFrac)
	}
	total := h.Sum()
	if total == 0 {
		return Identity(levels), nil
	}

	clipTotal := uint64(float64(total)*clipFrac + 0.5)
	clipLow := clipTotal / 2
	clipHigh := clipTotal - clipLow

	zmin := 0
	var cum uint64
	for i, v := range h {
		cum += v
		if cum > clipLow {
			zmin = i
			break
		}
	}
	zmax := levels - 1
	cum = 0
	for i := levels - 1; i >= 0; i-- {
		cum += h[i]
		if cum > clipHigh {
			zmax = i
			break
		}
	}
	if zmax < zmin {
		zmin, zmax = 0, levels-1
	}
	return stretch(zmin, zmax, levels), nil
}

// stretch maps [zmin, zmax] linearly onto [0, levels-1]. A collapsed range yields
// the identity.
func stretch(zmin, zmax, levels int) LUT {
	if zmax == zmin {
		return Identity(levels)
	}
	top := levels - 1
	lut := make(LUT, levels)
	for i := range lut {
		switch {
		case i <= zmin:
			lut[i] = 0
		case i >= zmax:
			lut[i] = uint8(top)
		default:
			v := math.RoundToEven(float64(i-zmin) / float64(zmax-zmin) * float64(top))
			lut[i] = uint8(v)
		}
	}
	return lut
}

// EqualizeSelective builds an equalization LUT from the normalized cumulative
// distribution, anchored so the first occupied level maps to 0.
func EqualizeSelective(h histogram.Table, levels int) (LUT, error) {
	if err := checkTable(h, levels); err != nil {
		return nil, err
	}
	total := h.Sum()
	if total == 0 {
		return Identity(levels), nil
	}

	cum := histogram.Cumulative(h)
	d := make([]float64, levels)
	d0 := 0.0
	for i, c := range cum {
		d[i] = float64(c) / float64(total)
	}
	for _, v := range d {
		if v > 0 {
			d0 = v
			break
		}
	}
	denom := 1 - d0
	if denom <= 0 {
		denom = 1
	}

	lut := make(LUT, levels)
	for i, v := range d {
		x := (v - d0) / denom
		x = math.Max(0, math.Min(1, x))
		lut[i] = uint8(math.RoundToEven(x * float64(levels-1)))
	}
	return lut, nil
}
