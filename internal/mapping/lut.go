// Package mapping derives transfer lookup tables from histograms and applies them
// to images.
package mapping

import (
	"fmt"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// MaxLevels is the largest LUT length an 8-bit image can address.
const MaxLevels = 256

// LUT maps an input level (the index) to an output level.
type LUT []uint8

// Identity returns the LUT with lut[i] = i.
func Identity(levels int) LUT {
	lut := make(LUT, levels)
	for i := range lut {
		lut[i] = uint8(i)
	}
	return lut
}

func checkLevels(levels int) error {
	if levels < 1 || levels > MaxLevels {
		return fmt.Errorf("%w: levels must be in [1, %d], got %d", raster.ErrInvalidArgument, MaxLevels, levels)
	}
	return nil
}

// Apply replaces every sample v of every channel with lut[v].
func Apply(img *raster.Image, lut LUT) (*raster.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrInvalidShape)
	}
	out := raster.Like(img)
	dst := out.Pix()
	for i, v := range img.Pix() {
		if int(v) >= len(lut) {
			return nil, lutDomainError(v, len(lut))
		}
		dst[i] = lut[v]
	}
	return out, nil
}

// ApplyPerChannel applies luts[c] to channel c. It needs exactly one LUT per channel.
func ApplyPerChannel(img *raster.Image, luts []LUT) (*raster.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrInvalidShape)
	}
	n := img.Channels()
	if len(luts) != n {
		return nil, fmt.Errorf("%w: %d LUTs for an image of shape %s", raster.ErrInvalidShape, len(luts), img.Shape())
	}
	if n == 1 {
		return Apply(img, luts[0])
	}

	out := raster.Like(img)
	dst := out.Pix()
	for i, v := range img.Pix() {
		lut := luts[i%n]
		if int(v) >= len(lut) {
			return nil, lutDomainError(v, len(lut))
		}
		dst[i] = lut[v]
	}
	return out, nil
}

func lutDomainError(v uint8, n int) error {
	return fmt.Errorf("%w: sample %d outside LUT of length %d", raster.ErrInvalidArgument, v, n)
}
