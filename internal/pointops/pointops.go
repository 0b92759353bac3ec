// Package pointops generates lookup tables for point operations: negation,
// requantization, posterization and thresholding. Apply them with mapping.Apply.
package pointops

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/imagelab/internal/mapping"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

func checkLevels(levels int) error {
	if levels < 1 || levels > mapping.MaxLevels {
		return fmt.Errorf("%w: levels must be in [1, %d], got %d", raster.ErrInvalidArgument, mapping.MaxLevels, levels)
	}
	return nil
}

func checkLevel(name string, v, levels int) error {
	if v < 0 || v >= levels {
		return fmt.Errorf("%w: %s %d outside [0, %d]", raster.ErrInvalidArgument, name, v, levels-1)
	}
	return nil
}

// Negation inverts brightness: lut[i] = levels-1-i. Applying it twice is a no-op.
func Negation(levels int) (mapping.LUT, error) {
	if err := checkLevels(levels); err != nil {
		return nil, err
	}
	lut := make(mapping.LUT, levels)
	for i := range lut {
		lut[i] = uint8(levels - 1 - i)
	}
	return lut, nil
}

// Requantization reduces the image to target evenly sized buckets, each mapped to
// its center scaled onto the full range.
func Requantization(levels, target int) (mapping.LUT, error) {
	if err := checkLevels(levels); err != nil {
		return nil, err
	}
	if target < 2 {
		return nil, fmt.Errorf("%w: target levels must be >= 2, got %d", raster.ErrInvalidArgument, target)
	}

	step := float64(levels) / float64(target)
	lut := make(mapping.LUT, levels)
	for i := range lut {
		bucket := int(math.Floor(float64(i) / step))
		if bucket >= target {
			bucket = target - 1
		}
		v := math.RoundToEven((float64(bucket) + 0.5) * float64(levels-1) / float64(target))
		lut[i] = uint8(v)
	}
	return lut, nil
}

// Posterize maps levels onto steps evenly spaced output values that include both
// 0 and levels-1.
func Posterize(levels, steps int) (mapping.LUT, error) {
	if err := checkLevels(levels); err != nil {
		return nil, err
	}
	if steps < 2 || steps > levels {
		return nil, fmt.Errorf("%w: posterize steps must be in [2, %d], got %d", raster.ErrInvalidArgument, levels, steps)
	}

	spacing := float64(levels-1) / float64(steps-1)
	lut := make(mapping.LUT, levels)
	for i := range lut {
		step := i * steps / levels
		lut[i] = uint8(math.Floor(spacing * float64(step)))
	}
	return lut, nil
}

// ThresholdBinary maps levels below t to 0 and the rest to levels-1.
func ThresholdBinary(t, levels int) (mapping.LUT, error) {
	if err := checkLevels(levels); err != nil {
		return nil, err
	}
	return ThresholdKeepLevels(t, 0, levels-1, levels)
}

// ThresholdKeepLevels maps levels below t to low and the rest to high.
func ThresholdKeepLevels(t, low, high, levels int) (mapping.LUT, error) {
	if err := checkLevels(levels); err != nil {
		return nil, err
	}
	if err := checkLevel("low level", low, levels); err != nil {
		return nil, err
	}
	if err := checkLevel("high level", high, levels); err != nil {
		return nil, err
	}

	lut := make(mapping.LUT, levels)
	for i := range lut {
		if i < t {
			lut[i] = uint8(low)
		} else {
			lut[i] = uint8(high)
		}
	}
	return lut, nil
}

// ThresholdToZero keeps levels above t and blacks out the rest.
func ThresholdToZero(t, levels int) (mapping.LUT, error) {
	if err := checkLevels(levels); err != nil {
		return nil, err
	}
	lut := make(mapping.LUT, levels)
	for i := range lut {
		if i > t {
			lut[i] = uint8(i)
		}
	}
	return lut, nil
}
