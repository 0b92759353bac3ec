// Package kernel defines square convolution kernels and the read-only table of
// named presets used by the filter commands.
package kernel

import (
	"fmt"
	"math"
	"strings"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// Kernel is an odd-sized square matrix of weights, stored row-major.
type Kernel struct {
	size    int
	weights []float64
}

// New builds a size x size kernel from row-major weights.
func New(size int, weights ...float64) (Kernel, error) {
	if size < 1 || size%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: kernel size must be odd and positive, got %d", raster.ErrInvalidArgument, size)
	}
	if len(weights) != size*size {
		return Kernel{}, fmt.Errorf("%w: %dx%d kernel needs %d weights, got %d",
			raster.ErrInvalidArgument, size, size, size*size, len(weights))
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return Kernel{size: size, weights: w}, nil
}

// Zero returns a kernel of the given size with all weights 0.
func Zero(size int) (Kernel, error) {
	if size < 1 {
		return New(size)
	}
	return New(size, make([]float64, size*size)...)
}

func must(size int, scale float64, weights ...float64) Kernel {
	for i := range weights {
		weights[i] /= scale
	}
	k, err := New(size, weights...)
	if err != nil {
		panic(err)
	}
	return k
}

// Size is the side length.
func (k Kernel) Size() int { return k.size }

// Radius is the number of neighbors on each side of the center.
func (k Kernel) Radius() int { return k.size / 2 }

// At returns the weight in row r, column c.
func (k Kernel) At(r, c int) float64 { return k.weights[r*k.size+c] }

// Center returns the weight at (size/2, size/2). Its sign decides whether
// sharpening adds or subtracts the edge response.
func (k Kernel) Center() float64 {
	return k.At(k.size/2, k.size/2)
}

// Weights returns a copy of the row-major weights.
func (k Kernel) Weights() []float64 {
	w := make([]float64, len(k.weights))
	copy(w, k.weights)
	return w
}

// Float32 returns the weights in the form gift.Convolution takes.
func (k Kernel) Float32() []float32 {
	w := make([]float32, len(k.weights))
	for i, v := range k.weights {
		w[i] = float32(v)
	}
	return w
}

// Sum is the total of all weights.
func (k Kernel) Sum() float64 {
	var s float64
	for _, v := range k.weights {
		s += v
	}
	return s
}

// String renders the kernel as rows of weights.
func (k Kernel) String() string {
	var sb strings.Builder
	for r := 0; r < k.size; r++ {
		sb.WriteByte('[')
		for c := 0; c < k.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := k.At(r, c)
			if v == math.Trunc(v) {
				fmt.Fprintf(&sb, "%g", v)
			} else {
				fmt.Fprintf(&sb, "%.4f", v)
			}
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
