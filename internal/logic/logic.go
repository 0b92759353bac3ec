// Package logic applies per-sample bitwise boolean algebra to images and converts
// between 0/1 and 0/255 masks.
package logic

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// Op is a bitwise operation.
type Op int

const (
	Not Op = iota + 1
	And
	Or
	Xor
)

func (op Op) String() string {
	switch op {
	case Not:
		return "not"
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Binary reports whether op needs a second operand.
func (op Op) Binary() bool {
	return op == And || op == Or || op == Xor
}

// ParseOp resolves an operation name (not, and, or, xor).
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not":
		return Not, nil
	case "and":
		return And, nil
	case "or":
		return Or, nil
	case "xor":
		return Xor, nil
	}
	return 0, fmt.Errorf("%w: logical operation %q", raster.ErrUnknownOperation, s)
}

// Logical combines a and b bit by bit. Not ignores b; the binary operations
// require b with the same shape as a.
func Logical(a, b *raster.Image, op Op) (*raster.Image, error) {
	if op != Not && !op.Binary() {
		return nil, fmt.Errorf("%w: logical operation %v", raster.ErrUnknownOperation, op)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrInvalidShape)
	}

	out := raster.Like(a)
	dst := out.Pix()
	if op == Not {
		for i, v := range a.Pix() {
			dst[i] = ^v
		}
		return out, nil
	}

	if b == nil {
		return nil, fmt.Errorf("%w: %v needs a second image", raster.ErrMissingOperand, op)
	}
	if a.Shape() != b.Shape() {
		return nil, fmt.Errorf("%w: image 1 has shape %s, image 2 has shape %s",
			raster.ErrIncompatibleShape, a.Shape(), b.Shape())
	}

	bp := b.Pix()
	for i, v := range a.Pix() {
		switch op {
		case And:
			dst[i] = v & bp[i]
		case Or:
			dst[i] = v | bp[i]
		case Xor:
			dst[i] = v ^ bp[i]
		}
	}
	return out, nil
}

// ToBinaryMask maps every non-zero sample to 1.
func ToBinaryMask(img *raster.Image) *raster.Image {
	return mask(img, 1)
}

// ToDisplayMask maps every non-zero sample to 255.
func ToDisplayMask(img *raster.Image) *raster.Image {
	return mask(img, 255)
}

func mask(img *raster.Image, on uint8) *raster.Image {
	out := raster.Like(img)
	dst := out.Pix()
	for i, v := range img.Pix() {
		if v > 0 {
			dst[i] = on
		}
	}
	return out
}
