// Package filter implements neighborhood operations on images: linear
// convolution, Laplacian sharpening, median filtering and Canny edge detection.
//
// Every operation processes channels independently and resolves pixels near the
// image edge through a Border policy.
package filter

import (
	"fmt"
	"image"
	"strings"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// BorderMode selects how samples outside the image are synthesized.
type BorderMode int

const (
	// BorderDefault leaves edges to the filter primitive, which replicates the
	// outermost row and column.
	BorderDefault BorderMode = iota
	// BorderOverwrite filters with replicated edges, then paints a frame as wide as
	// the kernel radius with the border value.
	BorderOverwrite
	// BorderConstant pads the image with the border value before filtering and
	// crops the padding afterwards.
	BorderConstant
)

func (m BorderMode) String() string {
	switch m {
	case BorderDefault:
		return "default"
	case BorderOverwrite:
		return "overwrite"
	case BorderConstant:
		return "constant"
	default:
		return fmt.Sprintf("BorderMode(%d)", int(m))
	}
}

// ParseBorderMode resolves default, overwrite or constant.
func ParseBorderMode(s string) (BorderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "replicate", "":
		return BorderDefault, nil
	case "overwrite":
		return BorderOverwrite, nil
	case "constant":
		return BorderConstant, nil
	}
	return 0, fmt.Errorf("%w: border mode %q", raster.ErrInvalidArgument, s)
}

// Border is a border policy with the value used by the overwrite and constant
// modes.
type Border struct {
	Mode  BorderMode
	Value uint8
}

// planeOp filters one channel. The result has the bounds size of its input.
type planeOp func(*image.Gray) *image.Gray

// run applies op to src under the border policy. radius is the half-width of the
// operation's window.
func (b Border) run(src *image.Gray, radius int, op planeOp) *image.Gray {
	switch b.Mode {
	case BorderConstant:
		if radius == 0 {
			return op(src)
		}
		return crop(op(pad(src, radius, b.Value)), radius)
	case BorderOverwrite:
		dst := op(src)
		paintFrame(dst, radius, b.Value)
		return dst
	default:
		return op(src)
	}
}

// apply runs op on every channel of img.
func (b Border) apply(img *raster.Image, radius int, op planeOp) (*raster.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrInvalidShape)
	}
	if img.PixelCount() == 0 {
		return img.Clone(), nil
	}
	return img.MapPlanes(func(p *image.Gray) *image.Gray {
		return b.run(p, radius, op)
	})
}

// pad returns src surrounded by r rows and columns of v, with origin (0,0).
func pad(src *image.Gray, r int, v uint8) *image.Gray {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()
	dst := image.NewGray(image.Rect(0, 0, w+2*r, h+2*r))
	for i := range dst.Pix {
		dst.Pix[i] = v
	}
	for y := 0; y < h; y++ {
		s := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		d := dst.PixOffset(r, r+y)
		copy(dst.Pix[d:d+w], src.Pix[s:s+w])
	}
	return dst
}

// crop removes r rows and columns from every side of src.
func crop(src *image.Gray, r int) *image.Gray {
	sb := src.Bounds()
	w, h := sb.Dx()-2*r, sb.Dy()-2*r
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		s := src.PixOffset(sb.Min.X+r, sb.Min.Y+r+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[s:s+w])
	}
	return dst
}

// paintFrame sets the outer r rows and columns of dst to v.
func paintFrame(dst *image.Gray, r int, v uint8) {
	if r <= 0 {
		return
	}
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		edgeRow := y < b.Min.Y+r || y >= b.Max.Y-r
		for x := b.Min.X; x < b.Max.X; x++ {
			if edgeRow || x < b.Min.X+r || x >= b.Max.X-r {
				dst.Pix[dst.PixOffset(x, y)] = v
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampU8 clips to [0, 255] and truncates.
func clampU8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
