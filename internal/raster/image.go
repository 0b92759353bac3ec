// Package raster defines the in-memory image model shared by the processing packages.
//
// An Image is either Mono (H x W, one sample per pixel) or Multi (H x W x C with
// C = 3 or 4, interleaved). Samples are 8-bit and channels are addressed by position
// only. Images are immutable by contract: every operation allocates a new Image and
// leaves its inputs untouched.
package raster

import (
	"fmt"
	"image"
)

// Kind distinguishes single-channel from multi-channel images.
type Kind int

const (
	// Mono is a 2D image with one sample per pixel.
	Mono Kind = iota + 1
	// Multi is a 3D image with 3 or 4 samples per pixel.
	Multi
)

func (k Kind) String() string {
	switch k {
	case Mono:
		return "mono"
	case Multi:
		return "multi"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is the (height, width, channels) triple of an image.
type Shape struct {
	Height   int
	Width    int
	Channels int
}

// Kind reports the variant a shape describes.
func (s Shape) Kind() Kind {
	if s.Channels == 1 {
		return Mono
	}
	return Multi
}

// String renders the shape as "(H, W)" for mono and "(H, W, C)" for multi-channel images.
func (s Shape) String() string {
	if s.Channels == 1 {
		return fmt.Sprintf("(%d, %d)", s.Height, s.Width)
	}
	return fmt.Sprintf("(%d, %d, %d)", s.Height, s.Width, s.Channels)
}

// Len is the number of samples an image of this shape holds.
func (s Shape) Len() int {
	return s.Height * s.Width * s.Channels
}

func (s Shape) validate() error {
	if s.Height < 0 || s.Width < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidShape, s.Width, s.Height)
	}
	switch s.Channels {
	case 1, 3, 4:
		return nil
	default:
		return fmt.Errorf("%w: %d channels (want 1, 3 or 4)", ErrInvalidShape, s.Channels)
	}
}

// Image is a rectangular array of 8-bit samples.
type Image struct {
	shape Shape
	pix   []uint8
}

// NewMono allocates a zeroed single-channel image.
func NewMono(height, width int) *Image {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	s := Shape{Height: height, Width: width, Channels: 1}
	return &Image{shape: s, pix: make([]uint8, s.Len())}
}

// NewMulti allocates a zeroed image with 3 or 4 channels.
func NewMulti(height, width, channels int) (*Image, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: multi-channel image needs 3 or 4 channels, got %d", ErrInvalidShape, channels)
	}
	return New(Shape{Height: height, Width: width, Channels: channels})
}

// New allocates a zeroed image of the given shape.
func New(s Shape) (*Image, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &Image{shape: s, pix: make([]uint8, s.Len())}, nil
}

// FromSamples builds an image from interleaved row-major samples. The slice is copied.
func FromSamples(s Shape, pix []uint8) (*Image, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if len(pix) != s.Len() {
		return nil, fmt.Errorf("%w: %d samples do not fill shape %s", ErrInvalidShape, len(pix), s)
	}
	img := &Image{shape: s, pix: make([]uint8, len(pix))}
	copy(img.pix, pix)
	return img, nil
}

// Like allocates a zeroed image with the same shape as m.
func Like(m *Image) *Image {
	return &Image{shape: m.shape, pix: make([]uint8, len(m.pix))}
}

// Shape returns the image dimensions.
func (m *Image) Shape() Shape { return m.shape }

// Kind returns Mono or Multi.
func (m *Image) Kind() Kind { return m.shape.Kind() }

func (m *Image) Height() int   { return m.shape.Height }
func (m *Image) Width() int    { return m.shape.Width }
func (m *Image) Channels() int { return m.shape.Channels }

// PixelCount is Height*Width, the number of samples per channel.
func (m *Image) PixelCount() int { return m.shape.Height * m.shape.Width }

// Pix exposes the interleaved samples. Callers must treat the slice as read-only
// unless they own the image (i.e. they just allocated it).
func (m *Image) Pix() []uint8 { return m.pix }

func (m *Image) offset(y, x, c int) int {
	return (y*m.shape.Width+x)*m.shape.Channels + c
}

// At returns the sample at row y, column x, channel c.
func (m *Image) At(y, x, c int) uint8 {
	return m.pix[m.offset(y, x, c)]
}

// Set stores a sample. Only meant for images under construction.
func (m *Image) Set(y, x, c int, v uint8) {
	m.pix[m.offset(y, x, c)] = v
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	out := Like(m)
	copy(out.pix, m.pix)
	return out
}

// Equal reports whether both images have the same shape and samples.
func (m *Image) Equal(o *Image) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.shape != o.shape {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Plane extracts channel c as a grayscale image with origin (0,0).
func (m *Image) Plane(c int) *image.Gray {
	w, h, n := m.shape.Width, m.shape.Height, m.shape.Channels
	g := image.NewGray(image.Rect(0, 0, w, h))
	if n == 1 {
		copy(g.Pix, m.pix)
		return g
	}
	for i := 0; i < w*h; i++ {
		g.Pix[i] = m.pix[i*n+c]
	}
	return g
}

// Planes splits the image into one grayscale plane per channel.
func (m *Image) Planes() []*image.Gray {
	planes := make([]*image.Gray, m.shape.Channels)
	for c := range planes {
		planes[c] = m.Plane(c)
	}
	return planes
}

// FromPlanes interleaves equally sized grayscale planes into a new image.
// One plane yields a Mono image; three or four yield a Multi image.
func FromPlanes(planes []*image.Gray) (*Image, error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: no planes", ErrInvalidShape)
	}
	b := planes[0].Bounds()
	s := Shape{Height: b.Dy(), Width: b.Dx(), Channels: len(planes)}
	img, err := New(s)
	if err != nil {
		return nil, err
	}
	for c, p := range planes {
		pb := p.Bounds()
		if pb.Dx() != s.Width || pb.Dy() != s.Height {
			return nil, fmt.Errorf("%w: plane %d is %dx%d, plane 0 is %dx%d",
				ErrIncompatibleShape, c, pb.Dx(), pb.Dy(), s.Width, s.Height)
		}
		for y := 0; y < s.Height; y++ {
			off := p.PixOffset(pb.Min.X, pb.Min.Y+y)
			for x, v := range p.Pix[off : off+s.Width] {
				img.pix[(y*s.Width+x)*s.Channels+c] = v
			}
		}
	}
	return img, nil
}

// MapPlanes runs fn on every channel plane and interleaves the results.
func (m *Image) MapPlanes(fn func(*image.Gray) *image.Gray) (*Image, error) {
	planes := m.Planes()
	for c, p := range planes {
		planes[c] = fn(p)
	}
	return FromPlanes(planes)
}
