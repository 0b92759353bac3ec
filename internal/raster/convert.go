package raster

import (
	"image"
	"image/color"
)

// FromImage converts a decoded image into the sample model.
//
// Gray sources become Mono. Color sources become three channels (R, G, B), or four
// when any pixel is not fully opaque. An opaque color image whose channels are equal
// everywhere is collapsed to Mono.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.Gray:
		img := NewMono(h, w)
		for y := 0; y < h; y++ {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(img.pix[y*w:(y+1)*w], s.Pix[off:off+w])
		}
		return img
	case *image.Gray16:
		img := NewMono(h, w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.pix[y*w+x] = uint8(s.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return img
	}

	rgba := make([]uint8, w*h*4)
	opaque, gray := true, true
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 4
			rgba[i], rgba[i+1], rgba[i+2], rgba[i+3] = c.R, c.G, c.B, c.A
			if c.A != 0xff {
				opaque = false
			}
			if c.R != c.G || c.G != c.B {
				gray = false
			}
		}
	}

	switch {
	case opaque && gray:
		img := NewMono(h, w)
		for i := range img.pix {
			img.pix[i] = rgba[i*4]
		}
		return img
	case opaque:
		img := &Image{shape: Shape{Height: h, Width: w, Channels: 3}, pix: make([]uint8, w*h*3)}
		for i := 0; i < w*h; i++ {
			copy(img.pix[i*3:i*3+3], rgba[i*4:i*4+3])
		}
		return img
	default:
		return &Image{shape: Shape{Height: h, Width: w, Channels: 4}, pix: rgba}
	}
}

// ToImage converts the samples back into a stdlib image: *image.Gray for Mono and
// *image.NRGBA for Multi (channel 3, when present, becomes alpha).
func (m *Image) ToImage() image.Image {
	w, h, n := m.shape.Width, m.shape.Height, m.shape.Channels
	r := image.Rect(0, 0, w, h)
	if n == 1 {
		g := image.NewGray(r)
		copy(g.Pix, m.pix)
		return g
	}

	dst := image.NewNRGBA(r)
	for i := 0; i < w*h; i++ {
		d := dst.Pix[i*4 : i*4+4]
		s := m.pix[i*n : i*n+n]
		d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xff
		if n == 4 {
			d[3] = s[3]
		}
	}
	return dst
}
