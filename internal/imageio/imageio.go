// Package imageio loads and saves images in the formats the command line accepts:
// BMP, PNG, JPEG and TIFF.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// ErrUnsupportedFormat is returned for file extensions without a codec.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an image codec.
type Format string

const (
	BMP  Format = "bmp"
	PNG  Format = "png"
	JPEG Format = "jpeg"
	TIFF Format = "tiff"
)

// DefaultJPEGQuality is used when Options.JPEGQuality is unset.
const DefaultJPEGQuality = 95

var extensions = map[string]Format{
	".bmp":  BMP,
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".tif":  TIFF,
	".tiff": TIFF,
}

// Extensions lists the accepted file extensions.
func Extensions() []string {
	return []string{".bmp", ".tif", ".tiff", ".png", ".jpg", ".jpeg"}
}

// FormatFor picks the codec from the file extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions(), " "))
	}
	return f, nil
}

// Options tune encoding.
type Options struct {
	JPEGQuality int
}

// Load decodes the image at path into the sample model.
func Load(path string) (*raster.Image, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Decode reads one image of the given format.
func Decode(r io.Reader, f Format) (*raster.Image, error) {
	var (
		img image.Image
		err error
	)
	switch f {
	case BMP:
		img, err = bmp.Decode(r)
	case PNG:
		img, err = png.Decode(r)
	case JPEG:
		img, err = jpeg.Decode(r)
	case TIFF:
		img, err = tiff.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return raster.FromImage(img), nil
}

// Save encodes img to path, choosing the codec from the extension.
func Save(path string, img *raster.Image, opts Options) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image %s: %w", path, err)
	}

	if err := Encode(file, img, f, opts); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode image %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write image %s: %w", path, err)
	}
	return nil
}

// Encode writes img in the given format.
func Encode(w io.Writer, img *raster.Image, f Format, opts Options) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", raster.ErrInvalidShape)
	}
	src := img.ToImage()
	switch f {
	case BMP:
		return bmp.Encode(w, src)
	case PNG:
		return png.Encode(w, src)
	case JPEG:
		q := opts.JPEGQuality
		if q <= 0 {
			q = DefaultJPEGQuality
		}
		return jpeg.Encode(w, src, &jpeg.Options{Quality: q})
	case TIFF:
		return tiff.Encode(w, src, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
