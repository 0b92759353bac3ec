package pattern

import (
	"errors"
	"testing"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

func TestGradient(t *testing.T) {
	img := Gradient(256, 2)
	if img.Kind() != raster.Mono || img.Width() != 256 || img.Height() != 2 {
		t.Fatalf("unexpected shape %s", img.Shape())
	}
	for x := 0; x < 256; x++ {
		if img.At(1, x, 0) != uint8(x) {
			t.Fatalf("At(1,%d) = %d", x, img.At(1, x, 0))
		}
	}
	if Gradient(1, 1).At(0, 0, 0) != 0 {
		t.Fatal("single column gradient should be black")
	}
}

func TestCheckerboard(t *testing.T) {
	img, err := Checkerboard(4, 4, 2, 10, 200)
	if err != nil {
		t.Fatalf("Checkerboard: %v", err)
	}
	tests := []struct {
		y, x int
		want uint8
	}{
		{0, 0, 10}, {1, 1, 10}, {0, 2, 200}, {2, 0, 200}, {3, 3, 10},
	}
	for _, tt := range tests {
		if got := img.At(tt.y, tt.x, 0); got != tt.want {
			t.Errorf("At(%d,%d) = %d, want %d", tt.y, tt.x, got, tt.want)
		}
	}
	if _, err := Checkerboard(4, 4, 0, 0, 255); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a, err := Perlin(32, 16, 8, 42)
	if err != nil {
		t.Fatalf("Perlin: %v", err)
	}
	b, _ := Perlin(32, 16, 8, 42)
	if !a.Equal(b) {
		t.Fatal("same seed should produce the same noise")
	}

	c, _ := Perlin(32, 16, 8, 7)
	if a.Equal(c) {
		t.Fatal("different seeds should produce different noise")
	}

	lo, hi := uint8(255), uint8(0)
	for _, v := range a.Pix() {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		t.Fatal("noise should not be flat")
	}

	if _, err := Perlin(4, 4, 0, 1); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSaltAndPepper(t *testing.T) {
	base, _ := raster.NewMulti(20, 20, 3)
	for i := range base.Pix() {
		base.Pix()[i] = 128
	}

	noisy, err := SaltAndPepper(base, 0.3, 1)
	if err != nil {
		t.Fatalf("SaltAndPepper: %v", err)
	}
	changed := 0
	for i := 0; i < noisy.PixelCount(); i++ {
		r, g, b := noisy.Pix()[i*3], noisy.Pix()[i*3+1], noisy.Pix()[i*3+2]
		if r != 128 {
			changed++
			if r != g || g != b || (r != 0 && r != 255) {
				t.Fatalf("pixel %d corrupted inconsistently: %d %d %d", i, r, g, b)
			}
		}
	}
	if changed < 60 || changed > 180 {
		t.Errorf("expected about 120 noisy pixels, got %d", changed)
	}
	if base.Pix()[0] != 128 {
		t.Fatal("input must stay untouched")
	}

	again, _ := SaltAndPepper(base, 0.3, 1)
	if !again.Equal(noisy) {
		t.Fatal("same seed should produce the same noise")
	}

	if _, err := SaltAndPepper(base, 1.5, 1); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
