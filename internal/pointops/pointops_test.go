package pointops

import (
	"errors"
	"testing"

	"github.com/MeKo-Tech/imagelab/internal/mapping"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

func fullRange(t *testing.T) *raster.Image {
	t.Helper()
	pix := make([]uint8, 256)
	for i := range pix {
		pix[i] = uint8(i)
	}
	img, err := raster.FromSamples(raster.Shape{Height: 16, Width: 16, Channels: 1}, pix)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}
	return img
}

func distinct(pix []uint8) map[uint8]bool {
	set := make(map[uint8]bool)
	for _, v := range pix {
		set[v] = true
	}
	return set
}

func TestNegationIsInvolutive(t *testing.T) {
	img := fullRange(t)
	lut, err := Negation(256)
	if err != nil {
		t.Fatalf("Negation: %v", err)
	}
	if lut[0] != 255 || lut[255] != 0 {
		t.Fatalf("unexpected endpoints %d, %d", lut[0], lut[255])
	}

	once, err := mapping.Apply(img, lut)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	twice, err := mapping.Apply(once, lut)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !twice.Equal(img) {
		t.Fatal("negating twice should restore the image")
	}
}

func TestRequantizationDistinctValues(t *testing.T) {
	img := fullRange(t)
	for _, k := range []int{2, 3, 4, 7, 16, 256} {
		lut, err := Requantization(256, k)
		if err != nil {
			t.Fatalf("Requantization(256, %d): %v", k, err)
		}
		out, _ := mapping.Apply(img, lut)
		if n := len(distinct(out.Pix())); n > k {
			t.Errorf("k=%d: got %d distinct values", k, n)
		}
	}

	lut, _ := Requantization(256, 4)
	// bucket centers (b+0.5)*255/4
	want := map[int]uint8{0: 32, 63: 32, 64: 96, 128: 159, 255: 223}
	for i, v := range want {
		if lut[i] != v {
			t.Errorf("lut[%d] = %d, want %d", i, lut[i], v)
		}
	}
}

func TestRequantizationRejectsSmallTarget(t *testing.T) {
	for _, k := range []int{-1, 0, 1} {
		if _, err := Requantization(256, k); !errors.Is(err, raster.ErrInvalidArgument) {
			t.Errorf("target %d: expected ErrInvalidArgument, got %v", k, err)
		}
	}
}

func TestThresholds(t *testing.T) {
	img, _ := raster.FromSamples(raster.Shape{Height: 1, Width: 4, Channels: 1}, []uint8{0, 100, 200, 255})

	tests := []struct {
		name string
		lut  func() (mapping.LUT, error)
		want []uint8
	}{
		{"binary", func() (mapping.LUT, error) { return ThresholdBinary(150, 256) }, []uint8{0, 0, 255, 255}},
		{"binary at sample", func() (mapping.LUT, error) { return ThresholdBinary(200, 256) }, []uint8{0, 0, 255, 255}},
		{"keep levels", func() (mapping.LUT, error) { return ThresholdKeepLevels(150, 10, 240, 256) }, []uint8{10, 10, 240, 240}},
		{"to zero", func() (mapping.LUT, error) { return ThresholdToZero(100, 256) }, []uint8{0, 0, 200, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lut, err := tt.lut()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out, err := mapping.Apply(img, lut)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			for i, v := range out.Pix() {
				if v != tt.want[i] {
					t.Fatalf("got %v, want %v", out.Pix(), tt.want)
				}
			}
		})
	}

	if _, err := ThresholdKeepLevels(10, 0, 300, 256); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Errorf("out-of-range high level: expected ErrInvalidArgument, got %v", err)
	}
}

func TestPosterize(t *testing.T) {
	lut, err := Posterize(256, 4)
	if err != nil {
		t.Fatalf("Posterize: %v", err)
	}
	got := distinct(lut)
	for _, v := range []uint8{0, 85, 170, 255} {
		if !got[v] {
			t.Errorf("expected output level %d, got %v", v, got)
		}
	}
	if len(got) != 4 {
		t.Errorf("expected 4 output levels, got %d", len(got))
	}

	if _, err := Posterize(256, 1); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLevelsValidation(t *testing.T) {
	if _, err := Negation(0); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ThresholdBinary(5, 257); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
