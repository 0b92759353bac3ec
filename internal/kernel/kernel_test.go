package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		weights []float64
	}{
		{"even size", 2, []float64{1, 1, 1, 1}},
		{"zero size", 0, nil},
		{"too few weights", 3, []float64{1, 2, 3}},
		{"too many weights", 1, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.size, tt.weights...); !errors.Is(err, raster.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestKernelAccessors(t *testing.T) {
	k, err := New(3, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if k.Size() != 3 || k.Radius() != 1 {
		t.Fatalf("size %d radius %d", k.Size(), k.Radius())
	}
	if k.At(2, 0) != 7 || k.Center() != 5 {
		t.Fatalf("At(2,0)=%v Center()=%v", k.At(2, 0), k.Center())
	}
	w := k.Weights()
	w[0] = 100
	if k.At(0, 0) != 1 {
		t.Fatal("Weights must return a copy")
	}
	if f := k.Float32(); len(f) != 9 || f[8] != 9 {
		t.Fatalf("Float32 = %v", f)
	}
}

func TestZero(t *testing.T) {
	k, err := Zero(5)
	if err != nil {
		t.Fatalf("Zero: %v", err)
	}
	if k.Size() != 5 || k.Sum() != 0 {
		t.Fatalf("unexpected zero kernel %v", k)
	}
	if _, err := Zero(4); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPresetTable(t *testing.T) {
	wantCounts := map[string]int{Smoothing: 5, Sharpening: 3, Prewitt: 8, Sobel: 2}
	total := 0
	for _, cat := range Categories() {
		got := len(Category(cat))
		if got != wantCounts[cat] {
			t.Errorf("category %s has %d presets, want %d", cat, got, wantCounts[cat])
		}
		total += got
	}
	if total != len(Presets()) || total != len(Names()) {
		t.Fatalf("category totals %d do not match %d presets", total, len(Presets()))
	}

	for _, p := range Category(Smoothing) {
		if math.Abs(p.Kernel.Sum()-1) > 1e-9 {
			t.Errorf("smoothing kernel %s sums to %v", p.Name, p.Kernel.Sum())
		}
	}
	for _, cat := range []string{Prewitt, Sobel} {
		for _, p := range Category(cat) {
			if p.Kernel.Sum() != 0 {
				t.Errorf("gradient kernel %s sums to %v", p.Name, p.Kernel.Sum())
			}
		}
	}
}

func TestSharpeningCenters(t *testing.T) {
	tests := map[string]float64{"sharpen-1": -4, "sharpen-2": -8, "sharpen-3": 4}
	for name, center := range tests {
		k, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if k.Center() != center {
			t.Errorf("%s center = %v, want %v", name, k.Center(), center)
		}
		if k.Sum() != 0 {
			t.Errorf("%s should sum to 0, got %v", name, k.Sum())
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("emboss"); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPresetsAreReadOnly(t *testing.T) {
	list := Presets()
	list[0].Name = "changed"
	if Presets()[0].Name == "changed" {
		t.Fatal("Presets must not expose the registry")
	}
	if MustLookup("sobel-x").At(1, 2) != 2 {
		t.Fatal("unexpected sobel-x weights")
	}
}
