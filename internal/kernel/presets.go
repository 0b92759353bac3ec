package kernel

import (
	"fmt"
	"sort"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// Preset categories.
const (
	Smoothing  = "smoothing"
	Sharpening = "sharpening"
	Prewitt    = "prewitt"
	Sobel      = "sobel"
)

// Preset is a named kernel from the built-in table.
type Preset struct {
	Name     string
	Category string
	Kernel   Kernel
}

var (
	presets    []Preset
	byName     = map[string]int{}
	categories = []string{Smoothing, Sharpening, Prewitt, Sobel}
)

func register(category, name string, k Kernel) {
	byName[name] = len(presets)
	presets = append(presets, Preset{Name: name, Category: category, Kernel: k})
}

func init() {
	register(Smoothing, "box-3x3", must(3, 9,
		1, 1, 1,
		1, 1, 1,
		1, 1, 1))
	register(Smoothing, "box-5x5", must(5, 25,
		1, 1, 1, 1, 1,
		1, 1, 1, 1, 1,
		1, 1, 1, 1, 1,
		1, 1, 1, 1, 1,
		1, 1, 1, 1, 1))
	register(Smoothing, "weighted-3x3", must(3, 16,
		1, 2, 1,
		2, 4, 2,
		1, 2, 1))
	register(Smoothing, "gaussian-3x3", must(3, 16,
		1, 2, 1,
		2, 4, 2,
		1, 2, 1))
	register(Smoothing, "gaussian-5x5", must(5, 273,
		1, 4, 7, 4, 1,
		4, 16, 26, 16, 4,
		7, 26, 41, 26, 7,
		4, 16, 26, 16, 4,
		1, 4, 7, 4, 1))

	register(Sharpening, "sharpen-1", must(3, 1,
		0, 1, 0,
		1, -4, 1,
		0, 1, 0))
	register(Sharpening, "sharpen-2", must(3, 1,
		1, 1, 1,
		1, -8, 1,
		1, 1, 1))
	register(Sharpening, "sharpen-3", must(3, 1,
		0, -1, 0,
		-1, 4, -1,
		0, -1, 0))

	// compass gradients, named after the direction of increasing brightness
	register(Prewitt, "prewitt-n", must(3, 1,
		1, 1, 1,
		0, 0, 0,
		-1, -1, -1))
	register(Prewitt, "prewitt-ne", must(3, 1,
		0, 1, 1,
		-1, 0, 1,
		-1, -1, 0))
	register(Prewitt, "prewitt-e", must(3, 1,
		-1, 0, 1,
		-1, 0, 1,
		-1, 0, 1))
	register(Prewitt, "prewitt-se", must(3, 1,
		-1, -1, 0,
		-1, 0, 1,
		0, 1, 1))
	register(Prewitt, "prewitt-s", must(3, 1,
		-1, -1, -1,
		0, 0, 0,
		1, 1, 1))
	register(Prewitt, "prewitt-sw", must(3, 1,
		0, -1, -1,
		1, 0, -1,
		1, 1, 0))
	register(Prewitt, "prewitt-w", must(3, 1,
		1, 0, -1,
		1, 0, -1,
		1, 0, -1))
	register(Prewitt, "prewitt-nw", must(3, 1,
		1, 1, 0,
		1, 0, -1,
		0, -1, -1))

	register(Sobel, "sobel-x", must(3, 1,
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1))
	register(Sobel, "sobel-y", must(3, 1,
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1))
}

// Lookup returns the preset kernel with the given name.
func Lookup(name string) (Kernel, error) {
	i, ok := byName[name]
	if !ok {
		return Kernel{}, fmt.Errorf("%w: unknown kernel %q", raster.ErrInvalidArgument, name)
	}
	return presets[i].Kernel, nil
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Kernel {
	k, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return k
}

// Presets lists every preset in registration order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Categories lists the preset categories in display order.
func Categories() []string {
	return append([]string(nil), categories...)
}

// Category lists the presets of one category.
func Category(cat string) []Preset {
	var out []Preset
	for _, p := range presets {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Names returns all preset names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
