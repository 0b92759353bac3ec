package histogram

import (
	"fmt"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

var (
	monoNames  = []string{"gray"}
	colorNames = []string{"red", "green", "blue", "alpha"}
)

// ChannelNames returns the display names for an image with n channels.
func ChannelNames(n int) []string {
	if n == 1 {
		return monoNames
	}
	if n > len(colorNames) {
		n = len(colorNames)
	}
	return colorNames[:n]
}

// ByName returns the channel tables keyed by channel name.
// The tables are shared with h, not copied.
func (h *Histogram) ByName() map[string]Table {
	names := ChannelNames(len(h.Channels))
	out := make(map[string]Table, len(names))
	for c, name := range names {
		out[name] = h.Channels[c]
	}
	return out
}

// FromNamed rebuilds a (C, L) histogram from a name-keyed map. The channel order
// follows ChannelNames(len(named)).
func FromNamed(named map[string]Table) (*Histogram, error) {
	names := ChannelNames(len(named))
	if len(named) != 1 && len(named) != 3 && len(named) != 4 {
		return nil, fmt.Errorf("%w: %d named channels", raster.ErrInvalidShape, len(named))
	}

	h := &Histogram{Channels: make([]Table, len(names))}
	for c, name := range names {
		t, ok := named[name]
		if !ok {
			return nil, fmt.Errorf("%w: channel %q missing", raster.ErrInvalidShape, name)
		}
		if c == 0 {
			h.Levels = len(t)
		} else if len(t) != h.Levels {
			return nil, fmt.Errorf("%w: channel %q has %d levels, expected %d", raster.ErrInvalidShape, name, len(t), h.Levels)
		}
		h.Channels[c] = t
	}
	return h, nil
}
