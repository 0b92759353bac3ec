// Package histogram counts sample frequencies per brightness level and derives
// cumulative tables and summary statistics from them.
package histogram

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

// DefaultLevels is the number of brightness levels of an 8-bit channel.
const DefaultLevels = 256

// Table is a 1D frequency or cumulative table indexed by brightness level.
type Table []uint64

// Sum returns the total count in the table.
func (t Table) Sum() uint64 {
	var s uint64
	for _, v := range t {
		s += v
	}
	return s
}

// Max returns the largest bin count.
func (t Table) Max() uint64 {
	var m uint64
	for _, v := range t {
		if v > m {
			m = v
		}
	}
	return m
}

// Histogram holds one Table per image channel, all of length Levels.
// A mono image yields a single channel.
type Histogram struct {
	Levels   int
	Channels []Table
}

// Compute counts the occurrences of every sample value in img, per channel.
func Compute(img *raster.Image, levels int) (*Histogram, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrInvalidShape)
	}
	if levels < 1 {
		return nil, fmt.Errorf("%w: levels must be positive, got %d", raster.ErrInvalidArgument, levels)
	}

	n := img.Channels()
	h := &Histogram{Levels: levels, Channels: make([]Table, n)}
	for c := range h.Channels {
		h.Channels[c] = make(Table, levels)
	}

	pix := img.Pix()
	switch img.Kind() {
	case raster.Mono:
		t := h.Channels[0]
		for _, v := range pix {
			if int(v) >= levels {
				return nil, outOfRange(v, levels)
			}
			t[v]++
		}
	case raster.Multi:
		for i := 0; i < len(pix); i += n {
			for c := 0; c < n; c++ {
				v := pix[i+c]
				if int(v) >= levels {
					return nil, outOfRange(v, levels)
				}
				h.Channels[c][v]++
			}
		}
	}
	return h, nil
}

func outOfRange(v uint8, levels int) error {
	return fmt.Errorf("%w: sample value %d outside %d levels", raster.ErrInvalidArgument, v, levels)
}

// Rank is 1 for a single-channel histogram and 2 for a (C, L) histogram.
func (h *Histogram) Rank() int {
	if len(h.Channels) == 1 {
		return 1
	}
	return 2
}

// Channel returns the table of channel c.
func (h *Histogram) Channel(c int) Table {
	return h.Channels[c]
}

// Total is the number of samples counted in channel c.
func (h *Histogram) Total(c int) uint64 { return h.Channels[c].Sum() }

// Max is the peak bin count of channel c, used to scale charts.
func (h *Histogram) Max(c int) uint64 { return h.Channels[c].Max() }

// Cumulative returns the running sums of every channel, same shape as h.
func (h *Histogram) Cumulative() *Histogram {
	out := &Histogram{Levels: h.Levels, Channels: make([]Table, len(h.Channels))}
	for c, t := range h.Channels {
		out.Channels[c] = Cumulative(t)
	}
	return out
}

// Stats summarizes a single-channel histogram.
func (h *Histogram) Stats() (Stats, error) {
	if h.Rank() != 1 {
		return Stats{}, fmt.Errorf("%w: stats need a 1D histogram, got %d channels", raster.ErrInvalidShape, len(h.Channels))
	}
	return StatsOf(h.Channels[0]), nil
}

// ChannelStats summarizes every channel independently.
func (h *Histogram) ChannelStats() []Stats {
	out := make([]Stats, len(h.Channels))
	for c, t := range h.Channels {
		out[c] = StatsOf(t)
	}
	return out
}

// Cumulative returns cum where cum[i] = h[0] + ... + h[i].
func Cumulative(h Table) Table {
	cum := make(Table, len(h))
	var s uint64
	for i, v := range h {
		s += v
		cum[i] = s
	}
	return cum
}

// Stats describes the multiset of brightness values a histogram represents.
type Stats struct {
	Mean   float64
	Median int
	Std    float64
	Count  uint64
}

// StatsOf computes mean, lower median, population standard deviation and count.
// An empty histogram yields zero Stats.
func StatsOf(h Table) Stats {
	count := h.Sum()
	if count == 0 {
		return Stats{}
	}

	var weighted float64
	for i, v := range h {
		weighted += float64(i) * float64(v)
	}
	mean := weighted / float64(count)

	half := (count + 1) / 2
	median := 0
	var cum uint64
	for i, v := range h {
		cum += v
		if cum >= half {
			median = i
			break
		}
	}

	var variance float64
	for i, v := range h {
		d := float64(i) - mean
		variance += d * d * float64(v)
	}
	variance /= float64(count)

	return Stats{
		Mean:   mean,
		Median: median,
		Std:    math.Sqrt(variance),
		Count:  count,
	}
}
