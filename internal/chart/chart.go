// Package chart renders histograms as PNG line charts, one filled series per
// channel.
package chart

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MeKo-Tech/imagelab/internal/histogram"
)

// Options control the rendered chart.
type Options struct {
	Title  string
	Width  int
	Height int
}

// DefaultOptions is a 1024x512 chart without a title.
var DefaultOptions = Options{Width: 1024, Height: 512}

var channelColors = map[string]drawing.Color{
	"gray":  {R: 64, G: 64, B: 64, A: 255},
	"red":   {R: 220, G: 40, B: 40, A: 255},
	"green": {R: 40, G: 160, B: 60, A: 255},
	"blue":  {R: 40, G: 80, B: 220, A: 255},
	"alpha": {R: 150, G: 150, B: 150, A: 255},
}

// seriesFor builds the series of one channel.
func seriesFor(name string, t histogram.Table) chart.ContinuousSeries {
	xvalues := make([]float64, len(t))
	yvalues := make([]float64, len(t))
	for i, v := range t {
		xvalues[i] = float64(i)
		yvalues[i] = float64(v)
	}
	c := channelColors[name]
	return chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor: c,
			FillColor:   c.WithAlpha(64),
		},
		XValues: xvalues,
		YValues: yvalues,
	}
}

// RenderHistogram draws h and writes it to w as PNG.
func RenderHistogram(h *histogram.Histogram, opts Options, w io.Writer) error {
	if h == nil || len(h.Channels) == 0 {
		return fmt.Errorf("no histogram to render")
	}
	if h.Levels < 2 {
		return fmt.Errorf("histogram needs at least 2 levels to chart, got %d", h.Levels)
	}
	if opts.Width <= 0 {
		opts.Width = DefaultOptions.Width
	}
	if opts.Height <= 0 {
		opts.Height = DefaultOptions.Height
	}

	names := histogram.ChannelNames(len(h.Channels))
	var peak uint64
	series := make([]chart.Series, 0, len(h.Channels))
	for c, t := range h.Channels {
		series = append(series, seriesFor(names[c], t))
		if m := t.Max(); m > peak {
			peak = m
		}
	}
	if peak == 0 {
		peak = 1
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name: "Level",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(h.Levels - 1),
			},
		},
		YAxis: chart.YAxis{
			Name: "Count",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(peak),
			},
		},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render histogram chart: %w", err)
	}
	return nil
}
