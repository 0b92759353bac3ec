package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/imagelab/internal/histogram"
	"github.com/MeKo-Tech/imagelab/internal/pattern"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

func TestRenderHistogramMono(t *testing.T) {
	h, err := histogram.Compute(pattern.Gradient(64, 4), histogram.DefaultLevels)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHistogram(h, Options{Title: "gradient", Width: 400, Height: 200}, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderHistogramChannels(t *testing.T) {
	img, err := raster.NewMulti(8, 8, 3)
	require.NoError(t, err)
	for i := range img.Pix() {
		img.Pix()[i] = uint8(i * 5)
	}
	h, err := histogram.Compute(img, histogram.DefaultLevels)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHistogram(h, Options{}, &buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions.Width, decoded.Bounds().Dx())
}

func TestRenderHistogramEmptyCounts(t *testing.T) {
	h := &histogram.Histogram{Levels: 256, Channels: []histogram.Table{make(histogram.Table, 256)}}
	var buf bytes.Buffer
	require.NoError(t, RenderHistogram(h, DefaultOptions, &buf))
	assert.NotZero(t, buf.Len())
}

func TestRenderHistogramRejectsDegenerate(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderHistogram(nil, DefaultOptions, &buf))
	assert.Error(t, RenderHistogram(&histogram.Histogram{Levels: 1, Channels: []histogram.Table{{5}}}, DefaultOptions, &buf))
}
