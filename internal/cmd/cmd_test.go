package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/imagelab/internal/histogram"
	"github.com/MeKo-Tech/imagelab/internal/imageio"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

func TestPointLUT(t *testing.T) {
	params := pointParams{Target: 4, Threshold: 100, Low: 10, High: 200}
	tests := []struct {
		op      string
		at      int
		want    uint8
		wantErr bool
	}{
		{op: "negate", at: 0, want: 255},
		{op: "NEGATION", at: 255, want: 0},
		{op: "requantize", at: 0, want: 32},
		{op: "posterize", at: 255, want: 255},
		{op: "threshold", at: 99, want: 0},
		{op: "threshold", at: 100, want: 255},
		{op: "threshold-keep", at: 50, want: 10},
		{op: "threshold-keep", at: 150, want: 200},
		{op: "threshold-zero", at: 100, want: 0},
		{op: "threshold-zero", at: 101, want: 101},
		{op: "solarize", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			lut, err := pointLUT(tt.op, 256, params)
			if tt.wantErr {
				assert.ErrorIs(t, err, raster.ErrUnknownOperation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, lut[tt.at])
		})
	}
}

func TestWriteHistogram(t *testing.T) {
	img, err := raster.FromSamples(raster.Shape{Height: 2, Width: 3, Channels: 1}, []uint8{0, 1, 1, 2, 2, 2})
	require.NoError(t, err)
	h, err := histogram.Compute(img, 256)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeHistogram(&buf, h, false, false))
	out := buf.String()
	assert.Contains(t, out, "count=6 mean=1.333 median=1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// stats line, header, three occupied levels
	assert.Len(t, lines, 5)

	buf.Reset()
	require.NoError(t, writeHistogram(&buf, h, true, false))
	last := strings.Fields(lines[len(lines)-1])
	assert.Equal(t, []string{"2", "3"}, last)
	cum := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"2", "6"}, strings.Fields(cum[len(cum)-1]))
}

func TestWriteKernels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeKernels(&buf, true))
	out := buf.String()
	for _, want := range []string{"smoothing:", "sobel-x", "prewitt-nw", "gaussian-5x5", "[-1 0 1]"} {
		assert.Contains(t, out, want)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	grad := filepath.Join(dir, "grad.png")
	neg := filepath.Join(dir, "neg.bmp")
	edges := filepath.Join(dir, "edges.png")
	chartPath := filepath.Join(dir, "hist.png")

	_, err := run(t, "pattern", grad, "--kind", "gradient", "--width", "64", "--height", "8")
	require.NoError(t, err)

	_, err = run(t, "point", grad, neg, "--op", "negate")
	require.NoError(t, err)
	img, err := imageio.Load(neg)
	require.NoError(t, err)
	assert.Equal(t, raster.Mono, img.Kind())
	assert.Equal(t, uint8(255), img.At(0, 0, 0))
	assert.Equal(t, uint8(0), img.At(0, 63, 0))

	out, err := run(t, "histogram", neg, "--chart", chartPath)
	require.NoError(t, err)
	assert.Contains(t, out, "gray")
	info, err := os.Stat(chartPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	_, err = run(t, "canny", grad, edges, "--low", "10", "--high", "20")
	require.NoError(t, err)

	_, err = run(t, "logic", grad, filepath.Join(dir, "and.png"), "--op", "and")
	assert.ErrorIs(t, err, raster.ErrMissingOperand)

	_, err = run(t, "filter", grad, filepath.Join(dir, "f.gif"), "--kernel", "box-3x3")
	assert.ErrorIs(t, err, imageio.ErrUnsupportedFormat)
}
