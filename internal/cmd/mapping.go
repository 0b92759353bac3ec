package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/imagelab/internal/mapping"
	"github.com/MeKo-Tech/imagelab/internal/pointops"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

var stretchCmd = &cobra.Command{
	Use:   "stretch IN OUT",
	Short: "Linear contrast stretch, optionally discarding the histogram tails",
	Long: `Stretch every channel so its occupied range spans the full level range.
With --clip (default 0.05) that share of pixels is ignored, half at each end.`,
	Args: cobra.ExactArgs(2),
	RunE: runStretch,
}

var equalizeCmd = &cobra.Command{
	Use:   "equalize IN OUT",
	Short: "Selective histogram equalization of every channel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transform(args[0], args[1], mapping.EqualizeImage)
	},
}

var pointCmd = &cobra.Command{
	Use:   "point IN OUT",
	Short: "Apply a point operation lookup table",
	Long: `Apply one of the point operations to every channel:

  negate          invert brightness
  requantize      reduce to --target levels (bucket centers)
  posterize       reduce to --target evenly spaced levels including black and white
  threshold       black below --threshold, white from it
  threshold-keep  --low below --threshold, --high from it
  threshold-zero  keep levels above --threshold, black out the rest`,
	Args: cobra.ExactArgs(2),
	RunE: runPoint,
}

func init() {
	rootCmd.AddCommand(stretchCmd, equalizeCmd, pointCmd)

	stretchCmd.Flags().Float64("clip", mapping.DefaultClipFraction, "Fraction of pixels to discard, split between both tails")
	stretchCmd.Flags().Bool("no-clip", false, "Stretch between the darkest and brightest occupied levels")
	bindFlags(stretchCmd.Flags(), []flagBinding{
		{"stretch.clip", "clip"},
		{"stretch.no_clip", "no-clip"},
	})

	pointCmd.Flags().String("op", "negate", "Operation: negate, requantize, posterize, threshold, threshold-keep, threshold-zero")
	pointCmd.Flags().Int("target", 4, "Number of output levels for requantize and posterize")
	pointCmd.Flags().Int("threshold", 128, "Threshold level")
	pointCmd.Flags().Int("low", 0, "Level below the threshold for threshold-keep")
	pointCmd.Flags().Int("high", 255, "Level from the threshold on for threshold-keep")
	bindFlags(pointCmd.Flags(), []flagBinding{
		{"point.op", "op"},
		{"point.target", "target"},
		{"point.threshold", "threshold"},
		{"point.low", "low"},
		{"point.high", "high"},
	})
}

func runStretch(cmd *cobra.Command, args []string) error {
	var clip *float64
	if !viper.GetBool("stretch.no_clip") {
		f := viper.GetFloat64("stretch.clip")
		clip = &f
	}
	return transform(args[0], args[1], func(img *raster.Image) (*raster.Image, error) {
		return mapping.StretchImage(img, clip)
	})
}

type pointParams struct {
	Target    int
	Threshold int
	Low       int
	High      int
}

// pointLUT builds the lookup table of a named point operation.
func pointLUT(op string, levels int, p pointParams) (mapping.LUT, error) {
	switch strings.ToLower(op) {
	case "negate", "negation":
		return pointops.Negation(levels)
	case "requantize", "requantization":
		return pointops.Requantization(levels, p.Target)
	case "posterize":
		return pointops.Posterize(levels, p.Target)
	case "threshold", "binary":
		return pointops.ThresholdBinary(p.Threshold, levels)
	case "threshold-keep", "keep":
		return pointops.ThresholdKeepLevels(p.Threshold, p.Low, p.High, levels)
	case "threshold-zero", "tozero":
		return pointops.ThresholdToZero(p.Threshold, levels)
	}
	return nil, fmt.Errorf("%w: point operation %q", raster.ErrUnknownOperation, op)
}

func runPoint(cmd *cobra.Command, args []string) error {
	op := viper.GetString("point.op")
	lut, err := pointLUT(op, levels(), pointParams{
		Target:    viper.GetInt("point.target"),
		Threshold: viper.GetInt("point.threshold"),
		Low:       viper.GetInt("point.low"),
		High:      viper.GetInt("point.high"),
	})
	if err != nil {
		return err
	}
	return transform(args[0], args[1], func(img *raster.Image) (*raster.Image, error) {
		logger.Debug("Applying point operation", "op", op, "levels", len(lut))
		return mapping.Apply(img, lut)
	})
}
