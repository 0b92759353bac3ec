package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/imagelab/internal/filter"
	"github.com/MeKo-Tech/imagelab/internal/kernel"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

var filterCmd = &cobra.Command{
	Use:   "filter IN OUT",
	Short: "Convolve with a preset kernel or sharpen with it",
	Long: `Correlate every channel with a preset kernel (see "imagelab kernels").

--mode linear    writes the clipped filter response
--mode sharpen   adds the edge response back onto the image

--border chooses how pixels near the edge are handled:
  default    replicate the outermost row and column
  overwrite  filter with replicated edges, then paint a frame of --border-value
  constant   pad with --border-value before filtering`,
	Args: cobra.ExactArgs(2),
	RunE: runFilter,
}

var medianCmd = &cobra.Command{
	Use:   "median IN OUT",
	Short: "Median filter over a square window",
	Args:  cobra.ExactArgs(2),
	RunE:  runMedian,
}

var cannyCmd = &cobra.Command{
	Use:   "canny IN OUT",
	Short: "Canny edge detection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCanny,
}

var kernelsCmd = &cobra.Command{
	Use:   "kernels",
	Short: "List the preset kernels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeKernels(cmd.OutOrStdout(), viper.GetBool("kernels.weights"))
	},
}

func init() {
	rootCmd.AddCommand(filterCmd, medianCmd, cannyCmd, kernelsCmd)

	filterCmd.Flags().String("kernel", "box-3x3", "Preset kernel name")
	filterCmd.Flags().String("mode", "linear", "Filter mode: linear or sharpen")
	filterCmd.Flags().String("border", "default", "Border policy: default, overwrite, constant")
	filterCmd.Flags().Uint8("border-value", 0, "Value for the overwrite and constant border policies")
	bindFlags(filterCmd.Flags(), []flagBinding{
		{"filter.kernel", "kernel"},
		{"filter.mode", "mode"},
		{"filter.border", "border"},
		{"filter.border_value", "border-value"},
	})

	medianCmd.Flags().Int("size", 3, "Window size (odd)")
	medianCmd.Flags().String("border", "default", "Border policy: default, overwrite, constant")
	medianCmd.Flags().Uint8("border-value", 0, "Value for the overwrite and constant border policies")
	bindFlags(medianCmd.Flags(), []flagBinding{
		{"median.size", "size"},
		{"median.border", "border"},
		{"median.border_value", "border-value"},
	})

	cannyCmd.Flags().Float64("low", 50, "Lower hysteresis threshold")
	cannyCmd.Flags().Float64("high", 150, "Upper hysteresis threshold")
	bindFlags(cannyCmd.Flags(), []flagBinding{
		{"canny.low", "low"},
		{"canny.high", "high"},
	})

	kernelsCmd.Flags().Bool("weights", false, "Print the kernel weights")
	bindFlags(kernelsCmd.Flags(), []flagBinding{
		{"kernels.weights", "weights"},
	})
}

func borderFromConfig(section string) (filter.Border, error) {
	mode, err := filter.ParseBorderMode(viper.GetString(section + ".border"))
	if err != nil {
		return filter.Border{}, err
	}
	v := viper.GetInt(section + ".border_value")
	if v < 0 || v > 255 {
		return filter.Border{}, fmt.Errorf("%w: border value %d outside [0, 255]", raster.ErrInvalidArgument, v)
	}
	return filter.Border{Mode: mode, Value: uint8(v)}, nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	name := viper.GetString("filter.kernel")
	k, err := kernel.Lookup(name)
	if err != nil {
		return err
	}
	border, err := borderFromConfig("filter")
	if err != nil {
		return err
	}

	var apply func(*raster.Image, kernel.Kernel, filter.Border) (*raster.Image, error)
	switch mode := strings.ToLower(viper.GetString("filter.mode")); mode {
	case "linear":
		apply = filter.Linear
	case "sharpen":
		apply = filter.Sharpen
	default:
		return fmt.Errorf("%w: filter mode %q", raster.ErrUnknownOperation, mode)
	}

	return transform(args[0], args[1], func(img *raster.Image) (*raster.Image, error) {
		logger.Debug("Filtering", "kernel", name, "border", border.Mode.String(), "border_value", border.Value)
		return apply(img, k, border)
	})
}

func runMedian(cmd *cobra.Command, args []string) error {
	border, err := borderFromConfig("median")
	if err != nil {
		return err
	}
	size := viper.GetInt("median.size")
	return transform(args[0], args[1], func(img *raster.Image) (*raster.Image, error) {
		return filter.Median(img, size, border)
	})
}

func runCanny(cmd *cobra.Command, args []string) error {
	low, high := viper.GetFloat64("canny.low"), viper.GetFloat64("canny.high")
	return transform(args[0], args[1], func(img *raster.Image) (*raster.Image, error) {
		return filter.Canny(img, low, high)
	})
}

func writeKernels(w io.Writer, weights bool) error {
	for _, cat := range kernel.Categories() {
		if _, err := fmt.Fprintf(w, "%s:\n", cat); err != nil {
			return err
		}
		for _, p := range kernel.Category(cat) {
			fmt.Fprintf(w, "  %-14s %dx%d\n", p.Name, p.Kernel.Size(), p.Kernel.Size())
			if weights {
				for _, line := range strings.Split(strings.TrimSpace(p.Kernel.String()), "\n") {
					fmt.Fprintf(w, "    %s\n", line)
				}
			}
		}
	}
	return nil
}
