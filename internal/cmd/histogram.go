package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/imagelab/internal/chart"
	"github.com/MeKo-Tech/imagelab/internal/histogram"
)

var histogramCmd = &cobra.Command{
	Use:   "histogram IN",
	Short: "Print the histogram and statistics of an image",
	Long: `Print per-channel statistics (count, mean, median, standard deviation) and a
table of every occupied level. Optionally render the histogram as a PNG chart.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistogram,
}

func init() {
	rootCmd.AddCommand(histogramCmd)

	histogramCmd.Flags().Bool("cumulative", false, "Print and chart cumulative counts")
	histogramCmd.Flags().String("chart", "", "Write a histogram chart to this PNG file")
	histogramCmd.Flags().Bool("all-levels", false, "List empty levels too")

	bindFlags(histogramCmd.Flags(), []flagBinding{
		{"histogram.cumulative", "cumulative"},
		{"histogram.chart", "chart"},
		{"histogram.all_levels", "all-levels"},
	})
}

func runHistogram(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}
	cumulative := viper.GetBool("histogram.cumulative")
	chartPath := viper.GetString("histogram.chart")
	allLevels := viper.GetBool("histogram.all_levels")

	img, err := loadImage(args[0])
	if err != nil {
		return err
	}
	h, err := histogram.Compute(img, levels())
	if err != nil {
		return err
	}

	if err := writeHistogram(cmd.OutOrStdout(), h, cumulative, allLevels); err != nil {
		return err
	}

	if chartPath == "" {
		return nil
	}
	shown := h
	if cumulative {
		shown = h.Cumulative()
	}
	f, err := os.Create(chartPath)
	if err != nil {
		return fmt.Errorf("failed to create chart %s: %w", chartPath, err)
	}
	defer f.Close()

	opts := chart.DefaultOptions
	opts.Title = filepath.Base(args[0])
	if err := chart.RenderHistogram(shown, opts, f); err != nil {
		return err
	}
	logger.Info("Wrote histogram chart", "path", chartPath, "channels", len(h.Channels))
	return nil
}

// writeHistogram prints per-channel stats followed by a level/count table with
// one column per channel.
func writeHistogram(w io.Writer, h *histogram.Histogram, cumulative, allLevels bool) error {
	names := histogram.ChannelNames(len(h.Channels))
	for c, s := range h.ChannelStats() {
		if _, err := fmt.Fprintf(w, "%-5s count=%d mean=%.3f median=%d std=%.3f peak=%d\n",
			names[c], s.Count, s.Mean, s.Median, s.Std, h.Max(c)); err != nil {
			return err
		}
	}

	table := h
	if cumulative {
		table = h.Cumulative()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "level\t%s\t\n", strings.Join(names, "\t"))
	for i := 0; i < h.Levels; i++ {
		occupied := false
		for _, t := range h.Channels {
			if t[i] > 0 {
				occupied = true
				break
			}
		}
		if !occupied && !allLevels {
			continue
		}
		fmt.Fprintf(tw, "%d", i)
		for _, t := range table.Channels {
			fmt.Fprintf(tw, "\t%d", t[i])
		}
		fmt.Fprint(tw, "\t\n")
	}
	return tw.Flush()
}
