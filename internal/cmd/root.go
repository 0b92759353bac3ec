package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/imagelab/internal/histogram"
	"github.com/MeKo-Tech/imagelab/internal/imageio"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "imagelab",
	Short: "Histogram, point and neighborhood operations on images",
	Long: `imagelab applies classic image processing operations to a single image.

It computes histograms, derives and applies lookup tables (linear stretch,
equalization, negation, requantization, thresholds), combines images
arithmetically and bitwise, and runs convolution, median and Canny filters.
Supported formats: BMP, PNG, JPEG and TIFF.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Int("levels", histogram.DefaultLevels, "Number of brightness levels for histograms and lookup tables")
	rootCmd.PersistentFlags().Int("jpeg-quality", imageio.DefaultJPEGQuality, "Quality (1-100) for JPEG output")

	bindFlags(rootCmd.PersistentFlags(), []flagBinding{
		{"verbose", "verbose"},
		{"levels", "levels"},
		{"jpeg_quality", "jpeg-quality"},
	})
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("IMAGELAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
