package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/imagelab/internal/imageio"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

var logger *slog.Logger

// initLogging sets up the text logger on stderr; --verbose enables debug output.
func initLogging() {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

type flagBinding struct {
	key  string
	flag string
}

// bindFlags binds each flag to its viper key. A missing flag is a programming error.
func bindFlags(flags *pflag.FlagSet, bindings []flagBinding) {
	for _, bf := range bindings {
		if err := viper.BindPFlag(bf.key, flags.Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func levels() int {
	return viper.GetInt("levels")
}

func loadImage(path string) (*raster.Image, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded image", "path", path, "shape", img.Shape().String(), "kind", img.Kind().String())
	return img, nil
}

func saveImage(path string, img *raster.Image) error {
	opts := imageio.Options{JPEGQuality: viper.GetInt("jpeg_quality")}
	if err := imageio.Save(path, img, opts); err != nil {
		return err
	}
	logger.Info("Wrote image", "path", path, "shape", img.Shape().String())
	return nil
}

// transform loads in, applies fn and writes the result to out.
func transform(in, out string, fn func(*raster.Image) (*raster.Image, error)) error {
	if logger == nil {
		initLogging()
	}
	img, err := loadImage(in)
	if err != nil {
		return err
	}
	res, err := fn(img)
	if err != nil {
		return err
	}
	return saveImage(out, res)
}
