package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/imagelab/internal/arith"
	"github.com/MeKo-Tech/imagelab/internal/logic"
	"github.com/MeKo-Tech/imagelab/internal/raster"
)

var addCmd = &cobra.Command{
	Use:   "add OUT IN...",
	Short: "Add images of equal shape, saturating or averaging",
	Long: `Add two or more images sample by sample. With --saturate the sum is clipped at
255; without it the images are averaged.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

var scalarCmd = &cobra.Command{
	Use:   "scalar IN OUT",
	Short: "Add, multiply or divide every sample by a constant",
	Args:  cobra.ExactArgs(2),
	RunE:  runScalar,
}

var diffCmd = &cobra.Command{
	Use:   "diff A B OUT",
	Short: "Absolute difference of two images",
	Args:  cobra.ExactArgs(3),
	RunE:  runDiff,
}

var logicCmd = &cobra.Command{
	Use:   "logic IN OUT",
	Short: "Bitwise not, and, or, xor",
	Long: `Combine images bit by bit. "not" needs only IN; the other operations take the
second image from --with. With --mask both inputs are first reduced to 0/1
masks and the result is written as a 0/255 mask.`,
	Args: cobra.ExactArgs(2),
	RunE: runLogic,
}

func init() {
	rootCmd.AddCommand(addCmd, scalarCmd, diffCmd, logicCmd)

	addCmd.Flags().Bool("saturate", true, "Clip sums at 255 instead of averaging")
	bindFlags(addCmd.Flags(), []flagBinding{
		{"add.saturate", "saturate"},
	})

	scalarCmd.Flags().String("op", "addition", "Operation: addition, multiplication, division")
	scalarCmd.Flags().Float64("value", 0, "Constant operand")
	scalarCmd.Flags().Bool("saturate", true, "Saturating arithmetic (see the legacy non-saturating variants)")
	bindFlags(scalarCmd.Flags(), []flagBinding{
		{"scalar.op", "op"},
		{"scalar.value", "value"},
		{"scalar.saturate", "saturate"},
	})

	logicCmd.Flags().String("op", "not", "Operation: not, and, or, xor")
	logicCmd.Flags().String("with", "", "Second operand image for and, or, xor")
	logicCmd.Flags().Bool("mask", false, "Operate on 0/1 masks and write a 0/255 mask")
	bindFlags(logicCmd.Flags(), []flagBinding{
		{"logic.op", "op"},
		{"logic.with", "with"},
		{"logic.mask", "mask"},
	})
}

func loadAll(paths []string) ([]*raster.Image, error) {
	images := make([]*raster.Image, 0, len(paths))
	for _, p := range paths {
		img, err := loadImage(p)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}
	saturate := viper.GetBool("add.saturate")

	images, err := loadAll(args[1:])
	if err != nil {
		return err
	}
	res, err := arith.AddImages(images, saturate)
	if err != nil {
		return err
	}
	logger.Info("Added images", "count", len(images), "saturate", saturate)
	return saveImage(args[0], res)
}

func runScalar(cmd *cobra.Command, args []string) error {
	op, err := arith.ParseScalarOp(viper.GetString("scalar.op"))
	if err != nil {
		return err
	}
	value := viper.GetFloat64("scalar.value")
	saturate := viper.GetBool("scalar.saturate")
	return transform(args[0], args[1], func(img *raster.Image) (*raster.Image, error) {
		logger.Debug("Scalar operation", "op", op.String(), "value", value, "saturate", saturate)
		return arith.Scalar(img, value, op, saturate)
	})
}

func runDiff(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}
	images, err := loadAll(args[:2])
	if err != nil {
		return err
	}
	res, err := arith.AbsDiff(images[0], images[1])
	if err != nil {
		return err
	}
	return saveImage(args[2], res)
}

func runLogic(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}
	op, err := logic.ParseOp(viper.GetString("logic.op"))
	if err != nil {
		return err
	}
	asMask := viper.GetBool("logic.mask")

	a, err := loadImage(args[0])
	if err != nil {
		return err
	}
	var b *raster.Image
	if with := viper.GetString("logic.with"); with != "" && op.Binary() {
		if b, err = loadImage(with); err != nil {
			return err
		}
	}

	if asMask {
		a = logic.ToBinaryMask(a)
		if b != nil {
			b = logic.ToBinaryMask(b)
		}
	}
	res, err := logic.Logical(a, b, op)
	if err != nil {
		return err
	}
	if asMask {
		// complementing a 0/1 mask sets the high bits too; keep only bit 0
		if op == logic.Not {
			res, err = logic.Logical(res, maskOnes(res), logic.And)
			if err != nil {
				return err
			}
		}
		res = logic.ToDisplayMask(res)
	}
	return saveImage(args[1], res)
}

// maskOnes returns an image of the same shape filled with 1.
func maskOnes(like *raster.Image) *raster.Image {
	out := raster.Like(like)
	for i := range out.Pix() {
		out.Pix()[i] = 1
	}
	return out
}
