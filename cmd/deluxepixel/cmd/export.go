package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ha1tch/deluxepixel/internal/editor"
	"github.com/ha1tch/deluxepixel/internal/export"
	"github.com/ha1tch/deluxepixel/internal/logger"
	"github.com/ha1tch/deluxepixel/internal/raster"
)

var (
	exportScale      int
	exportFormat     string
	exportBackground string
	exportQuality    int
)

var exportCmd = &cobra.Command{
	Use:   "export <project> <output>",
	Short: "Flatten a project into an image",
	Long: `Composite the visible layers of a project and write the result. The
format is taken from the output extension unless --format is given. Guides
are never part of the export.

Formats: png, jpeg, bmp, tiff. JPEG has no alpha channel, so the image is
flattened over --background (white by default).

Examples:
  deluxepixel export hero hero.png
  deluxepixel export hero hero.jpg --scale 8 --background "#202020"`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().IntVar(&exportScale, "scale", 1,
		"integer upscale factor (nearest neighbour)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "",
		"output format (png, jpeg, bmp, tiff)")
	exportCmd.Flags().StringVar(&exportBackground, "background", "",
		"background color for formats without alpha (#RRGGBB)")
	exportCmd.Flags().IntVar(&exportQuality, "quality", 95,
		"JPEG quality (1-100)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.L(ctx)
	key, out := args[0], args[1]

	opts := export.Options{Scale: exportScale, Quality: exportQuality}
	if exportFormat != "" {
		f, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		opts.Format = f
	}
	if exportBackground != "" {
		bg, err := raster.ParseHex(exportBackground)
		if err != nil {
			return fmt.Errorf("--background: %w", err)
		}
		opts.Background = bg.NRGBA()
	}

	s := editor.NewFromConfig(cfg, log)
	if err := s.Open(ctx, store, key); err != nil {
		return err
	}
	res, err := s.Export()
	if err != nil {
		return err
	}
	if err := export.WriteFile(out, res.Image, opts); err != nil {
		return err
	}
	b := res.Image.Bounds()
	log.Info("exported", zap.String("key", key), zap.String("path", out),
		zap.Int("width", b.Dx()*max(1, exportScale)), zap.Int("height", b.Dy()*max(1, exportScale)))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}
