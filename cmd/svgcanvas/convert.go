package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/khankhulgun/svgcanvas/config"
	"github.com/khankhulgun/svgcanvas/models"
	"github.com/khankhulgun/svgcanvas/presets"
	"github.com/khankhulgun/svgcanvas/raster"
	"github.com/spf13/cobra"
)

func getConvertCommand() *cobra.Command {
	defaults := config.Default().Canvas
	var (
		preset     string
		width      int
		height     int
		background string
		color      string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "convert <file.svg>",
		Short: "Render an SVG file to a PNG",
		Long: `Render an SVG file onto a canvas and write <name>-<width>x<height>.png.

The artwork is centred and scaled to 80% of the canvas along its limiting
axis. --color replaces every fill and stroke attribute value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			in := args[0]
			if !strings.EqualFold(filepath.Ext(in), ".svg") {
				return fmt.Errorf("%w: %s is not an .svg file", raster.ErrInvalidInput, in)
			}
			markup, err := os.ReadFile(in)
			if err != nil {
				return err
			}

			w, h, err := presets.Resolve(c.Context(), presets.Builtin, preset, width, height)
			if err != nil {
				return err
			}

			result, err := raster.Rasterize(c.Context(), models.ConversionRequest{
				SVGMarkup:       string(markup),
				TargetWidth:     w,
				TargetHeight:    h,
				BackgroundColor: background,
				Recolor:         raster.RecolorOverride(color),
				SourceName:      filepath.Base(in),
			})
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = filepath.Dir(in)
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
			out := filepath.Join(outDir, result.Filename)
			if err := os.WriteFile(out, result.PNG, 0644); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", presets.Custom, "Format preset name, or custom to use --width/--height")
	cmd.Flags().IntVar(&width, "width", defaults.DefaultWidth, "Canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", defaults.DefaultHeight, "Canvas height in pixels")
	cmd.Flags().StringVar(&background, "background", defaults.DefaultBackground, "Background colour")
	cmd.Flags().StringVar(&color, "color", raster.DefaultRecolor, "Fill and stroke colour; the default leaves the artwork unchanged")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory (defaults to the input's directory)")
	return cmd
}
