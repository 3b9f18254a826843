// thinlens - Terminal Thin-Lens Optics Simulator
// Trace the principal rays of a converging or diverging lens in your terminal.
//
// Controls:
//
//	Click (left half)  - Move the object tip to the pointer
//	Tab                - Next form field
//	0-9, -             - Edit the focused field
//	Enter              - Apply the edited value
//	Up/Down            - Nudge the focused field by 10
//	C / D              - Converging / diverging lens
//	Space              - Toggle lens kind
//	R                  - Reset to the starting values
//	S                  - Save a PNG snapshot to the current directory
//	P                  - Save the terminal framebuffer as PNG
//	?                  - Toggle key help
//	Esc                - Cancel edit (or quit)
//	Q, Ctrl-C          - Quit
package main

import (
	"context"
	"fmt"
	"os"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/thinlens/internal/config"
	"github.com/taigrr/thinlens/pkg/optics"
	"github.com/taigrr/thinlens/pkg/render"
	"github.com/taigrr/thinlens/pkg/scene"
)

var version = "dev"

var flags config.Flags

func main() {
	cmd := &cobra.Command{
		Use:   "thinlens",
		Short: "Terminal Thin-Lens Optics Simulator",
		Long: `thinlens - Terminal Thin-Lens Optics Simulator

Trace the parallel, vertex and focal rays of a thin lens and watch the image
form as you move the object.

Controls:
  Click       - Move the object (left half of the screen)
  Tab         - Next field
  0-9, -      - Edit field, Enter to apply
  Up/Down     - Nudge field by 10
  C/D, Space  - Converging / diverging lens
  R           - Reset
  S           - Save PNG snapshot
  P           - Save screen grab
  ?           - Toggle help
  Q, Esc      - Quit`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			flags.HeightSet = cmd.Flags().Changed("height")
			if flags.Debug {
				log.SetLogLevel(log.Debug)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.Float64Var(&flags.ObjectDistance, "distance", 0, "Object distance (1-2000)")
	pf.Float64Var(&flags.ObjectHeight, "height", 0, "Object height (-1000-1000)")
	pf.Float64Var(&flags.FocalLength, "focal", 0, "Focal length (200-800)")
	pf.StringVar(&flags.Lens, "lens", "", "Lens kind: converging or diverging")
	pf.StringVar(&flags.Palette, "palette", "", "Color palette: auto, light or dark")
	pf.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	cmd.Flags().Float64Var(&flags.ViewWidth, "view-width", 0, "Scene units across the terminal")
	cmd.Flags().Float64Var(&flags.FPS, "fps", 0, "Input polling rate")

	cmd.AddCommand(newComputeCmd(), newSnapshotCmd())

	if err := fang.Execute(context.Background(), cmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Resolve(flags)
	if cfg.Debug {
		log.SetLogLevel(log.Debug)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("config: %+v", *cfg)
	return cfg, nil
}

func newComputeCmd() *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Print the image formed by the lens",
		Long:  "Clamp the inputs, solve the thin-lens equation and print the image distance, height and magnification.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			obj := cfg.Object().Clamp()
			lens := cfg.LensParameters().Clamp()
			img := optics.ComputeImage(obj, lens)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Lens:            %s, f = %.0f\n", lens.Kind, lens.FocalLength)
			fmt.Fprintf(out, "Object:          d = %.0f, h = %.0f\n", obj.Distance, obj.Height)
			if exact {
				fmt.Fprintf(out, "Image distance:  %g\n", img.Distance)
				fmt.Fprintf(out, "Image height:    %g\n", img.Height)
			} else {
				d, h := img.Rounded()
				fmt.Fprintf(out, "Image distance:  %s\n", d)
				fmt.Fprintf(out, "Image height:    %s\n", h)
			}
			fmt.Fprintf(out, "Image:           %s\n", describeImage(obj, img))
			return nil
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "Print unrounded values")
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	var (
		width, height, controls, scale float64
	)
	cmd := &cobra.Command{
		Use:   "snapshot <out.png|out.webp>",
		Short: "Render the ray diagram to an image file",
		Long:  "Render the ray diagram headlessly at the given scene size and write it as PNG or lossless WebP.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if width <= 0 || height <= 0 || scale <= 0 {
				return fmt.Errorf("invalid snapshot size %gx%g at scale %g", width, height, scale)
			}
			palette, ok := render.PaletteByName(cfg.Palette, render.ColorWhite)
			if !ok {
				return fmt.Errorf("unknown palette %q (use auto, light or dark)", cfg.Palette)
			}
			obj := cfg.Object().Clamp()
			lens := cfg.LensParameters().Clamp()
			img := optics.ComputeImage(obj, lens)
			s := scene.Build(obj, lens, img, scene.NewViewport(width, height, controls))

			out := render.Snapshot(s, palette, scale, cfg.Supersample)
			if err := render.SaveImage(args[0], out); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			log.Infof("Wrote %s (%dx%d, %d ray segments, %d extensions)", args[0], out.Bounds().Dx(), out.Bounds().Dy(),
				len(s.Rays()), len(s.Extensions()))
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "canvas-width", 1600, "Scene width in units")
	cmd.Flags().Float64Var(&height, "canvas-height", 900, "Scene height in units")
	cmd.Flags().Float64Var(&controls, "controls", 0, "Units reserved above the scene")
	cmd.Flags().Float64Var(&scale, "scale", 1, "Output pixels per scene unit")
	cmd.Flags().IntVar(&flags.Supersample, "supersample", 0, "Supersampling factor (1-8)")
	return cmd
}

// describeImage summarizes the image the way a textbook would.
func describeImage(obj optics.ObjectSpec, img optics.ImageResult) string {
	switch {
	case img.AtInfinity():
		return "at infinity (object at the focal point)"
	case !img.Finite():
		return "undefined"
	}
	kind := "virtual"
	if img.Real() {
		kind = "real"
	}
	orientation := "upright"
	if img.Inverted(obj) {
		orientation = "inverted"
	}
	return fmt.Sprintf("%s, %s, magnification %.2f", kind, orientation, img.Magnification(obj))
}
