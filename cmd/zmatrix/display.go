package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ril3y/zmatrix/internal/imaging"
)

var (
	flagFit      string
	flagVertical bool

	testCmd = &cobra.Command{
		Use:   "test",
		Short: "show the color bar test pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			drv, done, err := openDriver()
			if err != nil {
				return err
			}
			defer done()
			return drv.SendFrame(imaging.TestBars(drv.Width, drv.Height))
		},
	}

	colorCmd = &cobra.Command{
		Use:   "color R,G,B",
		Short: "fill the display with a solid color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseColor(args[0])
			if err != nil {
				return err
			}
			drv, done, err := openDriver()
			if err != nil {
				return err
			}
			defer done()
			return drv.Fill(c.R, c.G, c.B)
		},
	}

	imageCmd = &cobra.Command{
		Use:   "image PATH",
		Short: "display an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drv, done, err := openDriver()
			if err != nil {
				return err
			}
			defer done()
			buf, err := imaging.Load(args[0], drv.Width, drv.Height, imaging.Fit(flagFit))
			if err != nil {
				return err
			}
			return drv.SendFrame(buf)
		},
	}

	gradientCmd = &cobra.Command{
		Use:   "gradient FROM TO",
		Short: "display a two-color gradient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseColor(args[0])
			if err != nil {
				return err
			}
			to, err := parseColor(args[1])
			if err != nil {
				return err
			}
			drv, done, err := openDriver()
			if err != nil {
				return err
			}
			defer done()
			return drv.SendFrame(imaging.Gradient(drv.Width, drv.Height, from, to, !flagVertical))
		},
	}

	brightnessCmd = &cobra.Command{
		Use:   "brightness",
		Short: "push the brightness setting without changing pixels",
		RunE: func(cmd *cobra.Command, args []string) error {
			drv, done, err := openDriver()
			if err != nil {
				return err
			}
			defer done()
			drv.RGB = [3]int{flagBrightness, flagBrightness, flagBrightness}
			return drv.SendBrightness()
		},
	}

	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "print the display configuration (no root needed)",
		Run: func(cmd *cobra.Command, args []string) {
			w, h := dimensions()
			fmt.Printf("Resolution:   %d x %d pixels\n", w, h)
			fmt.Printf("Panel grid:   %d x %d of %dx%d\n", flagPanelsX, flagPanelsY, flagPanelWidth, flagPanelHeight)
			fmt.Printf("Total pixels: %d\n", w*h)
			fmt.Printf("Frame size:   %d bytes (RGB)\n", w*h*3)
			fmt.Printf("Bandwidth:    %.1f MB/s @ 60fps\n", float64(w*h*3*60)/1e6)
			fmt.Printf("Interface:    %s\n", flagInterface)
			fmt.Printf("Color order:  %s\n", strings.ToUpper(flagColorOrder))
		},
	}
)

func init() {
	imageCmd.Flags().StringVar(&flagFit, "fit", "fill", "image fit mode: fill, fit, crop")
	gradientCmd.Flags().BoolVar(&flagVertical, "vertical", false, "blend top to bottom instead of left to right")
	rootCmd.AddCommand(testCmd, colorCmd, imageCmd, gradientCmd, brightnessCmd, infoCmd)
}

func parseColor(s string) (imaging.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return imaging.Color{}, fmt.Errorf("color must be R,G,B (e.g. 255,0,0), got %q", s)
	}
	var ch [3]byte
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return imaging.Color{}, fmt.Errorf("color channel %q out of range 0-255", p)
		}
		ch[i] = byte(v)
	}
	return imaging.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}
