package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ril3y/zmatrix/internal/rcvbp"
)

var (
	flagJSON        bool
	flagRawFallback bool

	rcvbpCmd = &cobra.Command{
		Use:   "rcvbp FILE",
		Short: "decode an LEDVISION .rcvbp/.rcvp config file",
		Long: "rcvbp decodes a receiver configuration file saved by LEDVISION\n" +
			"and prints the panel parameters. With --raw-fallback a file whose\n" +
			"compressed body will not inflate is re-parsed as an uncompressed\n" +
			"body; fields decoded that way may be garbage.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := rcvbp.Decode(raw)
			if err != nil {
				if !flagRawFallback || !errors.Is(err, rcvbp.ErrBadCompression) {
					return err
				}
				log.Warn().Err(err).Msg("inflate failed, parsing as raw body")
				var body []byte
				if len(raw) > rcvbp.RawBodyOffset {
					body = raw[rcvbp.RawBodyOffset:]
				}
				cfg = rcvbp.DecodeBody(body)
				cfg.RawSize = len(raw)
			}

			if flagJSON {
				return printJSON(cfg)
			}
			printConfig(args[0], cfg)
			return nil
		},
	}
)

func init() {
	rcvbpCmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rcvbpCmd.Flags().BoolVar(&flagRawFallback, "raw-fallback", false, "on inflate failure, parse the file as an uncompressed body")
	rootCmd.AddCommand(rcvbpCmd)
}

func printJSON(cfg rcvbp.PanelConfig) error {
	out := map[string]any{
		"module_width":   cfg.ModuleWidth,
		"module_height":  cfg.ModuleHeight,
		"cabinet_width":  cfg.CabinetWidth,
		"cabinet_height": cfg.CabinetHeight,
		"scan_mode":      cfg.ScanMode,
		"scan_rate":      cfg.ScanRate(),
		"cascade":        cfg.Cascade.String(),
		"gamma":          cfg.Gamma,
		"white_balance": map[string]int{
			"r": cfg.WhiteBalanceR, "g": cfg.WhiteBalanceG, "b": cfg.WhiteBalanceB,
		},
		"color_exchange": map[string]any{
			"r": cfg.Exchange.R, "g": cfg.Exchange.G, "b": cfg.Exchange.B,
			"order": cfg.Exchange.Order(),
		},
		"brightness_percent": cfg.BrightnessPercent,
		"brightness_level":   cfg.BrightnessLevel,
		"min_oe_ns":          cfg.MinOENanos,
		"grayscale_mode":     cfg.Grayscale.String(),
		"grayscale_max":      cfg.GrayscaleMax,
		"compressed":         cfg.Compressed,
		"raw_size":           cfg.RawSize,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printConfig(path string, cfg rcvbp.PanelConfig) {
	fmt.Printf("Panel configuration: %s\n", path)
	fmt.Printf("  Compressed:    %v (%d bytes)\n", cfg.Compressed, cfg.RawSize)
	fmt.Printf("  Module:        %dx%d px\n", cfg.ModuleWidth, cfg.ModuleHeight)
	fmt.Printf("  Cabinet:       %dx%d px\n", cfg.CabinetWidth, cfg.CabinetHeight)
	fmt.Printf("  Scan rate:     %s\n", cfg.ScanRate())
	fmt.Printf("  Cascade:       %s\n", cfg.Cascade)
	fmt.Printf("  Gamma:         %.2f\n", cfg.Gamma)
	fmt.Printf("  White balance: R=%d G=%d B=%d\n", cfg.WhiteBalanceR, cfg.WhiteBalanceG, cfg.WhiteBalanceB)
	fmt.Printf("  Color order:   %s\n", cfg.Exchange.Order())
	polarity := "Normal"
	if cfg.Polarity != 0 {
		polarity = "Reversed"
	}
	fmt.Printf("  Data polarity: %s\n", polarity)
	fmt.Printf("  Brightness:    level %d/16, %d%%\n", cfg.BrightnessLevel, cfg.BrightnessPercent)
	fmt.Printf("  Min OE:        %.2f ns\n", cfg.MinOENanos)
	refinement := "off"
	if cfg.GrayscaleRefinement {
		refinement = "on"
	}
	fmt.Printf("  Grayscale:     %s, max %d, refinement %s\n", cfg.Grayscale, cfg.GrayscaleMax, refinement)
}
