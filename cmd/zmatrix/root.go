package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ril3y/zmatrix/internal/display"
	"github.com/ril3y/zmatrix/internal/logging"
	"github.com/ril3y/zmatrix/internal/protocol"
	"github.com/ril3y/zmatrix/internal/transport"
)

var (
	flagInterface   string
	flagWidth       int
	flagHeight      int
	flagPanelsX     int
	flagPanelsY     int
	flagPanelWidth  int
	flagPanelHeight int
	flagBrightness  int
	flagColorOrder  string
	flagDebug       bool

	log zerolog.Logger

	rootCmd = &cobra.Command{
		Use:   "zmatrix",
		Short: "drive ColorLight 5A-75B LED walls over raw ethernet",
		Long: "zmatrix streams pixel data to and configures ColorLight 5A-75B\n" +
			"receiver cards over a raw ethernet interface. Sending frames and\n" +
			"configuring cards needs root or CAP_NET_RAW.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				os.Setenv(logging.EnvLogLevel, "debug")
			}
			log = logging.ConfigureRuntime("zmatrix")
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "zmatrix: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagInterface, "interface", "i", "eth0", "network interface")
	pf.IntVarP(&flagWidth, "width", "W", 0, "total width in pixels (overrides panel grid)")
	pf.IntVarP(&flagHeight, "height", "H", 0, "total height in pixels (overrides panel grid)")
	pf.IntVar(&flagPanelsX, "panels-x", 5, "panels horizontally")
	pf.IntVar(&flagPanelsY, "panels-y", 4, "panels vertically")
	pf.IntVar(&flagPanelWidth, "panel-width", 64, "single panel width")
	pf.IntVar(&flagPanelHeight, "panel-height", 32, "single panel height")
	pf.IntVarP(&flagBrightness, "brightness", "b", 128, "brightness 0-255")
	pf.StringVarP(&flagColorOrder, "color-order", "c", "BGR", "panel color order (RGB, RBG, GRB, GBR, BRG, BGR)")
	pf.BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
}

func dimensions() (int, int) {
	if flagWidth > 0 && flagHeight > 0 {
		return flagWidth, flagHeight
	}
	return flagPanelsX * flagPanelWidth, flagPanelsY * flagPanelHeight
}

// openDriver binds the raw socket and builds a display driver from the
// shared flags. The returned closer must run before exit.
func openDriver() (*display.Driver, func(), error) {
	order, err := protocol.ParseColorOrder(flagColorOrder)
	if err != nil {
		return nil, nil, err
	}
	tr, err := transport.OpenRaw(flagInterface)
	if err != nil {
		return nil, nil, err
	}
	w, h := dimensions()
	drv := display.New(w, h, order, tr, log)
	drv.Brightness = flagBrightness
	return drv, func() { tr.Close() }, nil
}
