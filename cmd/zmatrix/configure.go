package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ril3y/zmatrix/internal/protocol/sequence"
	"github.com/ril3y/zmatrix/internal/transport"
)

var (
	flagScanMode  int
	flagSaveFlash bool

	configureCmd = &cobra.Command{
		Use:   "configure",
		Short: "program the receiver card (no LEDVISION needed)",
		Long: "configure sends the full receiver programming sequence: control\n" +
			"area, port routing, basic parameters and volatile EEPROM. With\n" +
			"--save-flash the card additionally persists the configuration\n" +
			"across power cycles; that write is irreversible, so it is never\n" +
			"implied.",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch flagScanMode {
			case 4, 8, 16, 32:
			default:
				return fmt.Errorf("scan mode must be 4, 8, 16 or 32, got %d", flagScanMode)
			}

			tr, err := transport.OpenRaw(flagInterface)
			if err != nil {
				return err
			}
			defer tr.Close()

			w, h := dimensions()
			params := sequence.Params{
				Width:       w,
				Height:      h,
				ScanMode:    flagScanMode,
				ModuleW:     flagPanelWidth,
				ModuleH:     flagPanelHeight,
				SaveToFlash: flagSaveFlash,
			}

			log.Info().Int("width", w).Int("height", h).Int("scan", flagScanMode).Msg("configuring receiver")
			if err := sequence.New().Apply(tr, params); err != nil {
				return err
			}
			if flagSaveFlash {
				log.Info().Msg("configuration saved to flash")
			} else {
				log.Info().Msg("configuration sent (volatile, lost on power cycle)")
			}
			return nil
		},
	}

	discoverCmd = &cobra.Command{
		Use:   "discover",
		Short: "broadcast a discovery request",
		Long: "discover sends the discovery request frame. The protocol is\n" +
			"fire-and-forget; watch a packet capture for the card's reply.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := transport.OpenRaw(flagInterface)
			if err != nil {
				return err
			}
			defer tr.Close()

			pkt, err := sequence.Discovery()
			if err != nil {
				return err
			}
			if err := tr.Transmit(pkt); err != nil {
				return err
			}
			log.Info().Msg("discovery request sent")
			return nil
		},
	}
)

func init() {
	configureCmd.Flags().IntVar(&flagScanMode, "scan-mode", 16, "scan rate: 4, 8, 16 or 32")
	configureCmd.Flags().BoolVar(&flagSaveFlash, "save-flash", false, "persist config to receiver flash")
	rootCmd.AddCommand(configureCmd, discoverCmd)
}
