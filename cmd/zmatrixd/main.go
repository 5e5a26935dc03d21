package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ril3y/zmatrix/internal/daemon"
	"github.com/ril3y/zmatrix/internal/display"
	"github.com/ril3y/zmatrix/internal/logging"
	"github.com/ril3y/zmatrix/internal/transport"
)

func main() {
	configPath := flag.String("config", "zmatrixd.toml", "daemon config file")
	flag.Parse()

	log := logging.ConfigureRuntime("zmatrixd")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zmatrixd: %v\n", err)
		os.Exit(1)
	}

	tr, err := transport.OpenRaw(cfg.Interface)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zmatrixd: %v\n", err)
		os.Exit(1)
	}
	defer tr.Close()

	drv := display.New(cfg.Width, cfg.Height, cfg.ColorOrder, tr, log)
	drv.Brightness = cfg.Brightness

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := daemon.New(drv, cfg.newSource(), cfg.FPS, log)
	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("daemon exited")
		os.Exit(1)
	}
}
