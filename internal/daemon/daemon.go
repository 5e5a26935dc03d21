// Package daemon runs the fixed-rate streaming loop: poll a frame source,
// keep the last frame, push it to the display at the target rate.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ril3y/zmatrix/internal/display"
	"github.com/ril3y/zmatrix/internal/source"
)

const statsInterval = 5 * time.Second

// Daemon owns one source and one display driver.
type Daemon struct {
	Driver *display.Driver
	Source source.Source
	FPS    int

	log        zerolog.Logger
	framesSent int
}

func New(drv *display.Driver, src source.Source, fps int, log zerolog.Logger) *Daemon {
	if fps <= 0 {
		fps = 60
	}
	return &Daemon{
		Driver: drv,
		Source: src,
		FPS:    fps,
		log:    log.With().Str("component", "daemon").Logger(),
	}
}

// Run streams until ctx is canceled, then blanks the display. A transport
// failure stops the loop; repeated sends to a dead interface cannot
// self-heal, so the error propagates instead of being retried.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Source.Open(); err != nil {
		return err
	}
	defer d.Source.Close()

	d.log.Info().
		Int("width", d.Driver.Width).
		Int("height", d.Driver.Height).
		Int("fps", d.FPS).
		Int("brightness", d.Driver.Brightness).
		Msg("daemon started")

	frameTime := time.Second / time.Duration(d.FPS)
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	statsTicker := time.NewTicker(statsInterval)
	defer statsTicker.Stop()

	started := time.Now()
	var lastFrame []byte

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Int("frames", d.framesSent).Msg("daemon stopping")
			if err := d.Driver.Clear(); err != nil {
				d.log.Warn().Err(err).Msg("clear on shutdown failed")
			}
			return ctx.Err()

		case <-statsTicker.C:
			elapsed := time.Since(started).Seconds()
			d.log.Info().
				Int("frames", d.framesSent).
				Float64("fps", float64(d.framesSent)/elapsed).
				Msg("stats")

		case <-ticker.C:
			buf, err := d.Source.NextFrame()
			switch {
			case err == nil:
				lastFrame = buf
			case errors.Is(err, source.ErrNoUpdate):
				// keep streaming the previous frame
			default:
				return fmt.Errorf("daemon: source: %w", err)
			}

			if lastFrame == nil {
				continue
			}
			if err := d.Driver.SendFrame(lastFrame); err != nil {
				return fmt.Errorf("daemon: %w", err)
			}
			d.framesSent++
		}
	}
}
