// Package display streams frame buffers to a receiver card. It owns the
// per-row remap, the MTU split and the refresh trigger; byte layouts live
// in protocol/frame and the wire in transport.
package display

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ril3y/zmatrix/internal/protocol"
	"github.com/ril3y/zmatrix/internal/protocol/frame"
	"github.com/ril3y/zmatrix/internal/transport"
)

var ErrFrameSize = errors.New("display: frame buffer size mismatch")

// DefaultRefreshDelay is how long the card needs between the last row and
// the display frame that latches it.
const DefaultRefreshDelay = 5 * time.Millisecond

// Driver drives one display of Width x Height pixels.
type Driver struct {
	Width  int
	Height int
	Order  protocol.ColorOrder

	Brightness int
	RGB        [3]int

	// RefreshDelay is the wait before the refresh trigger. Zero is a
	// legal override for tests.
	RefreshDelay time.Duration

	tr  transport.Transport
	log zerolog.Logger
}

func New(width, height int, order protocol.ColorOrder, tr transport.Transport, log zerolog.Logger) *Driver {
	return &Driver{
		Width:        width,
		Height:       height,
		Order:        order,
		Brightness:   255,
		RGB:          [3]int{255, 255, 255},
		RefreshDelay: DefaultRefreshDelay,
		tr:           tr,
		log:          log.With().Str("component", "display").Logger(),
	}
}

// SendFrame transmits one full RGB frame buffer (Height*Width*3 bytes,
// row-major) followed by the refresh trigger. Row chunks go out in
// increasing offset order; the receiver has no reordering buffer. The
// first transport failure aborts the rest of the frame.
func (d *Driver) SendFrame(rgb []byte) error {
	want := d.Width * d.Height * 3
	if len(rgb) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(rgb), want)
	}

	chunks := frame.SplitRow(d.Width, protocol.MaxPixelsPerPacket)
	for row := 0; row < d.Height; row++ {
		rowStart := row * d.Width * 3
		wire, err := frame.RemapRow(rgb[rowStart:rowStart+d.Width*3], d.Order)
		if err != nil {
			return err
		}
		for _, c := range chunks {
			pkt, err := frame.PixelRow(uint16(row), wire[c.Offset*3:(c.Offset+c.Count)*3], uint16(c.Offset))
			if err != nil {
				return fmt.Errorf("display: row %d offset %d: %w", row, c.Offset, err)
			}
			if err := d.tr.Transmit(pkt); err != nil {
				return fmt.Errorf("display: abort frame at row %d offset %d: %w", row, c.Offset, err)
			}
		}
	}

	if d.RefreshDelay > 0 {
		time.Sleep(d.RefreshDelay)
	}
	if err := d.tr.Transmit(frame.DisplayFrame(d.Brightness, d.RGB[0], d.RGB[1], d.RGB[2])); err != nil {
		return fmt.Errorf("display: refresh trigger: %w", err)
	}
	return nil
}

// Fill paints the whole display one RGB color.
func (d *Driver) Fill(r, g, b byte) error {
	buf := make([]byte, d.Width*d.Height*3)
	for i := 0; i < len(buf); i += 3 {
		buf[i] = r
		buf[i+1] = g
		buf[i+2] = b
	}
	return d.SendFrame(buf)
}

// SendBrightness pushes the current brightness state in a standalone
// brightness packet. Optional; the refresh trigger carries it too.
func (d *Driver) SendBrightness() error {
	if err := d.tr.Transmit(frame.BrightnessFrame(d.RGB[0], d.RGB[1], d.RGB[2])); err != nil {
		return fmt.Errorf("display: brightness: %w", err)
	}
	return nil
}

// Clear blanks the display. Used on shutdown so panels do not freeze on
// the last frame.
func (d *Driver) Clear() error {
	d.log.Debug().Msg("clearing display")
	return d.Fill(0, 0, 0)
}
