package display

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ril3y/zmatrix/internal/imaging"
	"github.com/ril3y/zmatrix/internal/protocol"
	"github.com/ril3y/zmatrix/internal/transport"
)

func newTestDriver(w, h int, order string, rec *transport.Recorder) *Driver {
	o, err := protocol.ParseColorOrder(order)
	if err != nil {
		panic(err)
	}
	d := New(w, h, o, rec, zerolog.Nop())
	d.RefreshDelay = 0
	return d
}

func TestSendFrameSolidRedBGR(t *testing.T) {
	// 320x128 solid red with BGR panels: every wire pixel is 00 00 FF and
	// each row fits one packet.
	rec := transport.NewRecorder()
	d := newTestDriver(320, 128, "BGR", rec)

	if err := d.SendFrame(imaging.Solid(320, 128, imaging.Color{R: 255})); err != nil {
		t.Fatalf("send frame: %v", err)
	}

	// one packet per row plus the refresh trigger
	if len(rec.Frames) != 128+1 {
		t.Fatalf("sent %d frames, want %d", len(rec.Frames), 129)
	}

	wantPixels := bytes.Repeat([]byte{0x00, 0x00, 0xFF}, 320)
	for row := 0; row < 128; row++ {
		pkt := rec.Frames[row]
		if pkt[12] != protocol.PktPixelRow {
			t.Fatalf("row %d: type %x", row, pkt[12])
		}
		payload := pkt[13:]
		if got := binary.BigEndian.Uint16(payload[0:2]); got != uint16(row) {
			t.Fatalf("row header: got %d want %d", got, row)
		}
		if got := binary.BigEndian.Uint16(payload[2:4]); got != 0 {
			t.Fatalf("row %d offset: %d", row, got)
		}
		if got := binary.BigEndian.Uint16(payload[4:6]); got != 0x0140 {
			t.Fatalf("row %d count: %#04x", row, got)
		}
		if payload[6] != 0x08 || payload[7] != 0x88 {
			t.Fatalf("row %d markers: %x %x", row, payload[6], payload[7])
		}
		if !bytes.Equal(payload[8:], wantPixels) {
			t.Fatalf("row %d pixel bytes wrong", row)
		}
	}

	trigger := rec.Frames[128]
	if trigger[12] != protocol.PktDisplay {
		t.Fatalf("trigger type %x", trigger[12])
	}
}

func TestSendFrameSplitsWideRows(t *testing.T) {
	rec := transport.NewRecorder()
	d := newTestDriver(1024, 2, "RGB", rec)

	if err := d.SendFrame(make([]byte, 1024*2*3)); err != nil {
		t.Fatalf("send frame: %v", err)
	}

	// 3 chunks per row, 2 rows, plus trigger
	if len(rec.Frames) != 3*2+1 {
		t.Fatalf("sent %d frames, want 7", len(rec.Frames))
	}

	wantOffsets := []uint16{0, 497, 994}
	wantCounts := []uint16{497, 497, 30}
	for row := 0; row < 2; row++ {
		for i := 0; i < 3; i++ {
			payload := rec.Frames[row*3+i][13:]
			if got := binary.BigEndian.Uint16(payload[2:4]); got != wantOffsets[i] {
				t.Fatalf("row %d chunk %d offset: %d", row, i, got)
			}
			if got := binary.BigEndian.Uint16(payload[4:6]); got != wantCounts[i] {
				t.Fatalf("row %d chunk %d count: %d", row, i, got)
			}
		}
	}
}

func TestSendFrameRejectsWrongSize(t *testing.T) {
	d := newTestDriver(8, 8, "BGR", transport.NewRecorder())
	if err := d.SendFrame(make([]byte, 7)); !errors.Is(err, ErrFrameSize) {
		t.Fatalf("expected ErrFrameSize, got %v", err)
	}
}

func TestSendFrameAbortsOnTransportFailure(t *testing.T) {
	rec := transport.NewRecorder()
	rec.FailAfter = 3
	d := newTestDriver(16, 16, "BGR", rec)

	err := d.SendFrame(make([]byte, 16*16*3))
	if err == nil {
		t.Fatalf("expected transport failure to propagate")
	}
	if len(rec.Frames) != 3 {
		t.Fatalf("expected abort after 3 frames, sent %d", len(rec.Frames))
	}
}

func TestSendBrightness(t *testing.T) {
	rec := transport.NewRecorder()
	d := newTestDriver(8, 8, "BGR", rec)
	d.RGB = [3]int{10, 20, 30}

	if err := d.SendBrightness(); err != nil {
		t.Fatalf("send brightness: %v", err)
	}
	pkt := rec.Frames[0]
	if pkt[12] != protocol.PktBrightness {
		t.Fatalf("type %x", pkt[12])
	}
	if pkt[13] != 10 || pkt[14] != 20 || pkt[15] != 30 {
		t.Fatalf("rgb bytes %x", pkt[13:16])
	}
}
