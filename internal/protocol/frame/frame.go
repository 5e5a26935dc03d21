// Package frame builds the raw Ethernet frames the receiver card consumes.
// Every builder is a pure byte producer; transmission belongs to the
// transport layer.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ril3y/zmatrix/internal/protocol"
)

const (
	displayHeaderLen  = 13 // dst(6) + src(6) + type(1)
	pixelRowHeaderLen = 8  // row(2) + offset(2) + count(2) + 0x08 + 0x88

	displayFramePayloadLen    = 98
	brightnessFramePayloadLen = 63
)

var (
	ErrRowTooWide      = errors.New("frame: pixel row exceeds packet limit")
	ErrPayloadTooLarge = errors.New("frame: config payload exceeds MTU")
	ErrBadPixelData    = errors.New("frame: pixel data not a whole number of pixels")
)

// DisplayPacket prepends the fixed addressing and a display packet type to
// payload. Payload length is the caller's responsibility.
func DisplayPacket(pktType byte, payload []byte) []byte {
	buf := make([]byte, 0, displayHeaderLen+len(payload))
	buf = append(buf, protocol.DstMAC[:]...)
	buf = append(buf, protocol.SrcMAC[:]...)
	buf = append(buf, pktType)
	return append(buf, payload...)
}

// ConfigPacket builds a config-family frame:
//
//	0x00  dst MAC            (6)
//	0x06  src MAC            (6)
//	0x0C  EtherType 0x0880   (2)
//	0x0E  controller address (16, zero-padded or truncated)
//	0x1E  sync pattern       (8)
//	0x26  packet type        (1)
//	0x27  sequence           (1)
//	0x28  payload
//
// The receiver FPGA locates the packet type by scanning for the sync
// pattern, so the prefix is emitted byte-exact.
func ConfigPacket(pktType byte, payload []byte, controllerAddr []byte, seq byte) ([]byte, error) {
	if protocol.ConfigHeaderSize+len(payload) > protocol.MaxFrameSize {
		return nil, fmt.Errorf("%w: %d payload bytes", ErrPayloadTooLarge, len(payload))
	}

	buf := make([]byte, 0, protocol.ConfigHeaderSize+len(payload))
	buf = append(buf, protocol.DstMAC[:]...)
	buf = append(buf, protocol.SrcMAC[:]...)
	buf = binary.BigEndian.AppendUint16(buf, protocol.EtherTypeConfig)

	var ctrl [protocol.ControllerAddrSize]byte
	copy(ctrl[:], controllerAddr)
	buf = append(buf, ctrl[:]...)

	buf = append(buf, protocol.SyncPattern[:]...)
	buf = append(buf, pktType, seq)
	return append(buf, payload...), nil
}

// PixelRow wraps one row chunk, already in wire color order, as a 0x55
// display packet. The three header integers are big-endian; this is the
// one place the protocol departs from native byte order.
func PixelRow(row uint16, wireData []byte, offset uint16) ([]byte, error) {
	if len(wireData)%3 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadPixelData, len(wireData))
	}
	count := len(wireData) / 3
	if count > protocol.MaxPixelsPerPacket {
		return nil, fmt.Errorf("%w: %d pixels", ErrRowTooWide, count)
	}

	payload := make([]byte, pixelRowHeaderLen, pixelRowHeaderLen+len(wireData))
	binary.BigEndian.PutUint16(payload[0:2], row)
	binary.BigEndian.PutUint16(payload[2:4], offset)
	binary.BigEndian.PutUint16(payload[4:6], uint16(count))
	payload[6] = 0x08
	payload[7] = 0x88
	payload = append(payload, wireData...)

	return DisplayPacket(protocol.PktPixelRow, payload), nil
}

// RemapPixel places an RGB pixel's channels into wire order.
func RemapPixel(r, g, b byte, order protocol.ColorOrder) [3]byte {
	table := order.Table()
	var out [3]byte
	out[table[0]] = r
	out[table[1]] = g
	out[table[2]] = b
	return out
}

// RemapRow converts a whole RGB row into wire color order. Input length
// must be a multiple of 3.
func RemapRow(rgb []byte, order protocol.ColorOrder) ([]byte, error) {
	if len(rgb)%3 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadPixelData, len(rgb))
	}
	table := order.Table()
	out := make([]byte, len(rgb))
	for i := 0; i < len(rgb); i += 3 {
		out[i+table[0]] = rgb[i]
		out[i+table[1]] = rgb[i+1]
		out[i+table[2]] = rgb[i+2]
	}
	return out, nil
}

// Chunk is one transmission unit of a split row.
type Chunk struct {
	Offset int
	Count  int
}

// SplitRow partitions a row of width pixels into chunks of at most max
// pixels. Chunks are consecutive, non-overlapping and tile [0, width) in
// increasing offset order; the receiver buffers rows by offset and has no
// reordering logic, so callers must transmit them in the returned order.
func SplitRow(width, max int) []Chunk {
	if width <= 0 || max <= 0 {
		return nil
	}
	chunks := make([]Chunk, 0, (width+max-1)/max)
	for offset := 0; offset < width; offset += max {
		count := max
		if width-offset < count {
			count = width - offset
		}
		chunks = append(chunks, Chunk{Offset: offset, Count: count})
	}
	return chunks
}

// DisplayFrame builds the 0x01 refresh trigger. Brightness values are
// clamped to 0..255.
//
// Payload layout (98 bytes):
//
//	0      0x07
//	22     overall brightness
//	23     0x05
//	24     0x00
//	25-27  R, G, B brightness
func DisplayFrame(brightness, r, g, b int) []byte {
	payload := make([]byte, displayFramePayloadLen)
	payload[0] = 0x07
	payload[22] = clampByte(brightness)
	payload[23] = 0x05
	payload[25] = clampByte(r)
	payload[26] = clampByte(g)
	payload[27] = clampByte(b)
	return DisplayPacket(protocol.PktDisplay, payload)
}

// BrightnessFrame builds the optional 0x0A brightness packet.
//
// Payload layout (63 bytes): R, G, B at 0..2, 0xFF at 3.
func BrightnessFrame(r, g, b int) []byte {
	payload := make([]byte, brightnessFramePayloadLen)
	payload[0] = clampByte(r)
	payload[1] = clampByte(g)
	payload[2] = clampByte(b)
	payload[3] = 0xFF
	return DisplayPacket(protocol.PktBrightness, payload)
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
