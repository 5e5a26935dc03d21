// Package rcvbp decodes LEDVISION .rcvbp/.rcvp receiver configuration
// files. The format is a flat buffer of fields at fixed offsets,
// optionally zlib-compressed; longer files simply carry more (later-added)
// fields, so every field defaults to zero and is populated only when the
// buffer reaches its offset.
package rcvbp

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// RawBodyOffset is where the field body starts in an uncompressed file.
const RawBodyOffset = 0x14

const (
	flagsOffset      = 0x10
	zlibBodyOffset   = 0x20
	flagCompressed   = 0x0004
	minCompressedLen = 0x24
)

var (
	ErrTooShort       = errors.New("rcvbp: file too short for compressed body")
	ErrBadCompression = errors.New("rcvbp: zlib inflate failed")
)

// PanelConfig is the decoded parameter set. It is a pure projection of
// the file bytes; fields past the end of the buffer keep their zero
// values.
type PanelConfig struct {
	ModuleWidth   int
	ModuleHeight  int
	CabinetWidth  int
	CabinetHeight int

	ScanMode   int
	Polarity   int // 0 normal, 1 reversed
	Cascade    CascadeDirection
	DataGroups int

	Gamma         float32
	WhiteBalanceR int
	WhiteBalanceG int
	WhiteBalanceB int

	// Exchange is the file's own channel remapping triplet. It is
	// informational: LEDVISION never feeds it back into live pixel
	// encoding, and neither do we.
	Exchange ExchangeTriplet

	BrightnessPercent int
	BrightnessLevel   int
	MinOENanos        float32

	Grayscale           GrayscaleMode
	GrayscaleMax        int
	GrayscaleRefinement bool

	DecoderIC int

	Compressed bool
	RawSize    int
}

// ScanRate renders the scan mode the way LEDVISION does, e.g. "1:16 scan".
func (c PanelConfig) ScanRate() string {
	return fmt.Sprintf("1:%d scan", c.ScanMode)
}

// Decode parses a whole .rcvbp/.rcvp file. A zlib failure on a file whose
// compressed flag is set is an error; callers that want to try the bytes
// as an uncompressed body anyway must do so explicitly via DecodeBody.
func Decode(raw []byte) (PanelConfig, error) {
	compressed := false
	if len(raw) >= flagsOffset+4 {
		flags := binary.LittleEndian.Uint32(raw[flagsOffset:])
		compressed = flags&flagCompressed != 0
	}

	var body []byte
	switch {
	case !compressed:
		if len(raw) > RawBodyOffset {
			body = raw[RawBodyOffset:]
		}
	case len(raw) < minCompressedLen:
		return PanelConfig{}, fmt.Errorf("%w: %d bytes", ErrTooShort, len(raw))
	default:
		inflated, err := inflate(raw[zlibBodyOffset:])
		if err != nil {
			return PanelConfig{}, fmt.Errorf("%w: body at 0x%02x: %v", ErrBadCompression, zlibBodyOffset, err)
		}
		body = inflated
	}

	cfg := DecodeBody(body)
	cfg.Compressed = compressed
	cfg.RawSize = len(raw)
	return cfg, nil
}

// DecodeFile reads and decodes a configuration file from disk.
func DecodeFile(path string) (PanelConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PanelConfig{}, fmt.Errorf("rcvbp: %w", err)
	}
	return Decode(raw)
}

// DecodeBody extracts fields from an already-unwrapped body buffer. It
// never fails: each field is guarded by a length check and keeps its zero
// default when the buffer is too short. This is also the explicit
// fallback for files whose compressed body will not inflate.
func DecodeBody(body []byte) PanelConfig {
	var cfg PanelConfig

	if len(body) >= 0x06 {
		cfg.ModuleWidth = int(body[0x04])
		cfg.ModuleHeight = int(body[0x05])
	}
	if len(body) >= 0x1D {
		cfg.Polarity = int(body[0x1C])
	}
	if len(body) >= 0x24 {
		cfg.Gamma = f32le(body[0x20:])
	}
	if len(body) >= 0x25 {
		cfg.ScanMode = int(body[0x24])
	}
	if len(body) >= 0x2F {
		cfg.WhiteBalanceR = int(body[0x2C])
		cfg.WhiteBalanceG = int(body[0x2D])
		cfg.WhiteBalanceB = int(body[0x2E])
	}
	if len(body) >= 0x33 {
		cfg.Exchange = ExchangeTriplet{R: int(body[0x30]), G: int(body[0x31]), B: int(body[0x32])}
	}
	if len(body) >= 0x41 {
		cfg.Cascade = CascadeDirection(body[0x40])
	}
	if len(body) >= 0xB6 {
		cfg.MinOENanos = f32le(body[0xB2:])
	}
	if len(body) >= 0xC8 {
		cfg.CabinetWidth = int(binary.LittleEndian.Uint16(body[0xC4:]))
		cfg.CabinetHeight = int(binary.LittleEndian.Uint16(body[0xC6:]))
	}
	if len(body) >= 0x190 {
		cfg.DataGroups = int(binary.LittleEndian.Uint16(body[0x18E:]))
	}
	if len(body) >= 0x1EB {
		cfg.GrayscaleMax = int(binary.LittleEndian.Uint16(body[0x1E9:]))
	}
	if len(body) >= 0x25F {
		cfg.GrayscaleRefinement = body[0x25E] != 0
	}
	if len(body) >= 0xE984 {
		cfg.BrightnessLevel = int(body[0xE983])
	}
	if len(body) >= 0xE987 {
		cfg.DecoderIC = int(body[0xE986])
	}
	if len(body) >= 0xE98E {
		cfg.BrightnessPercent = int(body[0xE98D])
	}
	if len(body) >= 0xE99F {
		cfg.Grayscale = GrayscaleMode(body[0xE99E])
	}

	return cfg
}

func inflate(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	body, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func f32le(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
