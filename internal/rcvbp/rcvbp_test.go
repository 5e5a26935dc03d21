package rcvbp

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// body builds a decompressed-body buffer with representative fields set.
func body(size int) []byte {
	b := make([]byte, size)
	b[0x04] = 64  // module width
	b[0x05] = 32  // module height
	b[0x1C] = 1   // polarity reversed
	binary.LittleEndian.PutUint32(b[0x20:], math.Float32bits(2.8)) // gamma
	b[0x24] = 16 // scan mode
	b[0x2C] = 255
	b[0x2D] = 240
	b[0x2E] = 230
	b[0x30] = 0 // exchange: BGR
	b[0x31] = 1
	b[0x32] = 2
	b[0x40] = 1 // cascade left to right
	binary.LittleEndian.PutUint32(b[0xB2:], math.Float32bits(25.5)) // min OE ns
	binary.LittleEndian.PutUint16(b[0xC4:], 320)
	binary.LittleEndian.PutUint16(b[0xC6:], 128)
	binary.LittleEndian.PutUint16(b[0x18E:], 8)
	binary.LittleEndian.PutUint16(b[0x1E9:], 4096)
	b[0x25E] = 1
	return b
}

func compressedFile(t *testing.T, bodyBytes []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(bodyBytes)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	file := make([]byte, 0x20)
	binary.LittleEndian.PutUint32(file[0x10:], 0x0004)
	return append(file, buf.Bytes()...)
}

func rawFile(bodyBytes []byte) []byte {
	file := make([]byte, 0x14)
	return append(file, bodyBytes...)
}

func TestDecodeTruncatedFileYieldsDefaults(t *testing.T) {
	cfg, err := Decode(make([]byte, 10))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.RawSize)
	assert.False(t, cfg.Compressed)
	assert.Zero(t, cfg.ModuleWidth)
	assert.Zero(t, cfg.ScanMode)
	assert.Zero(t, cfg.Gamma)
	assert.Zero(t, cfg.Exchange)
	assert.False(t, cfg.GrayscaleRefinement)
}

func TestDecodeUncompressed(t *testing.T) {
	cfg, err := Decode(rawFile(body(0x260)))
	require.NoError(t, err)

	assert.False(t, cfg.Compressed)
	assert.Equal(t, 64, cfg.ModuleWidth)
	assert.Equal(t, 32, cfg.ModuleHeight)
	assert.Equal(t, 1, cfg.Polarity)
	assert.InDelta(t, 2.8, cfg.Gamma, 0.0001)
	assert.Equal(t, 16, cfg.ScanMode)
	assert.Equal(t, "1:16 scan", cfg.ScanRate())
	assert.Equal(t, 255, cfg.WhiteBalanceR)
	assert.Equal(t, 240, cfg.WhiteBalanceG)
	assert.Equal(t, 230, cfg.WhiteBalanceB)
	assert.Equal(t, ExchangeTriplet{R: 0, G: 1, B: 2}, cfg.Exchange)
	assert.Equal(t, CascadeLeftToRight, cfg.Cascade)
	assert.InDelta(t, 25.5, cfg.MinOENanos, 0.0001)
	assert.Equal(t, 320, cfg.CabinetWidth)
	assert.Equal(t, 128, cfg.CabinetHeight)
	assert.Equal(t, 8, cfg.DataGroups)
	assert.Equal(t, 4096, cfg.GrayscaleMax)
	assert.True(t, cfg.GrayscaleRefinement)
}

func TestDecodeCompressed(t *testing.T) {
	file := compressedFile(t, body(0x260))
	cfg, err := Decode(file)
	require.NoError(t, err)

	assert.True(t, cfg.Compressed)
	assert.Equal(t, len(file), cfg.RawSize)
	assert.Equal(t, 64, cfg.ModuleWidth)
	assert.Equal(t, 320, cfg.CabinetWidth)
}

func TestDecodeHighOffsetFields(t *testing.T) {
	b := body(0xE9A0)
	b[0xE983] = 12   // brightness level
	b[0xE986] = 3    // decoder IC
	b[0xE98D] = 80   // brightness percent
	b[0xE99E] = 0x81 // grayscale mode 18bit+
	cfg, err := Decode(rawFile(b))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.BrightnessLevel)
	assert.Equal(t, 3, cfg.DecoderIC)
	assert.Equal(t, 80, cfg.BrightnessPercent)
	assert.Equal(t, Grayscale18BitP, cfg.Grayscale)
}

func TestDecodeBadZlibIsLoud(t *testing.T) {
	file := make([]byte, 0x30)
	binary.LittleEndian.PutUint32(file[0x10:], 0x0004)
	copy(file[0x20:], "definitely not zlib")

	_, err := Decode(file)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadCompression)
}

func TestDecodeCompressedFlagOnShortFile(t *testing.T) {
	file := make([]byte, 0x16)
	binary.LittleEndian.PutUint32(file[0x10:], 0x0004)

	_, err := Decode(file)
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.rcvbp")
	require.NoError(t, os.WriteFile(path, rawFile(body(0x260)), 0o644))

	cfg, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.ModuleWidth)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.rcvbp"))
	assert.Error(t, err)
}

func TestDecodeBodyIsTheExplicitFallback(t *testing.T) {
	cfg := DecodeBody(body(0x260))
	assert.Equal(t, 64, cfg.ModuleWidth)
	assert.Equal(t, 16, cfg.ScanMode)
}

func TestCascadeDirectionStrings(t *testing.T) {
	assert.Equal(t, "Right to Left", CascadeRightToLeft.String())
	assert.Equal(t, "Left to Right", CascadeLeftToRight.String())
	assert.Equal(t, "Top to Bottom", CascadeTopToBottom.String())
	assert.Equal(t, "Bottom to Top", CascadeBottomToTop.String())
	assert.Equal(t, "Unknown (9)", CascadeDirection(9).String())
}

func TestGrayscaleModeStrings(t *testing.T) {
	assert.Equal(t, "Normal", GrayscaleNormal.String())
	assert.Equal(t, "18bit+", Grayscale18BitP.String())
	assert.Equal(t, "Infi-bit", GrayscaleInfiBit.String())
	assert.Equal(t, "Unknown (0x42)", GrayscaleMode(0x42).String())
}

func TestExchangeTriplet(t *testing.T) {
	cases := []struct {
		triplet ExchangeTriplet
		order   string
	}{
		{ExchangeTriplet{R: 2, G: 1, B: 0}, "RGB"},
		{ExchangeTriplet{R: 0, G: 1, B: 2}, "BGR"},
		{ExchangeTriplet{R: 1, G: 0, B: 2}, "GRB"},
		{ExchangeTriplet{R: 1, G: 2, B: 0}, "GBR"},
		{ExchangeTriplet{R: 2, G: 0, B: 1}, "RBG"},
		{ExchangeTriplet{R: 0, G: 2, B: 1}, "BRG"},
	}
	for _, tc := range cases {
		assert.True(t, tc.triplet.Valid(), tc.order)
		assert.Equal(t, tc.order, tc.triplet.Order())
	}

	custom := ExchangeTriplet{R: 2, G: 2, B: 0}
	assert.False(t, custom.Valid())
	assert.Equal(t, "Custom (R>2 G>2 B>0)", custom.Order())
}
