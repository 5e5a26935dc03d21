package protocol

// Fixed addressing baked into the receiver firmware. The card answers on
// these addresses regardless of the NIC's real MAC.
var (
	DstMAC = [6]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	SrcMAC = [6]byte{0x22, 0x22, 0x33, 0x44, 0x55, 0x66}
)

// EtherTypeConfig discriminates config frames from display frames.
const EtherTypeConfig uint16 = 0x0880

// SyncPattern is the 8-byte marker the receiver FPGA scans for to locate
// the packet-type byte in a config frame. Byte-exact or the card drops
// the frame.
var SyncPattern = [8]byte{0x55, 0x66, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}

// Display packet types, carried at offset 0x0C in place of an EtherType.
const (
	PktDisplay    byte = 0x01 // display frame / refresh trigger
	PktBrightness byte = 0x0A // brightness control
	PktPixelRow   byte = 0x55 // row pixel data
)

// Config packet types, carried at offset 0x26 after the sync pattern.
const (
	CfgControlArea  byte = 0x02 // control area, 10 bytes per card
	CfgRouting      byte = 0x03 // J1-J8 port mapping, 3 bytes per port
	CfgBasicParam   byte = 0x05 // dimensions, scan rate
	CfgDiscoveryReq byte = 0x07
	CfgDiscoveryRsp byte = 0x08
	CfgBrightness   byte = 0x0A
	CfgAntiRoute    byte = 0x1A
	CfgEEPROMVolat  byte = 0x1B // parameters in RAM only
	CfgChipRealtime byte = 0x1C
	CfgVoidLine     byte = 0x1F
	CfgEEPROMFlash  byte = 0x2B // parameters persisted to flash
	CfgAntiPixel    byte = 0x32
	CfgTAntiRoute   byte = 0x37
	CfgDataRemap    byte = 0x41
	CfgGammaSep     byte = 0x73
	CfgGamma        byte = 0x76
	CfgGammaGray    byte = 0x7B
	CfgGammaDelta   byte = 0x7F
	CfgAntiScan     byte = 0x83
	CfgGammaNew     byte = 0x87
)

// Color depth codes carried in the basic-parameter payload.
const (
	Color8Bit  byte = 0x00
	Color10Bit byte = 0x02
	Color12Bit byte = 0x04
)

const (
	// MaxPixelsPerPacket keeps a pixel-row frame inside the standard
	// Ethernet MTU: 6+6+1 link bytes, 8 header bytes, 3 bytes per pixel.
	MaxPixelsPerPacket = 497

	// ConfigHeaderSize covers everything before the config payload:
	// MACs, EtherType, controller address, sync pattern, type, sequence.
	ConfigHeaderSize = 40

	// ControllerAddrSize is the fixed controller addressing block length.
	ControllerAddrSize = 16

	// MaxFrameSize bounds any single on-wire frame, link header included.
	MaxFrameSize = 1514
)
