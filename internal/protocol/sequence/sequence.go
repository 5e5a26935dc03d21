// Package sequence programs a receiver card: the ordered config frames and
// the inter-frame waits its firmware needs between steps.
package sequence

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ril3y/zmatrix/internal/protocol"
	"github.com/ril3y/zmatrix/internal/protocol/frame"
)

const (
	routingPayloadLen    = 25 // 1 reserved + 8 ports x 3 bytes
	basicParamPayloadLen = 32
	eepromPayloadLen     = 16
	controlAreaLen       = 10
	maxPorts             = 8

	// Waits are firmware timing contracts observed against real hardware,
	// not protocol framing. Too short and the card silently drops steps.
	DefaultStepDelay  = 10 * time.Millisecond
	DefaultFlashDelay = 50 * time.Millisecond
)

// Transport is the minimal send capability the sequencer needs.
type Transport interface {
	Transmit(frame []byte) error
}

// Port is one routing-table entry. Index is masked to 3 bits (J1-J8).
type Port struct {
	Index   byte
	FlagsHi byte
	FlagsLo byte
}

// DefaultPorts enables all eight output ports.
func DefaultPorts() []Port {
	ports := make([]Port, maxPorts)
	for i := range ports {
		ports[i] = Port{Index: byte(i), FlagsLo: 0x01}
	}
	return ports
}

// Params describes one full receiver programming pass.
type Params struct {
	Width      int
	Height     int
	ScanMode   int // rows active per refresh: 4, 8, 16 or 32
	ColorDepth byte
	ModuleW    int
	ModuleH    int

	CardIndex byte
	AreaData  []byte // 10-byte control area, zeroed when nil
	Ports     []Port // routing entries, DefaultPorts() when nil

	// SaveToFlash appends the persist step. It overwrites the receiver's
	// flash and survives power cycles; never set it implicitly.
	SaveToFlash bool
}

// Step is one frame of the programming sequence plus the minimum wait
// before it may be transmitted.
type Step struct {
	Name  string
	Wait  time.Duration
	Frame []byte
}

// Sequencer emits the fixed-order programming sequence. Zero delays are a
// legal override for tests; they change only when frames go out, never
// their bytes.
type Sequencer struct {
	StepDelay  time.Duration
	FlashDelay time.Duration

	// Sleep is swappable for tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

func New() *Sequencer {
	return &Sequencer{StepDelay: DefaultStepDelay, FlashDelay: DefaultFlashDelay}
}

// Steps builds the ordered frame list without transmitting anything.
// Order is fixed: control area, routing, basic params, volatile EEPROM,
// then the optional flash persist.
func (s *Sequencer) Steps(p Params) ([]Step, error) {
	ports := p.Ports
	if ports == nil {
		ports = DefaultPorts()
	}

	steps := make([]Step, 0, 5)

	ctl, err := frame.ConfigPacket(protocol.CfgControlArea, controlAreaPayload(p.CardIndex, p.AreaData), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("control area: %w", err)
	}
	steps = append(steps, Step{Name: "control-area", Wait: s.StepDelay, Frame: ctl})

	route, err := frame.ConfigPacket(protocol.CfgRouting, routingPayload(ports), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("routing: %w", err)
	}
	steps = append(steps, Step{Name: "routing", Wait: s.StepDelay, Frame: route})

	basic, err := frame.ConfigPacket(protocol.CfgBasicParam, basicParamPayload(p), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("basic params: %w", err)
	}
	steps = append(steps, Step{Name: "basic-params", Wait: s.StepDelay, Frame: basic})

	volatileStep, err := frame.ConfigPacket(protocol.CfgEEPROMVolat, make([]byte, eepromPayloadLen), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("eeprom volatile: %w", err)
	}
	steps = append(steps, Step{Name: "eeprom-volatile", Wait: s.StepDelay, Frame: volatileStep})

	if p.SaveToFlash {
		persist, err := frame.ConfigPacket(protocol.CfgEEPROMFlash, persistPayload(), nil, 0)
		if err != nil {
			return nil, fmt.Errorf("eeprom persist: %w", err)
		}
		steps = append(steps, Step{Name: "eeprom-persist", Wait: s.FlashDelay, Frame: persist})
	}

	return steps, nil
}

// Apply transmits the sequence in order. The first transport failure
// aborts the rest: the protocol has no acknowledgments, and continuing
// past a lost step would leave the card half-programmed with no way to
// tell.
func (s *Sequencer) Apply(tr Transport, p Params) error {
	steps, err := s.Steps(p)
	if err != nil {
		return err
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for _, step := range steps {
		if step.Wait > 0 {
			sleep(step.Wait)
		}
		if err := tr.Transmit(step.Frame); err != nil {
			return fmt.Errorf("sequence aborted at %s: %w", step.Name, err)
		}
	}
	return nil
}

// Discovery builds the fire-and-forget discovery request. Responses are
// not parsed; the card's reply shows up in a packet capture.
func Discovery() ([]byte, error) {
	return frame.ConfigPacket(protocol.CfgDiscoveryReq, make([]byte, 64), nil, 0)
}

func controlAreaPayload(cardIndex byte, area []byte) []byte {
	payload := make([]byte, 2+controlAreaLen)
	payload[1] = cardIndex
	copy(payload[2:], area)
	return payload
}

func routingPayload(ports []Port) []byte {
	payload := make([]byte, routingPayloadLen)
	if len(ports) > maxPorts {
		ports = ports[:maxPorts]
	}
	for i, p := range ports {
		payload[1+i*3] = p.Index & 0x07
		payload[2+i*3] = p.FlagsHi
		payload[3+i*3] = p.FlagsLo
	}
	return payload
}

func basicParamPayload(p Params) []byte {
	payload := make([]byte, basicParamPayloadLen)
	binary.LittleEndian.PutUint16(payload[0:2], uint16(p.Width))
	binary.LittleEndian.PutUint16(payload[2:4], uint16(p.Height))
	payload[4] = p.ColorDepth
	payload[6] = byte(p.ModuleW)
	payload[7] = byte(p.ModuleH)
	payload[8] = byte(p.ScanMode)
	return payload
}

func persistPayload() []byte {
	payload := make([]byte, eepromPayloadLen)
	payload[0] = 0x0F // full save
	payload[1] = 0x01 // send flag
	return payload
}
