//go:build linux

package transport

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/mdlayher/packet"

	"github.com/ril3y/zmatrix/internal/protocol"
)

// Raw is an AF_PACKET transport bound to one interface. Frames carry
// their own link header, so the socket runs in raw mode and the kernel
// prepends nothing.
type Raw struct {
	conn *packet.Conn
	dst  net.HardwareAddr
}

// OpenRaw binds a raw socket to the named interface. EPERM is wrapped
// with an actionable hint since it is by far the most common failure.
func OpenRaw(ifname string) (Transport, error) {
	ifi, err := net.InterfaceByName(ifname)
	if err != nil {
		return nil, fmt.Errorf("transport: interface %q: %w", ifname, err)
	}

	conn, err := packet.Listen(ifi, packet.Raw, 0, nil)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: open %q: %v", ErrPermission, ifname, err)
		}
		return nil, fmt.Errorf("transport: open %q: %w", ifname, err)
	}

	return &Raw{conn: conn, dst: net.HardwareAddr(protocol.DstMAC[:])}, nil
}

func (r *Raw) Transmit(frame []byte) error {
	if _, err := r.conn.WriteTo(frame, &packet.Addr{HardwareAddr: r.dst}); err != nil {
		return fmt.Errorf("transport: transmit %d bytes: %w", len(frame), err)
	}
	return nil
}

func (r *Raw) Close() error {
	return r.conn.Close()
}
