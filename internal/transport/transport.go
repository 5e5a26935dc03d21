// Package transport moves finished frames onto the wire. Frame building
// stays in protocol/frame; this package only binds an interface and
// transmits.
package transport

import "errors"

var (
	ErrPermission  = errors.New("transport: raw socket requires root or CAP_NET_RAW")
	ErrUnsupported = errors.New("transport: raw ethernet is only supported on linux")
)

// Transport transmits one raw Ethernet frame per call. Sends are
// fire-and-forget; a failure means the frame did not leave this host.
type Transport interface {
	Transmit(frame []byte) error
	Close() error
}
