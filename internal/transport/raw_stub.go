//go:build !linux

package transport

// OpenRaw is linux-only; AF_PACKET does not exist elsewhere.
func OpenRaw(ifname string) (Transport, error) {
	return nil, ErrUnsupported
}
