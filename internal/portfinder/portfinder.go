// Package portfinder asks the OS for an unused loopback TCP port.
package portfinder

import (
	"fmt"
	"net"
)

// FindFreePort binds an ephemeral loopback socket, reads back the assigned
// port and releases it. Another process may grab the port before the caller
// binds it again; callers treat that as a bind failure.
func FindFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("find free port: %w", err)
	}
	defer l.Close()

	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("find free port: unexpected address type %T", l.Addr())
	}
	return addr.Port, nil
}
