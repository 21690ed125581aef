package cli

import "net"

// splitAddr splits host:port, keeping the current value for a missing part.
func splitAddr(addr, host, port string) (string, string) {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return host, addr
	}
	if h != "" {
		host = h
	}
	if p != "" {
		port = p
	}
	return host, port
}
