package scan

import (
	"strings"

	"github.com/google/gopacket/layers"
)

// DescribePort returns the IANA service name registered for port, or "" if there is none.
func DescribePort(port int, protocol Protocol) string {
	if port < MinPort || port > MaxPort {
		return ""
	}

	var name string
	if protocol.Network() == "udp" {
		name = layers.UDPPort(port).String()
	} else {
		name = layers.TCPPort(port).String()
	}

	// named ports format as "80(http)"
	start := strings.IndexByte(name, '(')
	if start < 0 {
		return ""
	}
	return strings.TrimSuffix(name[start+1:], ")")
}
