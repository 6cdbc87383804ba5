package scan

type Protocol string

const (
	ProtocolTCP Protocol = "tcp"
	ProtocolTLS Protocol = "tls"
	ProtocolUDP Protocol = "udp"
	ProtocolSSL Protocol = "ssl"
)

var supportedProtocols = [...]Protocol{
	ProtocolTCP,
	ProtocolTLS,
	ProtocolUDP,
	ProtocolSSL,
}

// SupportedProtocols returns the protocols a probe can be made over, in a fixed order.
func SupportedProtocols() []Protocol {
	protocols := make([]Protocol, len(supportedProtocols))
	copy(protocols, supportedProtocols[:])
	return protocols
}

// ParseProtocol matches name against the supported protocols. Matching is exact, so
// "TCP" is not a protocol.
func ParseProtocol(name string) (Protocol, bool) {
	for _, p := range supportedProtocols {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

func (p Protocol) Valid() bool {
	_, ok := ParseProtocol(string(p))
	return ok
}

// Network is the name of the transport the protocol is carried over.
func (p Protocol) Network() string {
	if p == ProtocolUDP {
		return "udp"
	}
	return "tcp"
}

func (p Protocol) Secure() bool {
	return p == ProtocolTLS || p == ProtocolSSL
}

func (p Protocol) String() string {
	return string(p)
}
