package scan

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
)

// Dialer establishes a connection to address over protocol. A probe counts as open when
// DialContext returns a connection before ctx expires.
type Dialer interface {
	DialContext(ctx context.Context, protocol Protocol, address string) (net.Conn, error)
}

type DialerFunc func(ctx context.Context, protocol Protocol, address string) (net.Conn, error)

func (f DialerFunc) DialContext(ctx context.Context, protocol Protocol, address string) (net.Conn, error) {
	return f(ctx, protocol, address)
}

// NetDialer dials with the standard network stack. tls and ssl probes only succeed once
// the TLS handshake has completed.
type NetDialer struct {
	InsecureSkipVerify bool
}

func (d *NetDialer) DialContext(ctx context.Context, protocol Protocol, address string) (net.Conn, error) {
	dialer := &net.Dialer{}

	if !protocol.Secure() {
		return dialer.DialContext(ctx, protocol.Network(), address)
	}

	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}

	tlsDialer := &tls.Dialer{
		NetDialer: dialer,
		Config: &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: d.InsecureSkipVerify,
		},
	}
	return tlsDialer.DialContext(ctx, protocol.Network(), address)
}

// Endpoint formats a target as protocol://host:port.
func Endpoint(protocol Protocol, host string, port int) string {
	return fmt.Sprintf("%s://%s", protocol, net.JoinHostPort(host, strconv.Itoa(port)))
}
