package scan

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refusingDialer() Dialer {
	return DialerFunc(func(ctx context.Context, protocol Protocol, address string) (net.Conn, error) {
		return nil, errRefused
	})
}

func TestNewSessionStripsScheme(t *testing.T) {
	cases := map[string]string{
		"gemz.io":                "gemz.io",
		"http://gemz.io":         "gemz.io",
		"https://gemz.io":        "gemz.io",
		"https://gemz.io:8443":   "gemz.io:8443",
		"ftp://gemz.io":          "ftp://gemz.io",
		"gemz.io/http://x":       "gemz.io/http://x",
		"http://https://gemz.io": "https://gemz.io",
	}

	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			session, err := NewSession(input)
			require.NoError(t, err)
			assert.Equal(t, want, session.Domain())
		})
	}
}

func TestNewSessionRejectsEmptyDomain(t *testing.T) {
	for _, input := range []string{"", "http://", "https://"} {
		t.Run(input, func(t *testing.T) {
			_, err := NewSession(input)
			assert.True(t, errors.Is(err, ErrInvalidDomain))

			var invalid *InvalidDomainError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, input, invalid.Domain)
		})
	}
}

func TestZeroSessionCannotCheck(t *testing.T) {
	_, err := Session{}.Check(context.Background())
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestSessionDefaults(t *testing.T) {
	session, err := NewSession("gemz.io")
	require.NoError(t, err)

	assert.Equal(t, ProtocolTCP, session.Protocol())
	assert.Equal(t, 250*time.Millisecond, session.Timeout())
	assert.Equal(t, DefaultTargets().Targets(), session.DefaultTargetSet().Targets())
	assert.Equal(t, []Protocol{ProtocolTCP, ProtocolTLS, ProtocolUDP, ProtocolSSL}, session.SupportedProtocols())
}

func TestSessionSettersReturnCopies(t *testing.T) {
	base, err := NewSession("gemz.io")
	require.NoError(t, err)

	tls := base.UseTLS().WithTimeoutSeconds(0.1)

	assert.Equal(t, ProtocolTCP, base.Protocol())
	assert.Equal(t, DefaultTimeout, base.Timeout())
	assert.Equal(t, ProtocolTLS, tls.Protocol())
	assert.Equal(t, 100*time.Millisecond, tls.Timeout())
}

func TestSessionIgnoresNonPositiveTimeout(t *testing.T) {
	session, err := NewSession("gemz.io")
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeout, session.WithTimeout(0).Timeout())
	assert.Equal(t, DefaultTimeout, session.WithTimeoutSeconds(-1).Timeout())
}

func TestSessionProtocolShortcuts(t *testing.T) {
	session, err := NewSession("gemz.io")
	require.NoError(t, err)
	session = session.WithDialer(refusingDialer()).WithTimeoutSeconds(0.1)

	cases := map[Protocol]Session{
		ProtocolTCP: session.UseUDP().UseTCP(),
		ProtocolTLS: session.UseTLS(),
		ProtocolUDP: session.UseUDP(),
		ProtocolSSL: session.UseSSL(),
	}

	for protocol, s := range cases {
		t.Run(string(protocol), func(t *testing.T) {
			checks, err := s.Check(context.Background(), Ports(80, 443)...)
			require.NoError(t, err)
			require.Len(t, checks, 2)
			assert.Equal(t, protocol, checks[0].Protocol)
			assert.Equal(t, protocol, checks[1].Protocol)
		})
	}
}

func TestSessionMappingOverridesProtocol(t *testing.T) {
	session, err := NewSession("gemz.io")
	require.NoError(t, err)

	checks, err := session.
		UseUDP().
		WithDialer(refusingDialer()).
		Check(context.Background(), Mapping(Pair(80, ProtocolTCP), Pair(443, ProtocolTLS)))
	require.NoError(t, err)

	assert.Equal(t, []Result{
		{Port: 80, Protocol: ProtocolTCP, Open: false},
		{Port: 443, Protocol: ProtocolTLS, Open: false},
	}, checks)
}

func TestSessionCheckDefaultTargets(t *testing.T) {
	session, err := NewSession("gemz.io")
	require.NoError(t, err)

	checks, err := session.WithDialer(refusingDialer()).Check(context.Background())
	require.NoError(t, err)

	ports := []int{}
	for _, c := range checks {
		ports = append(ports, c.Port)
	}
	assert.Equal(t, []int{22, 80, 443, 8080, 3306}, ports)
}

func TestSessionCheckRejectsInvalidInput(t *testing.T) {
	session, err := NewSession("gemz.io")
	require.NoError(t, err)
	session = session.WithDialer(refusingDialer())

	_, err = session.Check(context.Background(), RawPort("akjshdaksjhdakjshdka"))
	assert.ErrorIs(t, err, ErrInvalidPortOrProtocol)

	_, err = session.Check(context.Background(), Mapping(Entry{Key: "80", Value: "abc"}))
	assert.ErrorIs(t, err, ErrInvalidPortOrProtocol)

	_, err = session.Check(context.Background(), Mapping(Entry{Key: "987", Value: "abc"}))
	assert.ErrorIs(t, err, ErrInvalidPortOrProtocol)
}

func TestSessionCheckLocalPorts(t *testing.T) {
	open := listen(t)

	session, err := NewSession("http://127.0.0.1")
	require.NoError(t, err)

	checks, err := session.WithTimeoutSeconds(0.5).Check(context.Background(), Ports(open)...)
	require.NoError(t, err)
	assert.Equal(t, []Result{{Port: open, Protocol: ProtocolTCP, Open: true}}, checks)
}

func TestSessionCheckUDPIsConnectionless(t *testing.T) {
	session, err := NewSession("127.0.0.1")
	require.NoError(t, err)

	checks, err := session.UseUDP().Check(context.Background(), Port(9))
	require.NoError(t, err)
	assert.Equal(t, []Result{{Port: 9, Protocol: ProtocolUDP, Open: true}}, checks)
}

func TestSessionCheckTLSAgainstPlainListener(t *testing.T) {
	port := listen(t)

	session, err := NewSession("127.0.0.1")
	require.NoError(t, err)

	checks, err := session.
		WithDialer(&NetDialer{InsecureSkipVerify: true}).
		WithTimeoutSeconds(0.5).
		Check(context.Background(), Mapping(Pair(port, ProtocolTLS)))
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.False(t, checks[0].Open)
}

func TestSessionCheckTLSHandshake(t *testing.T) {
	server := httptest.NewTLSServer(http.NotFoundHandler())
	server.Config.ErrorLog = log.New(io.Discard, "", 0)
	t.Cleanup(server.Close)

	port := server.Listener.Addr().(*net.TCPAddr).Port

	session, err := NewSession("127.0.0.1")
	require.NoError(t, err)
	session = session.WithTimeoutSeconds(1)

	cases := []struct {
		name     string
		dialer   Dialer
		protocol Protocol
		open     bool
	}{
		{name: "tls insecure", dialer: &NetDialer{InsecureSkipVerify: true}, protocol: ProtocolTLS, open: true},
		{name: "ssl insecure", dialer: &NetDialer{InsecureSkipVerify: true}, protocol: ProtocolSSL, open: true},
		{name: "tls verified", dialer: &NetDialer{}, protocol: ProtocolTLS, open: false},
		{name: "ssl verified", dialer: &NetDialer{}, protocol: ProtocolSSL, open: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			checks, err := session.WithDialer(c.dialer).Check(context.Background(), Mapping(Pair(port, c.protocol)))
			require.NoError(t, err)
			assert.Equal(t, []Result{{Port: port, Protocol: c.protocol, Open: c.open}}, checks)
		})
	}
}

func TestSessionTimeoutSecondsKeepsTinyValues(t *testing.T) {
	session, err := NewSession("gemz.io")
	require.NoError(t, err)

	assert.Equal(t, time.Nanosecond, session.WithTimeoutSeconds(1e-12).Timeout())
	assert.Equal(t, 50*time.Millisecond, session.WithTimeoutSeconds(0.05).Timeout())
}
