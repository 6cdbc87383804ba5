package scan

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultProtocol = ProtocolTCP
	DefaultTimeout  = 250 * time.Millisecond
)

// Session holds the settings for checking one host. It is a value: every Use* and With*
// method returns an updated copy and leaves the receiver untouched, so a Session can be
// shared between goroutines.
type Session struct {
	domain      string
	protocol    Protocol
	timeout     time.Duration
	dialer      Dialer
	parallelism int
}

// NewSession returns a Session for domain with any leading http:// or https:// removed.
func NewSession(domain string) (Session, error) {
	sanitized, err := SanitizeDomain(domain)
	if err != nil {
		return Session{}, err
	}
	return Session{
		domain:   sanitized,
		protocol: DefaultProtocol,
		timeout:  DefaultTimeout,
	}, nil
}

func SanitizeDomain(domain string) (string, error) {
	sanitized := domain
	if strings.HasPrefix(sanitized, "https://") {
		sanitized = strings.TrimPrefix(sanitized, "https://")
	} else {
		sanitized = strings.TrimPrefix(sanitized, "http://")
	}
	if sanitized == "" {
		return "", &InvalidDomainError{Domain: domain}
	}
	return sanitized, nil
}

// UseProtocol sets the protocol used for bare ports.
func (s Session) UseProtocol(protocol Protocol) Session {
	s.protocol = protocol
	return s
}

func (s Session) UseTCP() Session { return s.UseProtocol(ProtocolTCP) }
func (s Session) UseTLS() Session { return s.UseProtocol(ProtocolTLS) }
func (s Session) UseUDP() Session { return s.UseProtocol(ProtocolUDP) }
func (s Session) UseSSL() Session { return s.UseProtocol(ProtocolSSL) }

// WithTimeout sets the time each probe is given. Non-positive values are ignored.
func (s Session) WithTimeout(timeout time.Duration) Session {
	if timeout > 0 {
		s.timeout = timeout
	}
	return s
}

// WithTimeoutSeconds sets the probe timeout in seconds. Positive values below a
// nanosecond round up to one.
func (s Session) WithTimeoutSeconds(seconds float64) Session {
	timeout := time.Duration(seconds * float64(time.Second))
	if seconds > 0 && timeout <= 0 {
		timeout = time.Nanosecond
	}
	return s.WithTimeout(timeout)
}

func (s Session) WithDialer(dialer Dialer) Session {
	s.dialer = dialer
	return s
}

// WithParallelism caps the number of probes in flight. Zero removes the cap.
func (s Session) WithParallelism(parallelism int) Session {
	s.parallelism = parallelism
	return s
}

func (s Session) Domain() string {
	return s.domain
}

func (s Session) Protocol() Protocol {
	if s.protocol == "" {
		return DefaultProtocol
	}
	return s.protocol
}

func (s Session) Timeout() time.Duration {
	if s.timeout <= 0 {
		return DefaultTimeout
	}
	return s.timeout
}

func (s Session) DefaultTargetSet() *TargetSet {
	return DefaultTargets()
}

func (s Session) SupportedProtocols() []Protocol {
	return SupportedProtocols()
}

// Check resolves args into targets and probes each of them on the session's domain. An
// unreachable port is reported as closed, never as an error; the only errors are invalid
// input.
func (s Session) Check(ctx context.Context, args ...Arg) ([]Result, error) {
	if s.domain == "" {
		return nil, &InvalidDomainError{Domain: s.domain}
	}

	targets, err := Resolve(args, s.Protocol())
	if err != nil {
		return nil, err
	}

	logrus.Debugf("Resolved targets for %s: %s", s.domain, targets)

	return NewProber(s.dialer, s.parallelism).Probe(ctx, s.domain, targets, s.Timeout()), nil
}
