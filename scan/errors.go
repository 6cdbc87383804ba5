package scan

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDomain         = errors.New("invalid domain")
	ErrInvalidPortOrProtocol = errors.New("invalid port or protocol")
)

// InvalidDomainError is returned when a domain is empty once any http:// or https://
// prefix has been removed.
type InvalidDomainError struct {
	Domain string
}

func (e *InvalidDomainError) Error() string {
	return fmt.Sprintf("the given domain `%s` is not valid", e.Domain)
}

func (e *InvalidDomainError) Is(target error) bool {
	return target == ErrInvalidDomain
}

// InvalidPortOrProtocolError is returned when a raw entry is neither an explicit
// port/protocol pair nor a bare port. Port holds the raw key of the entry, which is the
// positional index for bare ports.
type InvalidPortOrProtocolError struct {
	Port     string
	Protocol string
}

func (e *InvalidPortOrProtocolError) Error() string {
	return fmt.Sprintf("the given port `%s` or protocol `%s` is not valid", e.Port, e.Protocol)
}

func (e *InvalidPortOrProtocolError) Is(target error) bool {
	return target == ErrInvalidPortOrProtocol
}
