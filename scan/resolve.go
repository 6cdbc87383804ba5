package scan

import (
	"fmt"
	"strconv"
	"strings"
)

type ArgKind uint8

const (
	// ArgPort is a single bare port, probed with the default protocol.
	ArgPort ArgKind = iota + 1
	// ArgMapping is an ordered list of port/protocol entries.
	ArgMapping
)

// Entry is one raw key/value pair as supplied by a caller. For an explicit pair the key is
// the port and the value the protocol; for a bare port the key is its position and the
// value the port.
type Entry struct {
	Key   string
	Value string
}

func Pair(port int, protocol Protocol) Entry {
	return Entry{Key: strconv.Itoa(port), Value: string(protocol)}
}

// Arg is one positional argument to Check or Resolve.
type Arg struct {
	Kind    ArgKind
	Port    string
	Entries []Entry
}

func Port(port int) Arg {
	return Arg{Kind: ArgPort, Port: strconv.Itoa(port)}
}

// RawPort is a bare port that has not been parsed yet, e.g. command line input.
func RawPort(port string) Arg {
	return Arg{Kind: ArgPort, Port: port}
}

func Ports(ports ...int) []Arg {
	args := make([]Arg, 0, len(ports))
	for _, port := range ports {
		args = append(args, Port(port))
	}
	return args
}

func Mapping(entries ...Entry) Arg {
	return Arg{Kind: ArgMapping, Entries: entries}
}

func (a Arg) String() string {
	switch a.Kind {
	case ArgPort:
		return a.Port
	case ArgMapping:
		parts := make([]string, 0, len(a.Entries))
		for _, e := range a.Entries {
			parts = append(parts, fmt.Sprintf("%s:%s", e.Key, e.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("<unknown arg kind %d>", a.Kind)
}

// Resolve turns caller arguments into the set of targets to probe.
//
// No arguments selects DefaultTargets. A single mapping supplies its entries directly.
// Otherwise every argument must be a bare port, keyed by its position. Each entry is then
// accepted as an explicit pair when its value is a supported protocol and its key a valid
// port, or as a bare port with defaultProtocol when its value is a valid port. Anything
// else fails the whole batch with an *InvalidPortOrProtocolError.
func Resolve(args []Arg, defaultProtocol Protocol) (*TargetSet, error) {
	if len(args) == 0 {
		return DefaultTargets(), nil
	}

	entries, err := flatten(args)
	if err != nil {
		return nil, err
	}

	targets := NewTargetSet()
	for _, entry := range entries {
		target, err := entry.resolve(defaultProtocol)
		if err != nil {
			return nil, err
		}
		targets.Set(target.Port, target.Protocol)
	}

	return targets, nil
}

func flatten(args []Arg) ([]Entry, error) {
	if len(args) == 1 && args[0].Kind == ArgMapping {
		return args[0].Entries, nil
	}

	entries := make([]Entry, 0, len(args))
	for i, arg := range args {
		if arg.Kind != ArgPort {
			return nil, &InvalidPortOrProtocolError{
				Port:     strconv.Itoa(i),
				Protocol: arg.String(),
			}
		}
		entries = append(entries, Entry{Key: strconv.Itoa(i), Value: arg.Port})
	}
	return entries, nil
}

func (e Entry) resolve(defaultProtocol Protocol) (Target, error) {
	if protocol, ok := ParseProtocol(e.Value); ok {
		if port, ok := parsePort(e.Key); ok {
			return Target{Port: port, Protocol: protocol}, nil
		}
	}

	if port, ok := parsePort(e.Value); ok {
		if !defaultProtocol.Valid() {
			return Target{}, &InvalidPortOrProtocolError{Port: e.Value, Protocol: string(defaultProtocol)}
		}
		return Target{Port: port, Protocol: defaultProtocol}, nil
	}

	return Target{}, &InvalidPortOrProtocolError{Port: e.Key, Protocol: e.Value}
}

func parsePort(s string) (int, bool) {
	// only canonical decimal text is a port, so "+80" and "080" are not
	if s == "" || s[0] == '+' || s[0] == '-' || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < MinPort || port > MaxPort {
		return 0, false
	}
	return port, true
}
