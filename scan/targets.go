package scan

import (
	"fmt"
	"strings"
)

const (
	MinPort = 1
	MaxPort = 65535
)

type Target struct {
	Port     int
	Protocol Protocol
}

func (t Target) String() string {
	return fmt.Sprintf("%d/%s", t.Port, t.Protocol)
}

var defaultTargets = [...]Target{
	{Port: 22, Protocol: ProtocolTCP},
	{Port: 80, Protocol: ProtocolTCP},
	{Port: 443, Protocol: ProtocolTLS},
	{Port: 8080, Protocol: ProtocolTCP},
	{Port: 3306, Protocol: ProtocolTCP},
}

// DefaultTargets returns the well-known ports probed when a caller names none.
func DefaultTargets() *TargetSet {
	ts := NewTargetSet()
	for _, t := range defaultTargets {
		ts.Set(t.Port, t.Protocol)
	}
	return ts
}

// TargetSet maps ports to protocols and remembers the order ports were first added in.
type TargetSet struct {
	order     []int
	protocols map[int]Protocol
}

func NewTargetSet() *TargetSet {
	return &TargetSet{
		protocols: map[int]Protocol{},
	}
}

// Set assigns protocol to port. A port that is already present keeps its position and
// takes the new protocol.
func (ts *TargetSet) Set(port int, protocol Protocol) {
	if _, ok := ts.protocols[port]; !ok {
		ts.order = append(ts.order, port)
	}
	ts.protocols[port] = protocol
}

func (ts *TargetSet) Protocol(port int) (Protocol, bool) {
	p, ok := ts.protocols[port]
	return p, ok
}

func (ts *TargetSet) Len() int {
	return len(ts.order)
}

func (ts *TargetSet) Ports() []int {
	ports := make([]int, len(ts.order))
	copy(ports, ts.order)
	return ports
}

// Targets lists the set in insertion order.
func (ts *TargetSet) Targets() []Target {
	targets := make([]Target, 0, len(ts.order))
	for _, port := range ts.order {
		targets = append(targets, Target{Port: port, Protocol: ts.protocols[port]})
	}
	return targets
}

func (ts *TargetSet) String() string {
	parts := make([]string, 0, len(ts.order))
	for _, t := range ts.Targets() {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ",")
}
