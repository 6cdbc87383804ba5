package scan

import (
	"fmt"
)

type Result struct {
	Port     int      `json:"port"`
	Protocol Protocol `json:"protocol"`
	Open     bool     `json:"open"`
}

func (r Result) State() string {
	if r.Open {
		return "OPEN"
	}
	return "CLOSED"
}

func (r Result) Service() string {
	return DescribePort(r.Port, r.Protocol)
}

func (r Result) String() string {
	return fmt.Sprintf(
		"%s\t%s\t%s",
		pad(fmt.Sprintf("%d/%s", r.Port, r.Protocol), 10),
		pad(r.State(), 10),
		r.Service(),
	)
}

// OpenResults filters results down to open ports, keeping their order.
func OpenResults(results []Result) []Result {
	open := []Result{}
	for _, r := range results {
		if r.Open {
			open = append(open, r)
		}
	}
	return open
}

func pad(input string, length int) string {
	for len(input) < length {
		input += " "
	}
	return input
}
