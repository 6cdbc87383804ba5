package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribePort(t *testing.T) {
	assert.Equal(t, "ssh", DescribePort(22, ProtocolTCP))
	assert.Equal(t, "http", DescribePort(80, ProtocolTCP))
	assert.Equal(t, "https", DescribePort(443, ProtocolTLS))
	assert.Equal(t, "domain", DescribePort(53, ProtocolUDP))
	assert.Equal(t, "", DescribePort(0, ProtocolTCP))
	assert.Equal(t, "", DescribePort(70000, ProtocolTCP))
}

func TestResultString(t *testing.T) {
	r := Result{Port: 22, Protocol: ProtocolTCP, Open: true}
	assert.Equal(t, "22/tcp    \tOPEN      \tssh", r.String())
	assert.Equal(t, "CLOSED", Result{Port: 22, Protocol: ProtocolTCP}.State())
}

func TestOpenResults(t *testing.T) {
	results := []Result{
		{Port: 22, Protocol: ProtocolTCP, Open: true},
		{Port: 80, Protocol: ProtocolTCP, Open: false},
		{Port: 443, Protocol: ProtocolTLS, Open: true},
	}

	assert.Equal(t, []Result{results[0], results[2]}, OpenResults(results))
	assert.Empty(t, OpenResults(nil))
}
