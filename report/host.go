package report

import (
	"fmt"
	"net"

	"github.com/google/gopacket/macs"
	"github.com/mostlygeek/arp"
)

const noMAC = "00:00:00:00:00:00"

// Host describes the machine behind a domain. MAC and Manufacturer are only known for
// hosts on the local network that appear in the ARP cache.
type Host struct {
	Name         string
	IP           net.IP
	MAC          string
	Manufacturer string
}

func LookupHost(name string) (Host, error) {
	host := Host{Name: name}

	if ip := net.ParseIP(name); ip != nil {
		host.IP = ip
	} else if ips, err := net.LookupIP(name); err == nil {
		if len(ips) == 0 {
			return host, fmt.Errorf("Lookup failed for '%s'", name)
		}
		host.IP = ips[0]
	} else {
		return host, err
	}

	macStr := arp.Search(host.IP.String())
	if macStr == "" || macStr == noMAC {
		return host, nil
	}

	if mac, err := net.ParseMAC(macStr); err == nil && len(mac) >= 3 {
		host.MAC = mac.String()
		prefix := [3]byte{
			mac[0],
			mac[1],
			mac[2],
		}
		if manufacturer, ok := macs.ValidMACPrefixMap[prefix]; ok {
			host.Manufacturer = manufacturer
		}
	}

	return host, nil
}

func (h Host) String() string {
	text := h.Name
	if h.IP != nil && h.IP.String() != h.Name {
		text = fmt.Sprintf("%s (%s)", text, h.IP)
	}
	if h.MAC != "" {
		text = fmt.Sprintf("%s [%s", text, h.MAC)
		if h.Manufacturer != "" {
			text = fmt.Sprintf("%s %s", text, h.Manufacturer)
		}
		text += "]"
	}
	return text
}
