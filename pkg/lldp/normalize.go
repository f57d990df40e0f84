// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

import (
	"encoding/hex"
	"net"
	"strings"

	"github.com/netdata/netdata/go/lldptopo/pkg/snmputils"
)

// IANA address family numbers used by the networkAddress subtypes.
const (
	addrFamilyIPv4 = 1
	addrFamilyIPv6 = 2
)

func formatChassisID(subtype ChassisIDSubtype, raw []byte) string {
	switch subtype {
	case ChassisMACAddress:
		return formatMAC(raw)
	case ChassisNetworkAddress:
		return formatNetworkAddress(raw)
	default:
		return formatOctets(raw)
	}
}

func formatPortID(subtype PortIDSubtype, raw []byte) string {
	switch subtype {
	case PortMACAddress:
		return formatMAC(raw)
	case PortNetworkAddress:
		return formatNetworkAddress(raw)
	default:
		return formatOctets(raw)
	}
}

// formatMAC renders a MAC address as lowercase colon separated hex.
// Some agents send the address as text instead of 6 raw octets.
func formatMAC(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if len(raw) != 6 && snmputils.IsPrintable(raw) {
		if hw, err := net.ParseMAC(strings.TrimSpace(string(raw))); err == nil {
			return hw.String()
		}
	}
	return net.HardwareAddr(raw).String()
}

func formatNetworkAddress(raw []byte) string {
	switch {
	case len(raw) == 1+net.IPv4len && raw[0] == addrFamilyIPv4:
		return net.IP(raw[1:]).String()
	case len(raw) == 1+net.IPv6len && raw[0] == addrFamilyIPv6:
		return net.IP(raw[1:]).String()
	default:
		return formatOctets(raw)
	}
}

func formatOctets(raw []byte) string {
	if snmputils.IsPrintable(raw) {
		return strings.TrimRight(string(raw), "\x00")
	}
	return hex.EncodeToString(raw)
}

// decodeCapabilities converts an LLDP BITS value (first octet, most significant
// bit first) to a Capabilities mask.
func decodeCapabilities(bs []byte) Capabilities {
	var caps Capabilities
	for bit := 0; bit < 16; bit++ {
		idx := bit / 8
		if idx >= len(bs) {
			break
		}
		if bs[idx]&(0x80>>uint(bit%8)) != 0 {
			caps |= 1 << uint(bit)
		}
	}
	return caps
}
