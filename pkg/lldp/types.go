// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

type (
	// LocalSystem is the identity the agent advertises about itself.
	LocalSystem struct {
		ChassisIDSubtype ChassisIDSubtype `json:"chassis_id_subtype"`
		ChassisID        string           `json:"chassis_id"`
		SysName          string           `json:"sys_name"`
		SysDesc          string           `json:"sys_desc"`
		CapSupported     Capabilities     `json:"capabilities_supported"`
		CapEnabled       Capabilities     `json:"capabilities_enabled"`
	}

	// RemoteNeighbor is one row of the agent's lldpRemTable.
	// LocalPort is the LLDP local port number, not an ifIndex.
	RemoteNeighbor struct {
		LocalPort        int              `json:"local_port"`
		RemIndex         int              `json:"rem_index"`
		ChassisIDSubtype ChassisIDSubtype `json:"chassis_id_subtype"`
		ChassisID        string           `json:"chassis_id"`
		PortIDSubtype    PortIDSubtype    `json:"port_id_subtype"`
		PortID           string           `json:"port_id"`
		PortDesc         string           `json:"port_desc"`
		SysName          string           `json:"sys_name"`
		SysDesc          string           `json:"sys_desc"`
		CapSupported     Capabilities     `json:"capabilities_supported"`
		CapEnabled       Capabilities     `json:"capabilities_enabled"`
		// Missing names the columns the agent did not return for this row.
		Missing []string `json:"missing,omitempty"`
	}
)

// RemoteTable holds the neighbor rows keyed by local port number, then by neighbor index.
type RemoteTable map[int]map[int]RemoteNeighbor

func (t RemoteTable) set(n RemoteNeighbor) {
	if t[n.LocalPort] == nil {
		t[n.LocalPort] = make(map[int]RemoteNeighbor)
	}
	t[n.LocalPort][n.RemIndex] = n
}

// Len returns the number of neighbor rows across all ports.
func (t RemoteTable) Len() int {
	var n int
	for _, rows := range t {
		n += len(rows)
	}
	return n
}

func (t RemoteTable) Ports() []int {
	return slices.Sorted(maps.Keys(t))
}

// Neighbors returns the rows reported on port ordered by neighbor index.
func (t RemoteTable) Neighbors(port int) []RemoteNeighbor {
	rows := t[port]
	out := make([]RemoteNeighbor, 0, len(rows))
	for _, idx := range slices.Sorted(maps.Keys(rows)) {
		out = append(out, rows[idx])
	}
	return out
}

// All returns every row ordered by local port, then neighbor index.
func (t RemoteTable) All() []RemoteNeighbor {
	out := make([]RemoteNeighbor, 0, t.Len())
	for _, port := range t.Ports() {
		out = append(out, t.Neighbors(port)...)
	}
	return out
}

func (t RemoteTable) Clone() RemoteTable {
	out := make(RemoteTable, len(t))
	for port, rows := range t {
		cp := make(map[int]RemoteNeighbor, len(rows))
		for idx, n := range rows {
			n.Missing = slices.Clone(n.Missing)
			cp[idx] = n
		}
		out[port] = cp
	}
	return out
}

type ChassisIDSubtype int

const (
	ChassisComponent ChassisIDSubtype = iota + 1
	ChassisInterfaceAlias
	ChassisPortComponent
	ChassisMACAddress
	ChassisNetworkAddress
	ChassisInterfaceName
	ChassisLocal
)

var chassisIDSubtypeNames = map[ChassisIDSubtype]string{
	ChassisComponent:      "chassisComponent",
	ChassisInterfaceAlias: "interfaceAlias",
	ChassisPortComponent:  "portComponent",
	ChassisMACAddress:     "macAddress",
	ChassisNetworkAddress: "networkAddress",
	ChassisInterfaceName:  "interfaceName",
	ChassisLocal:          "local",
}

func (s ChassisIDSubtype) String() string {
	if v, ok := chassisIDSubtypeNames[s]; ok {
		return v
	}
	return strconv.Itoa(int(s))
}

type PortIDSubtype int

const (
	PortInterfaceAlias PortIDSubtype = iota + 1
	PortComponent
	PortMACAddress
	PortNetworkAddress
	PortInterfaceName
	PortAgentCircuitID
	PortLocal
)

var portIDSubtypeNames = map[PortIDSubtype]string{
	PortInterfaceAlias: "interfaceAlias",
	PortComponent:      "portComponent",
	PortMACAddress:     "macAddress",
	PortNetworkAddress: "networkAddress",
	PortInterfaceName:  "interfaceName",
	PortAgentCircuitID: "agentCircuitId",
	PortLocal:          "local",
}

func (s PortIDSubtype) String() string {
	if v, ok := portIDSubtypeNames[s]; ok {
		return v
	}
	return strconv.Itoa(int(s))
}

// Capabilities is the LLDP system capabilities bitmask; bit i is set when
// capability i (other=0, repeater=1, bridge=2, ...) is present.
type Capabilities uint16

var capabilityNames = []string{
	"other",
	"repeater",
	"bridge",
	"wlanAccessPoint",
	"router",
	"telephone",
	"docsisCableDevice",
	"stationOnly",
	"cVlanComponent",
	"sVlanComponent",
	"twoPortMacRelay",
}

const (
	CapOther = iota
	CapRepeater
	CapBridge
	CapWLANAccessPoint
	CapRouter
	CapTelephone
	CapDOCSISCableDevice
	CapStationOnly
	CapCVLANComponent
	CapSVLANComponent
	CapTwoPortMACRelay
)

func (c Capabilities) Has(bit int) bool {
	return bit >= 0 && bit < 16 && c&(1<<uint(bit)) != 0
}

func (c Capabilities) Names() []string {
	var names []string
	for bit, name := range capabilityNames {
		if c.Has(bit) {
			names = append(names, name)
		}
	}
	return names
}

func (c Capabilities) MarshalJSON() ([]byte, error) {
	names := c.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}
