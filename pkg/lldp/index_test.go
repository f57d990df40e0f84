// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

import (
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemIndex(t *testing.T) {
	tests := map[string]struct {
		index     string
		wantKey   rowKey
		wantExtra bool
		wantErr   bool
	}{
		"standard three part index": {
			index:   "0.5.1",
			wantKey: rowKey{localPort: 5, remIndex: 1},
		},
		"time mark is dropped": {
			index:   "123456.5.2",
			wantKey: rowKey{localPort: 5, remIndex: 2},
		},
		"time mark omitted by agent": {
			index:   "7.3",
			wantKey: rowKey{localPort: 7, remIndex: 3},
		},
		"trailing components are ignored": {
			index:     "0.12.4.1.1",
			wantKey:   rowKey{localPort: 12, remIndex: 4},
			wantExtra: true,
		},
		"single component": {
			index:   "5",
			wantErr: true,
		},
		"non numeric port": {
			index:   "0.x.1",
			wantErr: true,
		},
		"negative remote index": {
			index:   "0.1.-1",
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			key, extra, err := parseRemIndex(test.index)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantKey, key)
			assert.Equal(t, test.wantExtra, extra)
		})
	}
}

func TestDecodeRemoteColumns(t *testing.T) {
	pdus := []gosnmp.SnmpPDU{
		octetsPDU(OidRemSysName+".0.5.1", []byte("switchA")),
		octetsPDU(OidRemSysName+".0.5.2", []byte("switchB")),
		// lldpRemManAddrTable lives outside lldpRemEntry
		octetsPDU("1.0.8802.1.1.2.1.4.2.1.3.0.5.1.1.4.10.0.0.1", []byte{1}),
		// lldpRemOrgDefInfo is not one of the nine columns
		octetsPDU("1.0.8802.1.1.2.1.4.1.1.13.0.5.1", []byte("x")),
		octetsPDU(OidRemSysName+".bad", []byte("broken")),
		{Name: "." + OidRemSysDesc + ".0.5.1", Type: gosnmp.NoSuchInstance},
	}

	raw, skipped := decodeRemoteColumns(pdus, nil)

	assert.Equal(t, 2, skipped)
	require.Len(t, raw, 1)
	assert.Len(t, raw[colRemSysName], 2)
	assert.Contains(t, raw[colRemSysName], rowKey{localPort: 5, remIndex: 1})
	assert.Contains(t, raw[colRemSysName], rowKey{localPort: 5, remIndex: 2})
}

func TestBuildRemoteTable_DistinctNeighborsOnOnePort(t *testing.T) {
	raw, _ := decodeRemoteColumns([]gosnmp.SnmpPDU{
		octetsPDU("1.0.8802.1.1.2.1.4.1.1.9.0.5.1", []byte("switchA")),
		octetsPDU("1.0.8802.1.1.2.1.4.1.1.9.0.5.2", []byte("switchB")),
	}, nil)

	table, partial := buildRemoteTable(raw)

	require.Len(t, table, 1)
	require.Len(t, table[5], 2)
	assert.Equal(t, "switchA", table[5][1].SysName)
	assert.Equal(t, "switchB", table[5][2].SysName)
	assert.Len(t, partial, 2)
}

func TestBuildRemoteTable_CompleteRows(t *testing.T) {
	rows := []remRowFixture{
		{timeMark: 0, port: 1, rem: 1, sysName: "dist-1", portID: "Gi0/1"},
		{timeMark: 100, port: 2, rem: 3, sysName: "dist-2", portID: "Gi0/2"},
		{timeMark: 100, port: 48, rem: 1, sysName: "ap-7", portID: "eth0"},
	}
	raw, skipped := decodeRemoteColumns(remTablePDUs(rows...), nil)

	table, partial := buildRemoteTable(raw)

	assert.Zero(t, skipped)
	assert.Empty(t, partial)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []int{1, 2, 48}, table.Ports())

	n := table[2][3]
	assert.Equal(t, RemoteNeighbor{
		LocalPort:        2,
		RemIndex:         3,
		ChassisIDSubtype: ChassisMACAddress,
		ChassisID:        "00:1a:2b:3c:4d:5e",
		PortIDSubtype:    PortInterfaceName,
		PortID:           "Gi0/2",
		PortDesc:         "uplink Gi0/2",
		SysName:          "dist-2",
		SysDesc:          "Neighbor OS",
		CapSupported:     decodeCapabilities([]byte{0x28, 0x00}),
		CapEnabled:       decodeCapabilities([]byte{0x08, 0x00}),
	}, n)
}

func TestBuildRemoteTable_PartialRow(t *testing.T) {
	pdus := remRowFixture{port: 3, rem: 1, sysName: "edge", portID: "1"}.pdus()
	// drop lldpRemSysName and lldpRemPortDesc
	pdus = append(pdus[:4], pdus[6:]...)
	raw, _ := decodeRemoteColumns(pdus, nil)

	table, partial := buildRemoteTable(raw)

	require.Len(t, partial, 1)
	assert.Equal(t, []string{colRemPortDesc, colRemSysName}, partial[0].Missing)
	assert.Equal(t, 3, partial[0].LocalPort)

	n := table[3][1]
	assert.Equal(t, []string{colRemPortDesc, colRemSysName}, n.Missing)
	assert.Empty(t, n.SysName)
	assert.Equal(t, "00:1a:2b:3c:4d:5e", n.ChassisID)
}

func TestBuildRemoteTable_Empty(t *testing.T) {
	table, partial := buildRemoteTable(rawColumnTable{})

	assert.NotNil(t, table)
	assert.Zero(t, table.Len())
	assert.Empty(t, partial)
}

func TestRemoteTable_Clone(t *testing.T) {
	table := make(RemoteTable)
	table.set(RemoteNeighbor{LocalPort: 1, RemIndex: 1, SysName: "a", Missing: []string{colRemSysDesc}})

	cp := table.Clone()
	cp[1][1] = RemoteNeighbor{SysName: "changed"}
	cp[2] = map[int]RemoteNeighbor{}

	assert.Equal(t, "a", table[1][1].SysName)
	assert.Len(t, table, 1)
}

func TestRemoteTable_All(t *testing.T) {
	table := make(RemoteTable)
	table.set(RemoteNeighbor{LocalPort: 9, RemIndex: 2})
	table.set(RemoteNeighbor{LocalPort: 1, RemIndex: 1})
	table.set(RemoteNeighbor{LocalPort: 9, RemIndex: 1})

	var got [][2]int
	for _, n := range table.All() {
		got = append(got, [2]int{n.LocalPort, n.RemIndex})
	}

	assert.Equal(t, [][2]int{{1, 1}, {9, 1}, {9, 2}}, got)
}
