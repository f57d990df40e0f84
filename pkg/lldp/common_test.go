// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

import (
	"fmt"

	"github.com/gosnmp/gosnmp"
)

var mac001a2b = []byte{0x00, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e}

func octetsPDU(oid string, v []byte) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: "." + oid, Type: gosnmp.OctetString, Value: v}
}

func intPDU(oid string, v int) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: "." + oid, Type: gosnmp.Integer, Value: v}
}

func localSystemPDUs(subtype int, chassisID []byte, name string) []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		intPDU(OidLocChassisIDSubtype, subtype),
		octetsPDU(OidLocChassisID, chassisID),
		octetsPDU(OidLocSysName, []byte(name)),
		octetsPDU(OidLocSysDesc, []byte("Test switch OS 1.0")),
		octetsPDU(OidLocSysCapSupported, []byte{0x28, 0x00}),
		octetsPDU(OidLocSysCapEnabled, []byte{0x20, 0x00}),
	}
}

type remRowFixture struct {
	timeMark, port, rem int
	sysName             string
	chassisID           []byte
	portID              string
}

// pdus returns all nine columns of the row.
func (f remRowFixture) pdus() []gosnmp.SnmpPDU {
	idx := func(col string) string { return fmt.Sprintf("%s.%d.%d.%d", col, f.timeMark, f.port, f.rem) }
	chassis := f.chassisID
	if chassis == nil {
		chassis = mac001a2b
	}
	return []gosnmp.SnmpPDU{
		intPDU(idx(OidRemChassisIDSubtype), int(ChassisMACAddress)),
		octetsPDU(idx(OidRemChassisID), chassis),
		intPDU(idx(OidRemPortIDSubtype), int(PortInterfaceName)),
		octetsPDU(idx(OidRemPortID), []byte(f.portID)),
		octetsPDU(idx(OidRemPortDesc), []byte("uplink "+f.portID)),
		octetsPDU(idx(OidRemSysName), []byte(f.sysName)),
		octetsPDU(idx(OidRemSysDesc), []byte("Neighbor OS")),
		octetsPDU(idx(OidRemSysCapSupported), []byte{0x28, 0x00}),
		octetsPDU(idx(OidRemSysCapEnabled), []byte{0x08, 0x00}),
	}
}

// remTablePDUs interleaves the rows column by column, the order a walk returns them in.
func remTablePDUs(rows ...remRowFixture) []gosnmp.SnmpPDU {
	var out []gosnmp.SnmpPDU
	for col := range remColumns {
		for _, r := range rows {
			out = append(out, r.pdus()[col])
		}
	}
	return out
}

type fakeSession struct {
	nonblocking bool

	getResp  *Response
	getErr   error
	walkResp *Response
	walkErr  error
	lastErr  error

	gets        int
	walks       int
	getOIDs     []string
	walkRoot    string
	walkMaxReps uint32

	queue []func()
}

func (s *fakeSession) Nonblocking() bool { return s.nonblocking }
func (s *fakeSession) LastError() error  { return s.lastErr }

func (s *fakeSession) SendGet(oids []string, fn ResponseFunc) (*Response, error) {
	s.gets++
	s.getOIDs = oids
	if !s.nonblocking {
		return s.getResp, s.getErr
	}
	s.queue = append(s.queue, func() { fn(s.getResp, s.getErr) })
	return nil, nil
}

func (s *fakeSession) SendWalk(rootOID string, maxRepetitions uint32, fn ResponseFunc) (*Response, error) {
	s.walks++
	s.walkRoot = rootOID
	s.walkMaxReps = maxRepetitions
	if !s.nonblocking {
		return s.walkResp, s.walkErr
	}
	s.queue = append(s.queue, func() { fn(s.walkResp, s.walkErr) })
	return nil, nil
}

// dispatch runs queued callbacks, including the ones they queue, until none are left.
func (s *fakeSession) dispatch() {
	for len(s.queue) > 0 {
		f := s.queue[0]
		s.queue = s.queue[1:]
		f()
	}
}
