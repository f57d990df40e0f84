// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

import (
	"fmt"

	"github.com/gosnmp/gosnmp"

	"github.com/netdata/netdata/go/lldptopo/pkg/snmputils"
)

// decodeLocalSystem builds the local system record from the GET response.
// Variables are matched by OID, not by position. The chassis id and its subtype
// are required; the remaining scalars are optional on many agents.
func decodeLocalSystem(pdus []gosnmp.SnmpPDU) (LocalSystem, error) {
	var (
		ls           LocalSystem
		chassisID    []byte
		seenSubtype  bool
		seenChassis  bool
		decodeErrors []error
	)

	for _, pdu := range pdus {
		if !snmputils.IsPduWithData(pdu) {
			continue
		}

		var err error

		switch snmputils.TrimOID(pdu.Name) {
		case OidLocChassisIDSubtype:
			var v int64
			if v, err = snmputils.PduToInt(pdu); err == nil {
				ls.ChassisIDSubtype = ChassisIDSubtype(v)
				seenSubtype = true
			}
		case OidLocChassisID:
			if chassisID, err = snmputils.PduToBytes(pdu); err == nil {
				seenChassis = true
			}
		case OidLocSysName:
			ls.SysName, err = snmputils.PduToString(pdu)
		case OidLocSysDesc:
			ls.SysDesc, err = snmputils.PduToString(pdu)
		case OidLocSysCapSupported:
			ls.CapSupported, err = pduToCapabilities(pdu)
		case OidLocSysCapEnabled:
			ls.CapEnabled, err = pduToCapabilities(pdu)
		}
		if err != nil {
			decodeErrors = append(decodeErrors, fmt.Errorf("OID '%s': %v", pdu.Name, err))
		}
	}

	if len(decodeErrors) > 0 {
		return LocalSystem{}, fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErrors[0])
	}
	if !seenSubtype || !seenChassis {
		return LocalSystem{}, fmt.Errorf("%w: no local chassis id", ErrMalformedResponse)
	}

	ls.ChassisID = formatChassisID(ls.ChassisIDSubtype, chassisID)

	return ls, nil
}
