// SPDX-License-Identifier: GPL-3.0-or-later

package snmputils

import (
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"
)

// ParseSNMPVersion maps a configured version to a gosnmp version.
// Only community-based versions are supported.
func ParseSNMPVersion(version string) (gosnmp.SnmpVersion, error) {
	switch strings.ToLower(strings.TrimSpace(version)) {
	case "0", "1", "v1":
		return gosnmp.Version1, nil
	case "2", "2c", "v2c", "":
		return gosnmp.Version2c, nil
	default:
		return gosnmp.Version2c, fmt.Errorf("unsupported SNMP version '%s'", version)
	}
}

func ConnInfo(c gosnmp.Handler) string {
	return fmt.Sprintf("hostname='%s',port='%d',snmp_version='%s',community='%s'",
		c.Target(), c.Port(), c.Version(), c.Community())
}

func TrimOID(oid string) string {
	return strings.TrimPrefix(oid, ".")
}

// OIDSuffix returns the part of oid that follows prefix, without the separating dot.
// ok is false when oid is not strictly below prefix.
func OIDSuffix(oid, prefix string) (suffix string, ok bool) {
	oid, prefix = TrimOID(oid), TrimOID(prefix)

	if !strings.HasPrefix(oid, prefix+".") {
		return "", false
	}

	return oid[len(prefix)+1:], true
}

func IsPduWithData(pdu gosnmp.SnmpPDU) bool {
	switch pdu.Type {
	case gosnmp.NoSuchObject,
		gosnmp.NoSuchInstance,
		gosnmp.Null,
		gosnmp.EndOfMibView:
		return false
	default:
		return true
	}
}
