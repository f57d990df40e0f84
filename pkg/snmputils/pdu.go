// SPDX-License-Identifier: GPL-3.0-or-later

package snmputils

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosnmp/gosnmp"
)

// PduToString renders a PDU value as text. Octet strings that are not printable
// UTF-8 are hex encoded.
func PduToString(pdu gosnmp.SnmpPDU) (string, error) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.Null, gosnmp.EndOfMibView:
		return "", fmt.Errorf("object not available: %v", pdu.Type)
	case gosnmp.OctetString, gosnmp.BitString, gosnmp.Opaque:
		bs, err := PduToBytes(pdu)
		if err != nil {
			return "", err
		}
		if IsPrintable(bs) {
			return strings.TrimRight(string(bs), "\x00"), nil
		}
		return hex.EncodeToString(bs), nil
	case gosnmp.Counter32, gosnmp.Counter64, gosnmp.Integer, gosnmp.Gauge32, gosnmp.Uinteger32, gosnmp.TimeTicks:
		return gosnmp.ToBigInt(pdu.Value).String(), nil
	case gosnmp.IPAddress, gosnmp.ObjectIdentifier:
		s, ok := pdu.Value.(string)
		if !ok {
			return "", fmt.Errorf("%v has unexpected type %T", pdu.Type, pdu.Value)
		}
		return TrimOID(s), nil
	default:
		return "", fmt.Errorf("unsupported type: '%v'", pdu.Type)
	}
}

// PduToBytes returns the raw octets of a string-like PDU.
func PduToBytes(pdu gosnmp.SnmpPDU) ([]byte, error) {
	switch v := pdu.Value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%v has unexpected type %T", pdu.Type, pdu.Value)
	}
}

func PduToInt(pdu gosnmp.SnmpPDU) (int64, error) {
	switch pdu.Type {
	case gosnmp.Counter32, gosnmp.Counter64, gosnmp.Integer, gosnmp.Gauge32, gosnmp.Uinteger32, gosnmp.TimeTicks:
		return gosnmp.ToBigInt(pdu.Value).Int64(), nil
	default:
		return 0, fmt.Errorf("unsupported type: '%v'", pdu.Type)
	}
}

// IsPrintable reports whether bs is valid UTF-8 made of printable characters,
// ignoring trailing NUL padding.
func IsPrintable(bs []byte) bool {
	s := strings.TrimRight(string(bs), "\x00")
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
