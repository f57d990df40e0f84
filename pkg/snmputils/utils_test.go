// SPDX-License-Identifier: GPL-3.0-or-later

package snmputils

import (
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSNMPVersion(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    gosnmp.SnmpVersion
		wantErr bool
	}{
		"empty defaults to v2c": {input: "", want: gosnmp.Version2c},
		"v1":                    {input: "1", want: gosnmp.Version1},
		"v2c":                   {input: "2c", want: gosnmp.Version2c},
		"v3 is rejected":        {input: "3", wantErr: true},
		"garbage is rejected":   {input: "x", wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := ParseSNMPVersion(test.input)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, v)
		})
	}
}

func TestOIDSuffix(t *testing.T) {
	tests := map[string]struct {
		oid, prefix string
		want        string
		wantOK      bool
	}{
		"leading dot is ignored": {
			oid:    ".1.0.8802.1.1.2.1.4.1.1.9.0.5.1",
			prefix: "1.0.8802.1.1.2.1.4.1.1.9",
			want:   "0.5.1",
			wantOK: true,
		},
		"sibling column is not a match": {
			oid:    "1.0.8802.1.1.2.1.4.1.1.10.0.5.1",
			prefix: "1.0.8802.1.1.2.1.4.1.1.1",
		},
		"prefix itself is not a match": {
			oid:    "1.0.8802.1.1.2.1.4.1.1.9",
			prefix: "1.0.8802.1.1.2.1.4.1.1.9",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := OIDSuffix(test.oid, test.prefix)
			assert.Equal(t, test.wantOK, ok)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestPduToString(t *testing.T) {
	tests := map[string]struct {
		pdu     gosnmp.SnmpPDU
		want    string
		wantErr bool
	}{
		"printable octet string": {
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("core-sw1")},
			want: "core-sw1",
		},
		"binary octet string is hex encoded": {
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte{0x00, 0x1a, 0x2b}},
			want: "001a2b",
		},
		"integer": {
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: 4},
			want: "4",
		},
		"no such object": {
			pdu:     gosnmp.SnmpPDU{Type: gosnmp.NoSuchObject},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := PduToString(test.pdu)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestIsPduWithData(t *testing.T) {
	assert.True(t, IsPduWithData(gosnmp.SnmpPDU{Type: gosnmp.OctetString}))
	assert.False(t, IsPduWithData(gosnmp.SnmpPDU{Type: gosnmp.NoSuchInstance}))
	assert.False(t, IsPduWithData(gosnmp.SnmpPDU{Type: gosnmp.EndOfMibView}))
}
