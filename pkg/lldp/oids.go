// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

// LLDP-MIB (IEEE 802.1AB) objects.
const (
	OidLocChassisIDSubtype = "1.0.8802.1.1.2.1.3.1.0"
	OidLocChassisID        = "1.0.8802.1.1.2.1.3.2.0"
	OidLocSysName          = "1.0.8802.1.1.2.1.3.3.0"
	OidLocSysDesc          = "1.0.8802.1.1.2.1.3.4.0"
	OidLocSysCapSupported  = "1.0.8802.1.1.2.1.3.5.0"
	OidLocSysCapEnabled    = "1.0.8802.1.1.2.1.3.6.0"

	OidRemTable            = "1.0.8802.1.1.2.1.4.1"
	OidRemEntry            = "1.0.8802.1.1.2.1.4.1.1"
	OidRemChassisIDSubtype = "1.0.8802.1.1.2.1.4.1.1.4"
	OidRemChassisID        = "1.0.8802.1.1.2.1.4.1.1.5"
	OidRemPortIDSubtype    = "1.0.8802.1.1.2.1.4.1.1.6"
	OidRemPortID           = "1.0.8802.1.1.2.1.4.1.1.7"
	OidRemPortDesc         = "1.0.8802.1.1.2.1.4.1.1.8"
	OidRemSysName          = "1.0.8802.1.1.2.1.4.1.1.9"
	OidRemSysDesc          = "1.0.8802.1.1.2.1.4.1.1.10"
	OidRemSysCapSupported  = "1.0.8802.1.1.2.1.4.1.1.11"
	OidRemSysCapEnabled    = "1.0.8802.1.1.2.1.4.1.1.12"
)

var localSystemOIDs = []string{
	OidLocChassisIDSubtype,
	OidLocChassisID,
	OidLocSysName,
	OidLocSysDesc,
	OidLocSysCapSupported,
	OidLocSysCapEnabled,
}

// LocalSystemOIDs returns the scalars requested by the local system GET.
func LocalSystemOIDs() []string {
	oids := make([]string, len(localSystemOIDs))
	copy(oids, localSystemOIDs)
	return oids
}

const (
	colRemChassisIDSubtype = "lldpRemChassisIdSubtype"
	colRemChassisID        = "lldpRemChassisId"
	colRemPortIDSubtype    = "lldpRemPortIdSubtype"
	colRemPortID           = "lldpRemPortId"
	colRemPortDesc         = "lldpRemPortDesc"
	colRemSysName          = "lldpRemSysName"
	colRemSysDesc          = "lldpRemSysDesc"
	colRemSysCapSupported  = "lldpRemSysCapSupported"
	colRemSysCapEnabled    = "lldpRemSysCapEnabled"
)

type remColumn struct {
	name string
	oid  string
}

// remColumns lists the lldpRemTable columns in MIB order.
var remColumns = []remColumn{
	{name: colRemChassisIDSubtype, oid: OidRemChassisIDSubtype},
	{name: colRemChassisID, oid: OidRemChassisID},
	{name: colRemPortIDSubtype, oid: OidRemPortIDSubtype},
	{name: colRemPortID, oid: OidRemPortID},
	{name: colRemPortDesc, oid: OidRemPortDesc},
	{name: colRemSysName, oid: OidRemSysName},
	{name: colRemSysDesc, oid: OidRemSysDesc},
	{name: colRemSysCapSupported, oid: OidRemSysCapSupported},
	{name: colRemSysCapEnabled, oid: OidRemSysCapEnabled},
}

// remColumnsByNumber maps the column sub-identifier below lldpRemEntry to its column.
var remColumnsByNumber = func() map[string]remColumn {
	m := make(map[string]remColumn, len(remColumns))
	for _, col := range remColumns {
		m[col.oid[len(OidRemEntry)+1:]] = col
	}
	return m
}()
