// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/netdata/netdata/go/lldptopo/logger"
	"github.com/netdata/netdata/go/lldptopo/pkg/snmputils"
)

// rowKey identifies an lldpRemTable row. The timeMark part of the index is not
// part of the identity.
type rowKey struct {
	localPort int
	remIndex  int
}

func (k rowKey) compare(other rowKey) int {
	if c := cmp.Compare(k.localPort, other.localPort); c != 0 {
		return c
	}
	return cmp.Compare(k.remIndex, other.remIndex)
}

// rawColumnTable is the walk result grouped by column name, then by row.
type rawColumnTable map[string]map[rowKey]gosnmp.SnmpPDU

func (t rawColumnTable) add(column string, key rowKey, pdu gosnmp.SnmpPDU) {
	if t[column] == nil {
		t[column] = make(map[rowKey]gosnmp.SnmpPDU)
	}
	t[column][key] = pdu
}

// rowKeys returns the union of row keys across all columns, sorted.
func (t rawColumnTable) rowKeys() []rowKey {
	seen := make(map[rowKey]bool)
	for _, rows := range t {
		for k := range rows {
			seen[k] = true
		}
	}
	return slices.SortedFunc(maps.Keys(seen), rowKey.compare)
}

// parseRemIndex decodes the lldpRemTable index {timeMark, localPortNum, remIndex}.
// Agents that leave out the timeMark are accepted, components past the third are ignored.
func parseRemIndex(index string) (key rowKey, extra bool, err error) {
	parts := strings.Split(index, ".")

	switch {
	case len(parts) < 2:
		return key, false, fmt.Errorf("index '%s': want at least 2 components", index)
	case len(parts) == 2:
		// no timeMark
	default:
		extra = len(parts) > 3
		parts = parts[1:3]
	}

	port, err := strconv.Atoi(parts[0])
	if err != nil || port < 0 {
		return key, false, fmt.Errorf("index '%s': bad local port number '%s'", index, parts[0])
	}
	rem, err := strconv.Atoi(parts[1])
	if err != nil || rem < 0 {
		return key, false, fmt.Errorf("index '%s': bad remote index '%s'", index, parts[1])
	}

	return rowKey{localPort: port, remIndex: rem}, extra, nil
}

// decodeRemoteColumns splits every walked variable into column and row key.
// Variables outside the nine known columns or with an unusable index are skipped.
func decodeRemoteColumns(pdus []gosnmp.SnmpPDU, log *logger.Logger) (rawColumnTable, int) {
	raw := make(rawColumnTable, len(remColumns))
	var skipped int

	for _, pdu := range pdus {
		if !snmputils.IsPduWithData(pdu) {
			continue
		}

		suffix, ok := snmputils.OIDSuffix(pdu.Name, OidRemEntry)
		if !ok {
			skipped++
			continue
		}

		colNum, index, ok := strings.Cut(suffix, ".")
		if !ok {
			skipped++
			continue
		}

		col, ok := remColumnsByNumber[colNum]
		if !ok {
			continue
		}

		key, extra, err := parseRemIndex(index)
		if err != nil {
			log.Debugf("skipping '%s': %v", pdu.Name, err)
			skipped++
			continue
		}
		if extra {
			log.Debugf("'%s': ignoring index components past remIndex", pdu.Name)
		}

		raw.add(col.name, key, pdu)
	}

	return raw, skipped
}

// buildRemoteTable transposes the column table into neighbor rows. A row that is
// missing columns is kept with zero values and reported as partial.
func buildRemoteTable(raw rawColumnTable) (RemoteTable, []*PartialResponseError) {
	table := make(RemoteTable)
	var partial []*PartialResponseError

	for _, key := range raw.rowKeys() {
		r := rowReader{raw: raw, key: key}

		n := RemoteNeighbor{
			LocalPort:        key.localPort,
			RemIndex:         key.remIndex,
			ChassisIDSubtype: ChassisIDSubtype(r.intAt(colRemChassisIDSubtype)),
			PortIDSubtype:    PortIDSubtype(r.intAt(colRemPortIDSubtype)),
			PortDesc:         r.stringAt(colRemPortDesc),
			SysName:          r.stringAt(colRemSysName),
			SysDesc:          r.stringAt(colRemSysDesc),
			CapSupported:     r.capsAt(colRemSysCapSupported),
			CapEnabled:       r.capsAt(colRemSysCapEnabled),
		}
		n.ChassisID = formatChassisID(n.ChassisIDSubtype, r.bytesAt(colRemChassisID))
		n.PortID = formatPortID(n.PortIDSubtype, r.bytesAt(colRemPortID))

		if len(r.missing) > 0 {
			slices.SortFunc(r.missing, func(a, b string) int { return columnOrder(a) - columnOrder(b) })
			n.Missing = r.missing
			partial = append(partial, &PartialResponseError{
				LocalPort: key.localPort,
				RemIndex:  key.remIndex,
				Missing:   slices.Clone(r.missing),
			})
		}

		table.set(n)
	}

	return table, partial
}

func columnOrder(name string) int {
	return slices.IndexFunc(remColumns, func(c remColumn) bool { return c.name == name })
}

// rowReader reads typed values of one row and records the columns it could not use.
type rowReader struct {
	raw     rawColumnTable
	key     rowKey
	missing []string
}

func (r *rowReader) pdu(col string) (gosnmp.SnmpPDU, bool) {
	pdu, ok := r.raw[col][r.key]
	if !ok {
		r.missing = append(r.missing, col)
	}
	return pdu, ok
}

func (r *rowReader) intAt(col string) int {
	pdu, ok := r.pdu(col)
	if !ok {
		return 0
	}
	v, err := snmputils.PduToInt(pdu)
	if err != nil {
		r.missing = append(r.missing, col)
		return 0
	}
	return int(v)
}

func (r *rowReader) bytesAt(col string) []byte {
	pdu, ok := r.pdu(col)
	if !ok {
		return nil
	}
	bs, err := snmputils.PduToBytes(pdu)
	if err != nil {
		r.missing = append(r.missing, col)
		return nil
	}
	return bs
}

func (r *rowReader) stringAt(col string) string {
	pdu, ok := r.pdu(col)
	if !ok {
		return ""
	}
	s, err := snmputils.PduToString(pdu)
	if err != nil {
		r.missing = append(r.missing, col)
		return ""
	}
	return s
}

func (r *rowReader) capsAt(col string) Capabilities {
	pdu, ok := r.pdu(col)
	if !ok {
		return 0
	}
	caps, err := pduToCapabilities(pdu)
	if err != nil {
		r.missing = append(r.missing, col)
		return 0
	}
	return caps
}

func pduToCapabilities(pdu gosnmp.SnmpPDU) (Capabilities, error) {
	if v, err := snmputils.PduToInt(pdu); err == nil {
		return Capabilities(v), nil
	}
	bs, err := snmputils.PduToBytes(pdu)
	if err != nil {
		return 0, err
	}
	return decodeCapabilities(bs), nil
}
