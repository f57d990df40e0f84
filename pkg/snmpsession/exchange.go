// SPDX-License-Identifier: GPL-3.0-or-later

package snmpsession

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gosnmp/gosnmp"

	"github.com/netdata/netdata/go/lldptopo/logger"
	"github.com/netdata/netdata/go/lldptopo/pkg/lldp"
	"github.com/netdata/netdata/go/lldptopo/pkg/snmputils"
)

// exchanger runs requests over a gosnmp handler and remembers the last failure.
type exchanger struct {
	log    *logger.Logger
	client gosnmp.Handler

	mu      sync.Mutex
	lastErr error
}

func newExchanger(client gosnmp.Handler, log *logger.Logger) *exchanger {
	return &exchanger{
		log:    log.With(slog.String("component", "snmp session"), slog.String("target", client.Target())),
		client: client,
	}
}

func (e *exchanger) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

func (e *exchanger) exec(fn func() (*lldp.Response, error)) (*lldp.Response, error) {
	resp, err := fn()

	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (e *exchanger) get(oids []string) (*lldp.Response, error) {
	resp := &lldp.Response{}

	for chunk := range slices.Chunk(oids, max(e.client.MaxOids(), 1)) {
		pkt, err := e.client.Get(chunk)
		if err != nil {
			return nil, err
		}
		if pkt == nil {
			return nil, lldp.ErrNoResponse
		}
		if pkt.Error != gosnmp.NoError {
			return nil, fmt.Errorf("agent error '%v' (index %d)", pkt.Error, pkt.ErrorIndex)
		}

		for _, pdu := range pkt.Variables {
			if snmputils.IsPduWithData(pdu) {
				resp.Variables = append(resp.Variables, pdu)
			}
		}
	}

	e.log.Debugf("GET %d OIDs: %d values", len(oids), len(resp.Variables))

	return resp, nil
}

// walk uses GETBULK with the given max-repetitions on v2c and GETNEXT on v1.
// The handler's own max-repetitions setting is restored afterwards.
func (e *exchanger) walk(rootOID string, maxRepetitions uint32) (*lldp.Response, error) {
	if maxRepetitions == 0 {
		maxRepetitions = 1
	}

	var pdus []gosnmp.SnmpPDU
	var err error

	if e.client.Version() == gosnmp.Version1 {
		pdus, err = e.client.WalkAll(rootOID)
	} else {
		prev := e.client.MaxRepetitions()
		e.client.SetMaxRepetitions(maxRepetitions)
		pdus, err = e.client.BulkWalkAll(rootOID)
		e.client.SetMaxRepetitions(prev)
	}
	if err != nil {
		return nil, err
	}

	resp := &lldp.Response{Variables: make([]gosnmp.SnmpPDU, 0, len(pdus))}
	for _, pdu := range pdus {
		if snmputils.IsPduWithData(pdu) {
			resp.Variables = append(resp.Variables, pdu)
		}
	}

	e.log.Debugf("walk '%s' (max repetitions %d): %d values", rootOID, maxRepetitions, len(resp.Variables))

	return resp, nil
}
