// SPDX-License-Identifier: GPL-3.0-or-later

package snmpsession

import (
	"github.com/gosnmp/gosnmp"

	"github.com/netdata/netdata/go/lldptopo/logger"
	"github.com/netdata/netdata/go/lldptopo/pkg/lldp"
)

// Sync is a blocking session: every request returns its response to the caller.
type Sync struct {
	*exchanger
}

func NewSync(client gosnmp.Handler, log *logger.Logger) *Sync {
	return &Sync{exchanger: newExchanger(client, log)}
}

func (s *Sync) Nonblocking() bool { return false }

func (s *Sync) SendGet(oids []string, _ lldp.ResponseFunc) (*lldp.Response, error) {
	return s.exec(func() (*lldp.Response, error) { return s.get(oids) })
}

func (s *Sync) SendWalk(rootOID string, maxRepetitions uint32, _ lldp.ResponseFunc) (*lldp.Response, error) {
	return s.exec(func() (*lldp.Response, error) { return s.walk(rootOID, maxRepetitions) })
}
