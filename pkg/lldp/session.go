// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

import "github.com/gosnmp/gosnmp"

// Response is a completed GET or walk.
type Response struct {
	Variables []gosnmp.SnmpPDU
}

// ResponseFunc receives the outcome of a deferred request.
type ResponseFunc func(resp *Response, err error)

// Session is the SNMP transport used by a Client.
//
// A blocking session ignores fn and returns the response. A non-blocking session
// requires fn, returns (nil, nil) once the request is queued and later invokes fn
// from its dispatch loop.
type Session interface {
	Nonblocking() bool
	SendGet(oids []string, fn ResponseFunc) (*Response, error)
	SendWalk(rootOID string, maxRepetitions uint32, fn ResponseFunc) (*Response, error)
	// LastError returns the transport failure of the last completed request, if any.
	LastError() error
}
