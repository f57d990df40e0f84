// SPDX-License-Identifier: GPL-3.0-or-later

package lldp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyInitialized = errors.New("lldp: already initialized, reload not requested")
	ErrInitInProgress     = errors.New("lldp: initialization in progress")
	ErrUninitialized      = errors.New("lldp: data not initialized")
	ErrNoResponse         = errors.New("no response")
	ErrMalformedResponse  = errors.New("malformed response")
)

// TransportError is a failure reported by the Session for one request.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("lldp: %s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// PartialResponseError describes a remote table row that is missing some columns.
type PartialResponseError struct {
	LocalPort int
	RemIndex  int
	Missing   []string
}

func (e *PartialResponseError) Error() string {
	return fmt.Sprintf("lldp: partial row (local port %d, neighbor %d): missing %s",
		e.LocalPort, e.RemIndex, strings.Join(e.Missing, ","))
}
