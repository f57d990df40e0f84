// SPDX-License-Identifier: GPL-3.0-or-later

// Package lldp reads LLDP-MIB local system data and the remote neighbor table
// from an SNMP agent.
package lldp

import (
	"context"
	"log/slog"
	"sync"

	"github.com/netdata/netdata/go/lldptopo/logger"
)

type State int

const (
	StateUninitialized State = iota
	StateLocalFetchPending
	StateRemoteFetchPending
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLocalFetchPending:
		return "local_fetch_pending"
	case StateRemoteFetchPending:
		return "remote_fetch_pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	opLocalGet   = "local system GET"
	opRemoteWalk = "remote table walk"
)

// DefaultMaxRepetitions is the walk batch size. Some agents return broken
// tables when asked for more than one entry per request.
const DefaultMaxRepetitions = 1

type Stats struct {
	Rows           int `json:"rows"`
	PartialRows    int `json:"partial_rows"`
	SkippedEntries int `json:"skipped_entries"`
}

// Client fetches LLDP data from one agent over a Session. Use one Client per agent.
type Client struct {
	log  *logger.Logger
	sess Session

	maxRepetitions uint32

	mu     sync.Mutex
	state  State
	err    error
	done   chan struct{}
	local  LocalSystem
	remote RemoteTable
	stats  Stats
}

func New(sess Session, log *logger.Logger) *Client {
	return &Client{
		log:            log.With(slog.String("component", "lldp")),
		sess:           sess,
		maxRepetitions: DefaultMaxRepetitions,
	}
}

// SetMaxRepetitions sets the number of entries requested per walk round trip. Zero restores the default.
func (c *Client) SetMaxRepetitions(n uint32) {
	if n == 0 {
		n = DefaultMaxRepetitions
	}
	c.mu.Lock()
	c.maxRepetitions = n
	c.mu.Unlock()
}

// Init fetches the local system data, then the remote table.
//
// On a blocking session Init returns once both phases completed. On a
// non-blocking session it returns after the first request is queued; the
// caller drives the session's dispatch loop and uses Wait for the outcome.
// A Ready client is only fetched again when reload is set.
func (c *Client) Init(reload bool) error {
	c.mu.Lock()
	switch c.state {
	case StateReady:
		if !reload {
			c.mu.Unlock()
			return ErrAlreadyInitialized
		}
	case StateLocalFetchPending, StateRemoteFetchPending:
		c.mu.Unlock()
		return ErrInitInProgress
	}
	c.state = StateLocalFetchPending
	c.err = nil
	c.done = make(chan struct{})
	c.mu.Unlock()

	c.log.Debugf("fetching local system data (reload=%v)", reload)

	err := c.send(opLocalGet, func(fn ResponseFunc) (*Response, error) {
		return c.sess.SendGet(LocalSystemOIDs(), fn)
	}, c.onLocalResponse)

	if c.sess.Nonblocking() {
		return err
	}
	return c.Err()
}

// Wait blocks until the pending Init reaches Ready or Failed.
func (c *Client) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return ErrUninitialized
	}

	select {
	case <-done:
		return c.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the cause of the last failed Init.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// LocalSystemData returns a copy of the local system record.
func (c *Client) LocalSystemData() (LocalSystem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return LocalSystem{}, ErrUninitialized
	}
	return c.local, nil
}

// RemoteNeighborTable returns a copy of the neighbor table. The table is
// empty, not nil, when the agent reports no neighbors.
func (c *Client) RemoteNeighborTable() (RemoteTable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return nil, ErrUninitialized
	}
	return c.remote.Clone(), nil
}

// send issues one request and routes its outcome to next, inline for blocking
// sessions or from the dispatch loop otherwise. The returned error is set only
// when a non-blocking session refused the request.
func (c *Client) send(op string, req func(ResponseFunc) (*Response, error), next ResponseFunc) error {
	if !c.sess.Nonblocking() {
		next(req(nil))
		return nil
	}

	if _, err := req(next); err != nil {
		err = &TransportError{Op: op, Err: err}
		c.fail(err)
		return err
	}
	return nil
}

func (c *Client) onLocalResponse(resp *Response, err error) {
	if err := c.checkResponse(opLocalGet, resp, err); err != nil {
		c.fail(err)
		return
	}

	local, err := decodeLocalSystem(resp.Variables)
	if err != nil {
		c.fail(err)
		return
	}

	c.mu.Lock()
	if c.state != StateLocalFetchPending {
		c.mu.Unlock()
		return
	}
	c.local = local
	c.state = StateRemoteFetchPending
	maxReps := c.maxRepetitions
	c.mu.Unlock()

	c.log.Debugf("local system '%s' (chassis %s), walking remote table", local.SysName, local.ChassisID)

	_ = c.send(opRemoteWalk, func(fn ResponseFunc) (*Response, error) {
		return c.sess.SendWalk(OidRemTable, maxReps, fn)
	}, c.onRemoteResponse)
}

func (c *Client) onRemoteResponse(resp *Response, err error) {
	if err := c.checkResponse(opRemoteWalk, resp, err); err != nil {
		c.fail(err)
		return
	}

	raw, skipped := decodeRemoteColumns(resp.Variables, c.log)
	table, partial := buildRemoteTable(raw)

	for _, p := range partial {
		c.log.Warning(p)
	}

	c.mu.Lock()
	if !c.pending() {
		c.mu.Unlock()
		return
	}
	c.remote = table
	c.stats = Stats{
		Rows:           table.Len(),
		PartialRows:    len(partial),
		SkippedEntries: skipped,
	}
	c.state = StateReady
	close(c.done)
	c.mu.Unlock()

	c.log.Debugf("remote table: %d neighbors on %d ports", table.Len(), len(table))
}

func (c *Client) checkResponse(op string, resp *Response, err error) error {
	if err == nil {
		err = c.sess.LastError()
	}
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if resp == nil {
		return &TransportError{Op: op, Err: ErrNoResponse}
	}
	return nil
}

func (c *Client) fail(err error) {
	c.mu.Lock()
	if !c.pending() {
		c.mu.Unlock()
		return
	}
	c.state = StateFailed
	c.err = err
	close(c.done)
	c.mu.Unlock()

	c.log.Error(err)
}

// pending must be called with mu held.
func (c *Client) pending() bool {
	return c.state == StateLocalFetchPending || c.state == StateRemoteFetchPending
}
