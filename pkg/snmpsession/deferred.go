// SPDX-License-Identifier: GPL-3.0-or-later

package snmpsession

import (
	"context"
	"errors"
	"sync"

	"github.com/gosnmp/gosnmp"

	"github.com/netdata/netdata/go/lldptopo/logger"
	"github.com/netdata/netdata/go/lldptopo/pkg/lldp"
)

var (
	ErrNoCallback = errors.New("snmp session: deferred request without callback")
	ErrClosed     = errors.New("snmp session: closed")
)

// Deferred is a non-blocking session. Requests are queued with their callbacks
// and executed by whoever drives Dispatch or Run; callbacks run on that goroutine.
type Deferred struct {
	*exchanger

	qmu    sync.Mutex
	queue  []request
	closed bool
	wake   chan struct{}
}

type request struct {
	exec func() (*lldp.Response, error)
	fn   lldp.ResponseFunc
}

func NewDeferred(client gosnmp.Handler, log *logger.Logger) *Deferred {
	return &Deferred{
		exchanger: newExchanger(client, log),
		wake:      make(chan struct{}, 1),
	}
}

func (d *Deferred) Nonblocking() bool { return true }

func (d *Deferred) SendGet(oids []string, fn lldp.ResponseFunc) (*lldp.Response, error) {
	return nil, d.enqueue(request{
		exec: func() (*lldp.Response, error) { return d.get(oids) },
		fn:   fn,
	})
}

func (d *Deferred) SendWalk(rootOID string, maxRepetitions uint32, fn lldp.ResponseFunc) (*lldp.Response, error) {
	return nil, d.enqueue(request{
		exec: func() (*lldp.Response, error) { return d.walk(rootOID, maxRepetitions) },
		fn:   fn,
	})
}

// Pending returns the number of queued requests.
func (d *Deferred) Pending() int {
	d.qmu.Lock()
	defer d.qmu.Unlock()
	return len(d.queue)
}

// Dispatch executes queued requests, including those queued by callbacks while
// it runs, until the queue is empty. It returns the number of requests executed.
func (d *Deferred) Dispatch() int {
	var n int
	for {
		req, ok := d.next()
		if !ok {
			return n
		}
		req.fn(d.exec(req.exec))
		n++
	}
}

// Run dispatches requests as they arrive until ctx is done.
func (d *Deferred) Run(ctx context.Context) error {
	for {
		d.Dispatch()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.wake:
		}
	}
}

// Close rejects further requests. Already queued requests can still be dispatched.
func (d *Deferred) Close() {
	d.qmu.Lock()
	d.closed = true
	d.qmu.Unlock()
}

func (d *Deferred) enqueue(req request) error {
	if req.fn == nil {
		return ErrNoCallback
	}

	d.qmu.Lock()
	if d.closed {
		d.qmu.Unlock()
		return ErrClosed
	}
	d.queue = append(d.queue, req)
	d.qmu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}

	return nil
}

func (d *Deferred) next() (request, bool) {
	d.qmu.Lock()
	defer d.qmu.Unlock()

	if len(d.queue) == 0 {
		return request{}, false
	}
	req := d.queue[0]
	d.queue = d.queue[1:]

	return req, true
}
