// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gohugoio/hashstructure"
	"github.com/gosnmp/gosnmp"
	"github.com/sourcegraph/conc/pool"

	"github.com/netdata/netdata/go/lldptopo/logger"
	"github.com/netdata/netdata/go/lldptopo/pkg/lldp"
	"github.com/netdata/netdata/go/lldptopo/pkg/snmpsession"
	"github.com/netdata/netdata/go/lldptopo/pkg/snmputils"
)

type HandlerFactory func(snmpsession.Config) (gosnmp.Handler, error)

// Runner queries every configured agent, each over its own session and client.
type Runner struct {
	log    *logger.Logger
	cfg    Config
	agents []*agent
}

func NewRunner(cfg Config, log *logger.Logger) (*Runner, error) {
	return newRunner(cfg, log, snmpsession.NewHandler)
}

func newRunner(cfg Config, log *logger.Logger, newHandler HandlerFactory) (*Runner, error) {
	if err := cfg.Prepare(); err != nil {
		return nil, err
	}

	r := &Runner{
		log: log.With(slog.String("component", "discovery")),
		cfg: cfg,
	}

	for _, ac := range cfg.Agents {
		r.agents = append(r.agents, &agent{
			log:        log.With(slog.String("agent", ac.Name)),
			cfg:        ac,
			deferred:   cfg.Mode == ModeDeferred,
			newHandler: newHandler,
		})
	}

	return r, nil
}

// Run performs one discovery round. Results are in configuration order.
func (r *Runner) Run(ctx context.Context) []AgentResult {
	results := make([]AgentResult, len(r.agents))

	p := pool.New().WithMaxGoroutines(r.cfg.Workers)
	for i, a := range r.agents {
		p.Go(func() {
			results[i] = a.discover(ctx)
		})
	}
	p.Wait()

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	r.log.Debugf("round finished: %d agents, %d failed", len(results), failed)

	return results
}

func (r *Runner) Close() {
	for _, a := range r.agents {
		a.close()
	}
}

type agent struct {
	log        *logger.Logger
	cfg        AgentConfig
	deferred   bool
	newHandler HandlerFactory

	handler gosnmp.Handler
	pump    *snmpsession.Deferred
	client  *lldp.Client

	hash   uint64
	hashed bool
}

func (a *agent) discover(ctx context.Context) AgentResult {
	res := AgentResult{
		Name:     a.cfg.Name,
		Hostname: a.cfg.Hostname,
		GUID:     a.cfg.GUID,
	}

	if err := a.setup(); err != nil {
		a.log.Error(err)
		res.setErr(err)
		return res
	}

	if err := a.fetch(ctx); err != nil {
		a.log.Errorf("LLDP discovery failed: %v", err)
		res.setErr(err)
		return res
	}

	local, err := a.client.LocalSystemData()
	if err != nil {
		res.setErr(err)
		return res
	}
	table, err := a.client.RemoteNeighborTable()
	if err != nil {
		res.setErr(err)
		return res
	}

	res.Local = &local
	res.Neighbors = table.All()
	res.Stats = a.client.Stats()

	hash, err := hashstructure.Hash(topology{Local: local, Neighbors: res.Neighbors}, nil)
	if err != nil {
		a.log.Warningf("failed to fingerprint topology: %v", err)
		res.Changed = true
		return res
	}

	res.Hash = hash
	res.Changed = !a.hashed || hash != a.hash
	a.hash, a.hashed = hash, true

	if res.Changed {
		a.log.Infof("topology changed: %d neighbors on %d ports", table.Len(), len(table.Ports()))
	}

	return res
}

func (a *agent) setup() error {
	if a.client != nil {
		return nil
	}

	h, err := a.newHandler(a.cfg.Config)
	if err != nil {
		return fmt.Errorf("SNMP client: %v", err)
	}
	if err := h.Connect(); err != nil {
		return fmt.Errorf("SNMP connect (%s): %v", snmputils.ConnInfo(h), err)
	}
	a.log.Debugf("connected: %s", snmputils.ConnInfo(h))

	var sess lldp.Session
	if a.deferred {
		a.pump = snmpsession.NewDeferred(h, a.log)
		sess = a.pump
	} else {
		sess = snmpsession.NewSync(h, a.log)
	}

	a.handler = h
	a.client = lldp.New(sess, a.log)
	a.client.SetMaxRepetitions(uint32(a.cfg.Options.MaxRepetitions))

	return nil
}

func (a *agent) fetch(ctx context.Context) error {
	if a.pump == nil {
		return a.client.Init(a.client.State() == lldp.StateReady)
	}

	pumpCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = a.pump.Run(pumpCtx)
	}()
	defer func() { cancel(); <-stopped }()

	switch st := a.client.State(); st {
	case lldp.StateLocalFetchPending, lldp.StateRemoteFetchPending:
		a.log.Debugf("resuming unfinished fetch (%s)", st)
	default:
		if err := a.client.Init(st == lldp.StateReady); err != nil {
			return err
		}
	}

	return a.client.Wait(ctx)
}

func (a *agent) close() {
	if a.pump != nil {
		a.pump.Close()
	}
	if a.handler != nil {
		if err := a.handler.Close(); err != nil {
			a.log.Debugf("close SNMP connection: %v", err)
		}
	}
}
