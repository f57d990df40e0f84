// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/netdata/netdata/go/lldptopo/logger"
	"github.com/netdata/netdata/go/lldptopo/pkg/buildinfo"
	"github.com/netdata/netdata/go/lldptopo/pkg/cli"
	"github.com/netdata/netdata/go/lldptopo/pkg/discovery"
	"github.com/netdata/netdata/go/lldptopo/pkg/snmpsession"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("%s, version: %s\n", cli.Name, buildinfo.Version)
		return
	}

	if lvl := os.Getenv("LLDPDISCOVER_LOG_LEVEL"); lvl != "" {
		logger.Level.SetByName(lvl)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	log := logger.New()
	log.Debugf("%s: %s", cli.Name, buildinfo.Info())

	cfg, err := buildConfig(opts)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	r, err := discovery.NewRunner(cfg, log)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, r, time.Duration(opts.Every)*time.Second, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(err)
		r.Close()
		os.Exit(1)
	}
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args)
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}

func buildConfig(opts *cli.Option) (discovery.Config, error) {
	var cfg discovery.Config

	if opts.ConfigPath != "" {
		var err error
		if cfg, err = discovery.LoadConfig(opts.ConfigPath); err != nil {
			return cfg, err
		}
	} else {
		if len(opts.Agents) == 0 {
			return cfg, errors.New("nothing to query: use --config or --agent")
		}
		cfg = discovery.DefaultConfig()
		for _, host := range opts.Agents {
			sc := snmpsession.DefaultConfig()
			sc.Hostname = host
			sc.Community = opts.Community
			sc.Options.Version = opts.SNMPVersion
			sc.Options.MaxRepetitions = 0
			cfg.Agents = append(cfg.Agents, discovery.AgentConfig{Config: sc})
		}
	}

	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.MaxRepetitions > 0 {
		cfg.MaxRepetitions = opts.MaxRepetitions
		for i := range cfg.Agents {
			cfg.Agents[i].Options.MaxRepetitions = opts.MaxRepetitions
		}
	}

	return cfg, cfg.Prepare()
}

// run performs one discovery round, or one every 'every' until ctx is done.
func run(ctx context.Context, r *discovery.Runner, every time.Duration, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	for {
		results := r.Run(ctx)
		if err := enc.Encode(results); err != nil {
			return err
		}

		if every <= 0 {
			return roundError(results)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(every):
		}
	}
}

func roundError(results []discovery.AgentResult) error {
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("agent '%s': %w", res.Name, res.Err))
		}
	}
	if len(errs) == len(results) {
		return errors.Join(errs...)
	}
	return nil
}
