// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/netdata/netdata/go/lldptopo/pkg/lldp"
	"github.com/netdata/netdata/go/lldptopo/pkg/snmpsession"
	"github.com/netdata/netdata/go/lldptopo/pkg/snmputils"
)

const (
	ModeSync     = "sync"
	ModeDeferred = "deferred"
)

const defaultWorkers = 8

type (
	Config struct {
		Mode           string        `yaml:"mode,omitempty" json:"mode"`
		MaxRepetitions int           `yaml:"max_repetitions,omitempty" json:"max_repetitions"`
		Workers        int           `yaml:"workers,omitempty" json:"workers"`
		Agents         []AgentConfig `yaml:"agents" json:"agents"`
	}
	AgentConfig struct {
		Name               string `yaml:"name,omitempty" json:"name"`
		GUID               string `yaml:"guid,omitempty" json:"guid"`
		snmpsession.Config `yaml:",inline"`
	}
)

func DefaultConfig() Config {
	return Config{
		Mode:           ModeSync,
		MaxRepetitions: lldp.DefaultMaxRepetitions,
		Workers:        defaultWorkers,
	}
}

func LoadConfig(path string) (Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse '%s': %v", path, err)
	}

	if err := cfg.Prepare(); err != nil {
		return Config{}, fmt.Errorf("config '%s': %v", path, err)
	}

	return cfg, nil
}

// Prepare applies defaults and validates the configuration.
func (c *Config) Prepare() error {
	c.applyDefaults()
	return c.Validate()
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeSync
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.MaxRepetitions <= 0 {
		c.MaxRepetitions = lldp.DefaultMaxRepetitions
	}

	for i := range c.Agents {
		a := &c.Agents[i]
		if a.Name == "" {
			a.Name = a.Hostname
		}
		if a.Options.MaxRepetitions <= 0 {
			a.Options.MaxRepetitions = c.MaxRepetitions
		}
		a.ApplyDefaults()
		if a.GUID == "" && a.Hostname != "" {
			a.GUID = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(a.Hostname)).String()
		}
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeSync && c.Mode != ModeDeferred {
		return fmt.Errorf("invalid mode '%s' (want '%s' or '%s')", c.Mode, ModeSync, ModeDeferred)
	}
	if len(c.Agents) == 0 {
		return errors.New("no agents configured")
	}

	var errs []error
	seen := make(map[string]bool)

	for i, a := range c.Agents {
		if a.Hostname == "" {
			errs = append(errs, fmt.Errorf("agent #%d: 'hostname' is required", i+1))
			continue
		}
		if seen[a.Name] {
			errs = append(errs, fmt.Errorf("agent '%s': duplicate name", a.Name))
		}
		seen[a.Name] = true

		if a.GUID != "" {
			if err := uuid.Validate(a.GUID); err != nil {
				errs = append(errs, fmt.Errorf("agent '%s': invalid GUID '%s': %v", a.Name, a.GUID, err))
			}
		}
		if _, err := snmputils.ParseSNMPVersion(a.Options.Version); err != nil {
			errs = append(errs, fmt.Errorf("agent '%s': %v", a.Name, err))
		}
	}

	return errors.Join(errs...)
}
