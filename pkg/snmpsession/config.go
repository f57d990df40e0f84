// SPDX-License-Identifier: GPL-3.0-or-later

package snmpsession

import (
	"errors"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/netdata/netdata/go/lldptopo/pkg/snmputils"
)

type (
	Config struct {
		Hostname  string        `yaml:"hostname" json:"hostname"`
		Community string        `yaml:"community,omitempty" json:"community"`
		Options   OptionsConfig `yaml:"options,omitempty" json:"options"`
	}
	OptionsConfig struct {
		Port           int    `yaml:"port,omitempty" json:"port"`
		Retries        int    `yaml:"retries,omitempty" json:"retries"`
		Timeout        int    `yaml:"timeout,omitempty" json:"timeout"`
		Version        string `yaml:"version,omitempty" json:"version"`
		MaxOIDs        int    `yaml:"max_request_size,omitempty" json:"max_request_size"`
		MaxRepetitions int    `yaml:"max_repetitions,omitempty" json:"max_repetitions"`
	}
)

func DefaultConfig() Config {
	return Config{
		Community: "public",
		Options: OptionsConfig{
			Port:           161,
			Retries:        1,
			Timeout:        5,
			Version:        gosnmp.Version2c.String(),
			MaxOIDs:        60,
			MaxRepetitions: 1,
		},
	}
}

// ApplyDefaults fills zero fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()

	if c.Community == "" {
		c.Community = def.Community
	}
	if c.Options.Port <= 0 || c.Options.Port > 65535 {
		c.Options.Port = def.Options.Port
	}
	if c.Options.Retries <= 0 {
		c.Options.Retries = def.Options.Retries
	}
	if c.Options.Timeout <= 0 {
		c.Options.Timeout = def.Options.Timeout
	}
	if c.Options.Version == "" {
		c.Options.Version = def.Options.Version
	}
	if c.Options.MaxOIDs <= 0 {
		c.Options.MaxOIDs = def.Options.MaxOIDs
	}
	if c.Options.MaxRepetitions <= 0 {
		c.Options.MaxRepetitions = def.Options.MaxRepetitions
	}
}

// NewHandler returns a configured, not yet connected, gosnmp handler.
func NewHandler(cfg Config) (gosnmp.Handler, error) {
	if cfg.Hostname == "" {
		return nil, errors.New("SNMP hostname is required")
	}

	ver, err := snmputils.ParseSNMPVersion(cfg.Options.Version)
	if err != nil {
		return nil, err
	}

	client := gosnmp.NewHandler()

	client.SetTarget(cfg.Hostname)
	client.SetPort(uint16(cfg.Options.Port))
	client.SetRetries(cfg.Options.Retries)
	client.SetTimeout(time.Duration(cfg.Options.Timeout) * time.Second)
	client.SetMaxOids(cfg.Options.MaxOIDs)
	client.SetMaxRepetitions(uint32(max(cfg.Options.MaxRepetitions, 1)))
	client.SetCommunity(cfg.Community)
	client.SetVersion(ver)

	return client, nil
}
