// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netdata/netdata/go/lldptopo/pkg/snmpsession"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("testdata/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, ModeDeferred, cfg.Mode)
	assert.Equal(t, 4, cfg.Workers)
	require.Len(t, cfg.Agents, 2)

	core := cfg.Agents[0]
	assert.Equal(t, "core", core.Name)
	assert.Equal(t, "private", core.Community)
	assert.Equal(t, "1", core.Options.Version)
	assert.Equal(t, 2, core.Options.Timeout)
	assert.Equal(t, 161, core.Options.Port)
	assert.Equal(t, 1, core.Options.MaxRepetitions)
	assert.Equal(t, uuid.NewSHA1(uuid.NameSpaceDNS, []byte("192.0.2.1")).String(), core.GUID)

	second := cfg.Agents[1]
	assert.Equal(t, "192.0.2.2", second.Name)
	assert.Equal(t, "public", second.Community)
	assert.Equal(t, 5, second.Options.MaxRepetitions)
	assert.Equal(t, "3a6a2b8e-5c0f-4c3e-9a52-0f8d8b6f1a10", second.GUID)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"missing file": "testdata/no-such-file.yaml",
		"invalid mode": "testdata/config-invalid.yaml",
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Prepare(t *testing.T) {
	agent := func(name, host string) AgentConfig {
		return AgentConfig{Name: name, Config: snmpsession.Config{Hostname: host}}
	}

	tests := map[string]struct {
		cfg     Config
		wantErr bool
	}{
		"defaults are applied": {
			cfg: Config{Agents: []AgentConfig{agent("", "192.0.2.1")}},
		},
		"no agents": {
			cfg:     Config{},
			wantErr: true,
		},
		"missing hostname": {
			cfg:     Config{Agents: []AgentConfig{agent("a", "")}},
			wantErr: true,
		},
		"duplicate names": {
			cfg:     Config{Agents: []AgentConfig{agent("a", "192.0.2.1"), agent("a", "192.0.2.2")}},
			wantErr: true,
		},
		"invalid GUID": {
			cfg: Config{Agents: []AgentConfig{
				{GUID: "not-a-guid", Config: snmpsession.Config{Hostname: "192.0.2.1"}},
			}},
			wantErr: true,
		},
		"SNMPv3 is rejected": {
			cfg: Config{Agents: []AgentConfig{
				{Config: snmpsession.Config{Hostname: "192.0.2.1", Options: snmpsession.OptionsConfig{Version: "3"}}},
			}},
			wantErr: true,
		},
		"unknown mode": {
			cfg:     Config{Mode: "async", Agents: []AgentConfig{agent("a", "192.0.2.1")}},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := test.cfg
			err := cfg.Prepare()

			if test.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, ModeSync, cfg.Mode)
			assert.Equal(t, defaultWorkers, cfg.Workers)
			a := cfg.Agents[0]
			assert.Equal(t, a.Hostname, a.Name)
			assert.Equal(t, "public", a.Community)
			assert.Equal(t, 1, a.Options.MaxRepetitions)
			assert.NoError(t, uuid.Validate(a.GUID))
		})
	}
}
