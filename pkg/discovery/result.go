// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"github.com/netdata/netdata/go/lldptopo/pkg/lldp"
)

// AgentResult is the outcome of one discovery round for one agent.
type AgentResult struct {
	Name      string                `json:"name"`
	Hostname  string                `json:"hostname"`
	GUID      string                `json:"guid"`
	Local     *lldp.LocalSystem     `json:"local,omitempty"`
	Neighbors []lldp.RemoteNeighbor `json:"neighbors"`
	Stats     lldp.Stats            `json:"stats"`
	Hash      uint64                `json:"hash,omitempty"`
	Changed   bool                  `json:"changed"`
	Error     string                `json:"error,omitempty"`

	Err error `json:"-"`
}

func (r *AgentResult) setErr(err error) {
	r.Err = err
	r.Error = err.Error()
}

// topology is the part of a result that change detection looks at.
type topology struct {
	Local     lldp.LocalSystem
	Neighbors []lldp.RemoteNeighbor
}
