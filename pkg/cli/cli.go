// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"github.com/jessevdk/go-flags"
)

const Name = "lldpdiscover"

// Option defines command line options.
type Option struct {
	ConfigPath     string   `short:"c" long:"config" description:"YAML file with the agents to query"`
	Agents         []string `short:"a" long:"agent" description:"agent hostname to query (repeatable), ignored with --config"`
	Community      string   `long:"community" description:"SNMP community for --agent hosts" default:"public"`
	SNMPVersion    string   `long:"snmp-version" description:"SNMP version for --agent hosts (1 or 2c)" default:"2c"`
	Mode           string   `long:"mode" description:"request dispatch mode" choice:"sync" choice:"deferred"`
	MaxRepetitions int      `long:"max-repetitions" description:"entries per bulk request in remote table walks"`
	Workers        int      `long:"workers" description:"agents queried concurrently"`
	Every          int      `short:"e" long:"every" description:"repeat discovery every N seconds (0 runs once)" default:"0"`
	Debug          bool     `short:"d" long:"debug" description:"debug mode"`
	Version        bool     `short:"v" long:"version" description:"display the version and exit"`
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = Name
	parser.Usage = "[OPTIONS] [agent...]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	if len(rest) > 1 {
		opt.Agents = append(opt.Agents, rest[1:]...)
	}

	return opt, nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
