// Package config defines the CLI structure and configuration for hidrd.
package config

import (
	"github.com/hidtools/hidrd/internal/cmd"
)

type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"HIDRD_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" env:"HIDRD_LOG_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Dump   cmd.Dump          `cmd:"" help:"Prepare the report descriptor and print its bytes and lengths"`
	Layout cmd.Layout        `cmd:"" help:"List the configurable controls of the report descriptor"`
	Set    cmd.Set           `cmd:"" help:"Apply control overrides, then prepare and print the descriptor"`
	Config cmd.ConfigCommand `cmd:"" help:"Manage hidrd configuration files"`
}
