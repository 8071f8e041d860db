// Package config defines the command line surface of lspgen.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/lspgen/internal/cmd"
)

// Log holds the logging flags shared by every command.
type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn or error" default:"info" enum:"trace,debug,info,warn,error" env:"LSPGEN_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" type:"path" env:"LSPGEN_LOG_FILE"`
	RawFile string `help:"Dump every emitted unit to this file" type:"path" env:"LSPGEN_LOG_RAW_FILE"`
	Format  string `help:"Console log format; auto picks text on a terminal and JSON otherwise" default:"auto" enum:"auto,text,json" env:"LSPGEN_LOG_FORMAT"`
}

// CLI is the root command.
type CLI struct {
	Config  string           `help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"LSPGEN_CONFIG"`
	Version kong.VersionFlag `help:"Print the generator version and exit"`
	Log     Log              `embed:"" prefix:"log."`

	Generate  cmd.Generate      `cmd:"" help:"Generate C++ declarations and JSON bindings from a meta-model"`
	Check     cmd.Check         `cmd:"" help:"Fail when generated files are missing or out of date"`
	Tree      cmd.Tree          `cmd:"" help:"Print the resolved inheritance hierarchy"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
