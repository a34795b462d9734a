// Package main provides the entry point for spobatchctl, the spobatch
// demo CLI.
package main

import (
	"os"

	"github.com/batchwerk/spobatch/cmd/spobatchctl/commands"
	"github.com/batchwerk/spobatch/cmd/spobatchctl/config"
	"github.com/batchwerk/spobatch/cmd/spobatchctl/handlers"
)

func init() {
	rootCmd := commands.RootCmd
	rootCmd.Version = config.Version

	commands.SetupCommands()
	commands.SetupGlobalFlags(rootCmd, &config.Global.LogLevel, &config.Global.Timeout,
		&config.Global.Verbose, &config.Global.Output)

	demoCmd := commands.GetDemoCommand()
	commands.SetupDemoFlags(demoCmd)
	demoCmd.RunE = handlers.HandleDemo
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
