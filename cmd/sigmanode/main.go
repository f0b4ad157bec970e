// Package main is the entry point for the sigmanode CLI.
//
// sigmanode drives the CloudSigma resource handler from the command line:
// it creates, drops and inspects single nodes the way the orchestrator
// does, which is useful for testing handler configurations and node
// definitions.
//
// Commands: create, drop, state, address, validate, version.
//
// For detailed usage information, run:
//
//	sigmanode --help
package main

import (
	"fmt"
	"os"

	"github.com/occopus/sigmanode/cmd/sigmanode/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
