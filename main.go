// Package main is the entry point for the quickselect CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zjrosen/quickselect/cmd"
	"github.com/zjrosen/quickselect/internal/actions"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes follow grep: 1 when nothing matched, 2 for any other failure.
const (
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	cmd.SetVersion(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))

	err := cmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, actions.ErrNoMatch):
		os.Exit(exitNoMatch)
	default:
		os.Exit(exitError)
	}
}
