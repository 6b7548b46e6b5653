// Package main provides the entry point for the lint-staged CLI.
package main

import (
	"context"
	"os"

	"github.com/rodrigobdz/lint-staged/internal/cli"
)

// Set at build time via -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := cli.Execute(context.Background(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	cli.CloseLogFile()
	if err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
