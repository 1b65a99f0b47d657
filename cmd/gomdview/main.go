// Package main is the entry point for the gomdview CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gomdview/internal/cli"
	"github.com/yaklabco/gomdview/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Failed and outdated documents were already reported; the error
		// only selects the exit code.
		if !errors.Is(err, cli.ErrRenderFailed) && !errors.Is(err, cli.ErrOutputsOutdated) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
