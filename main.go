// keyspace - password strength estimator.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"

	"github.com/jeranaias/keyspace/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	streams := cli.StdStreams()

	cmd, args, err := cli.Parse()
	if err == nil {
		err = cli.Run(context.Background(), cmd, args, streams)
	}
	if err != nil {
		cli.DisplayError(streams, err, cli.JSONMode(args), cmd.String())
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
