// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/ik5/podsplice/internal/cli"
	"github.com/ik5/podsplice/internal/config"
)

// Injected at build time via ldflags.
var version = "dev"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitUsage)
	}

	root := cli.RootCmd(cli.DefaultEnv(), version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "podsplice:", err)
		os.Exit(cli.ExitCode(err))
	}
}
