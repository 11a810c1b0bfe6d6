// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"
)

// RootCommand is the base CLI command main.go executes.
var RootCommand = &cobra.Command{
	Use:           "scriptrt",
	Short:         "scriptrt runtime",
	Long:          "Load plugins, validate, and execute a scriptrt script.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command returns rootCommand with every scriptrt subcommand attached,
// building a fresh root if none is supplied.
func Command(rootCommand *cobra.Command, brand string) *cobra.Command {
	if rootCommand == nil {
		rootCommand = &cobra.Command{
			Use:   brand,
			Short: "scriptrt runtime",
			Long:  "Load plugins, validate, and execute a scriptrt script.",
		}
	}

	initRun(rootCommand)
	initVersion(rootCommand)
	return rootCommand
}

func init() {
	Command(RootCommand, "scriptrt")
}
