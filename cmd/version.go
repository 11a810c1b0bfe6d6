// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func initVersion(rootCommand *cobra.Command) {
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Print the version of scriptrt",
		Long:  "Show version and build information for scriptrt.",
		Run: func(cmd *cobra.Command, args []string) {
			generateVersionOutput(os.Stdout)
		},
	}
	rootCommand.AddCommand(versionCommand)
}

func generateVersionOutput(out *os.File) {
	fmt.Fprintln(out, "Version: "+Version)
	fmt.Fprintln(out, "Go Version: "+runtime.Version())
}
