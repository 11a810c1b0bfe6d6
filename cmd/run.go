// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scriptrt/scriptrt/cmd/internal/env"
	"github.com/scriptrt/scriptrt/ini"
	"github.com/scriptrt/scriptrt/logging"
	"github.com/scriptrt/scriptrt/parser"
	"github.com/scriptrt/scriptrt/pluginmgr"
	"github.com/scriptrt/scriptrt/reader"
	"github.com/scriptrt/scriptrt/runner"
	"github.com/scriptrt/scriptrt/validator"
)

const defaultSectionCacheSize = 128

func initRun(rootCommand *cobra.Command) {
	var pluginDir string
	var configFile string
	var logLevel string
	var logFormat string
	var watch bool

	runCommand := &cobra.Command{
		Use:   "run <script>",
		Short: "Load, validate and execute a scriptrt script",
		Long: `Run loads a script, declares its plugins, resolves their
configuration from an INI file, verifies the script's jump, label and
plugin-usage consistency, then executes it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.CmdFlags.CheckEnvironmentVariables(cmd); err != nil {
				return err
			}

			level, err := logging.GetLevel(logLevel)
			if err != nil {
				return err
			}
			logging.Configure(level, logFormat, "")

			return runScript(args[0], pluginDir, configFile, watch)
		},
	}

	runCommand.Flags().StringVarP(&pluginDir, "plugins", "p", ".", "directory to load plugin shared libraries from")
	runCommand.Flags().StringVarP(&configFile, "config", "c", "", "path to the INI configuration file")
	runCommand.Flags().StringVarP(&logLevel, "log-level", "l", "info", "set log level: debug, info, warn, error")
	runCommand.Flags().StringVarP(&logFormat, "log-format", "", "text", "set log format: text, json, json-pretty")
	runCommand.Flags().BoolVarP(&watch, "watch", "w", false, "log plugin directory changes observed while the script runs")

	rootCommand.AddCommand(runCommand)
}

func runScript(scriptPath, pluginDir, configFile string, watch bool) error {
	items, err := reader.Read(scriptPath)
	if err != nil {
		return errors.Wrap(err, "read script")
	}

	p := parser.New()
	if err := p.Parse(items); err != nil {
		return errors.Wrap(err, "parse script")
	}

	var resolver *ini.Resolver
	if configFile != "" {
		resolver, err = ini.Load(configFile)
		if err != nil {
			return errors.Wrap(err, "load ini config")
		}
	}

	pm, err := pluginmgr.New(pluginDir, resolver, defaultSectionCacheSize)
	if err != nil {
		return errors.Wrap(err, "create plugin manager")
	}
	defer pm.UnloadAll()

	if watch {
		watcher, err := pluginmgr.WatchDir(pluginDir, func(name string) {
			logging.Infof("plugin directory change observed for %s", name)
		})
		if err != nil {
			return errors.Wrap(err, "watch plugin directory")
		}
		defer watcher.Close()
	}

	if err := validator.Validate(items, pm); err != nil {
		return errors.Wrap(err, "validate script")
	}

	if err := runner.New(pm).Run(items); err != nil {
		return errors.Wrap(err, "run script")
	}

	return nil
}
