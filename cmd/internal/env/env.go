// Package env binds unset scriptrt command flags to SCRIPTRT_*
// environment variables via viper, so every flag --plugins, --config,
// --log-level, ... can also be set from the environment without cobra
// itself knowing anything about env vars. An explicit command-line
// value always takes precedence over the environment.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const globalPrefix = "scriptrt"

// CmdFlags is the environment-binding step cmd/run.go runs before
// handling a command; a package-level var rather than a bare
// function so a future test harness can substitute a fake without
// touching call sites.
var CmdFlags cmdFlags = cmdFlagsImpl{}

type cmdFlags interface {
	CheckEnvironmentVariables(command *cobra.Command) error
}

type cmdFlagsImpl struct{}

// CheckEnvironmentVariables fills in any flag on command left at its
// default by looking up SCRIPTRT_<FLAG> (or SCRIPTRT_<SUBCOMMAND>_<FLAG>
// for a non-root command) in the environment.
func (cmdFlagsImpl) CheckEnvironmentVariables(command *cobra.Command) error {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix(command))

	var errs []string
	command.Flags().VisitAll(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")
		if f.Changed || !v.IsSet(name) {
			return
		}
		if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(name))); err != nil {
			errs = append(errs, err.Error())
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("error mapping environment variables to command flags: %s", strings.Join(errs, "; "))
}

func envPrefix(command *cobra.Command) string {
	if command.Name() == globalPrefix {
		return globalPrefix
	}
	return globalPrefix + "_" + command.Name()
}
