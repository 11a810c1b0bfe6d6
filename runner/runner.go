// Package runner executes a validated token stream against a set of
// loaded, enabled plugins in two passes: a dry pass that exercises
// plugins before they're enabled, then the real, macro-aware pass that
// actually drives script behavior.
package runner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scriptrt/scriptrt/logging"
	"github.com/scriptrt/scriptrt/macro"
	"github.com/scriptrt/scriptrt/script"
)

// PluginManager is the subset of pluginmgr.Manager the Runner drives.
type PluginManager interface {
	EnablePlugins() error
	Dispatch(plugin, cmd, args string) (bool, error)
	GetData(plugin string) (string, error)
}

// Runner executes a token stream against pm. Each Run call gets a
// fresh correlation ID for log lines.
type Runner struct {
	pm PluginManager
}

// New returns a Runner bound to pm.
func New(pm PluginManager) *Runner {
	return &Runner{pm: pm}
}

// Run drives items through the dry pass, enables all plugins, then
// drives the real pass with macro substitution and jump handling.
func (r *Runner) Run(items []*script.Item) error {
	runID := uuid.New().String()
	log := logging.WithField("run_id", runID)

	if err := r.dryPass(items, log); err != nil {
		return err
	}

	if err := r.pm.EnablePlugins(); err != nil {
		return err
	}

	return r.realPass(items, log)
}

func (r *Runner) dryPass(items []*script.Item, log *logging.Entry) error {
	for _, it := range items {
		switch it.Kind {
		case script.KindCommand, script.KindVariableMacro:
			log.Debugf("dry dispatch %s.%s", it.Plugin, it.Command)
			if err := r.dispatch(it.Plugin, it.Command, it.Args); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) realPass(items []*script.Item, log *logging.Entry) error {
	runtime := script.MacroTable{}
	skipLabel := ""

	for _, it := range items {
		if skipLabel != "" {
			if it.Kind != script.KindLabel || it.Label != skipLabel {
				continue
			}
			skipLabel = ""
			continue
		}

		switch it.Kind {
		case script.KindConstantMacro:
			runtime.Set(it.Name, it.Value)

		case script.KindVariableMacro:
			args, _ := macro.Substitute(it.Args, runtime)
			if err := r.dispatch(it.Plugin, it.Command, args); err != nil {
				return err
			}
			data, err := r.pm.GetData(it.Plugin)
			if err != nil {
				return err
			}
			it.Value = data
			runtime.Set(it.VMacro, data)

		case script.KindCommand:
			args, _ := macro.Substitute(it.Args, runtime)
			if err := r.dispatch(it.Plugin, it.Command, args); err != nil {
				return err
			}

		case script.KindIfGoTo:
			cond, _ := macro.Substitute(it.Condition, runtime)
			if isTrueCondition(cond) {
				log.Debugf("jumping to %s", it.Label)
				skipLabel = it.Label
			}

		case script.KindLabel, script.KindLoadPlugin:
			// no-op outside a skip
		}
	}
	return nil
}

func (r *Runner) dispatch(plugin, cmd, args string) error {
	ok, err := r.pm.Dispatch(plugin, cmd, args)
	if err != nil {
		return err
	}
	if !ok {
		return &ErrExecutingCommand{Plugin: plugin, Command: cmd}
	}
	return nil
}

// isTrueCondition implements IfGoTo's activation rule: empty or
// case-insensitive "true" activates the jump, anything else is
// treated as false. This is deliberately not a general boolean
// expression evaluator.
func isTrueCondition(cond string) bool {
	return cond == "" || strings.EqualFold(cond, "true")
}
