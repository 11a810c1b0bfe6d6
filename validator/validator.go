// Package validator cross-checks a parsed token stream before the
// Runner ever touches it: jump/label consistency, plugin
// declaration-vs-usage agreement, and per-plugin command support.
package validator

import (
	"sort"

	"github.com/scriptrt/scriptrt/script"
)

// PluginManager is the subset of pluginmgr.Manager the Validator needs
// to run its command-capability check. Loading declared plugins here
// also applies their INI configuration and runs do_init, per the
// Plugin Manager's contract.
type PluginManager interface {
	LoadPlugins(names []string) error
	SupportedCommands(plugin string) (map[string]bool, error)
}

// Validate runs all three checks in order and returns the first
// failure. pm may be nil, in which case the command-capability check
// is skipped (useful for tests that only exercise jump/label or
// declaration checks in isolation).
func Validate(items []*script.Item, pm PluginManager) error {
	if err := checkJumpsAndLabels(items); err != nil {
		return err
	}
	declared, used := pluginSets(items)
	if err := checkDeclaredVsUsed(declared, used); err != nil {
		return err
	}
	if pm == nil {
		return nil
	}
	return checkCommandAvailability(items, declared, pm)
}

func checkJumpsAndLabels(items []*script.Item) error {
	pending := map[string]int{}
	for _, it := range items {
		switch it.Kind {
		case script.KindIfGoTo:
			pending[it.Label]++
		case script.KindLabel:
			if pending[it.Label] <= 0 {
				return &ErrJumpsLabelMismatch{OrphanedLabel: it.Label}
			}
			pending[it.Label]--
		}
	}
	var unmatched []string
	for label, count := range pending {
		if count > 0 {
			unmatched = append(unmatched, label)
		}
	}
	if len(unmatched) > 0 {
		sort.Strings(unmatched)
		return &ErrJumpsLabelMismatch{UnmatchedJumps: unmatched}
	}
	return nil
}

// pluginSets returns the set of plugin names declared via LOAD_PLUGIN
// and the set of plugin names referenced by a Command or VariableMacro.
func pluginSets(items []*script.Item) (declared, used map[string]bool) {
	declared = map[string]bool{}
	used = map[string]bool{}
	for _, it := range items {
		switch it.Kind {
		case script.KindLoadPlugin:
			declared[it.Plugin] = true
		case script.KindCommand, script.KindVariableMacro:
			used[it.Plugin] = true
		}
	}
	return declared, used
}

func checkDeclaredVsUsed(declared, used map[string]bool) error {
	if setsEqual(declared, used) {
		return nil
	}
	return &ErrPluginNotSetForLoading{
		Declared: sortedKeys(declared),
		Used:     sortedKeys(used),
	}
}

func checkCommandAvailability(items []*script.Item, declared map[string]bool, pm PluginManager) error {
	if err := pm.LoadPlugins(sortedKeys(declared)); err != nil {
		return err
	}

	commandsByPlugin := map[string]map[string]bool{}
	for _, it := range items {
		if it.Kind != script.KindCommand && it.Kind != script.KindVariableMacro {
			continue
		}
		set := commandsByPlugin[it.Plugin]
		if set == nil {
			set = map[string]bool{}
			commandsByPlugin[it.Plugin] = set
		}
		set[it.Command] = true
	}

	for _, plugin := range sortedKeys(declared) {
		wanted, ok := commandsByPlugin[plugin]
		if !ok {
			continue
		}
		supported, err := pm.SupportedCommands(plugin)
		if err != nil {
			return err
		}
		var unsupported []string
		for cmd := range wanted {
			if !supported[cmd] {
				unsupported = append(unsupported, cmd)
			}
		}
		if len(unsupported) > 0 {
			sort.Strings(unsupported)
			return &ErrPluginCommandAvailability{Plugin: plugin, Unsupported: unsupported}
		}
	}
	return nil
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
