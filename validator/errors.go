package validator

import (
	"fmt"
	"sort"
	"strings"
)

// ErrJumpsLabelMismatch reports a jump with no later matching label, or
// a label encountered with no outstanding jump pending for it.
type ErrJumpsLabelMismatch struct {
	UnmatchedJumps []string // labels jumped to but never defined
	OrphanedLabel  string   // non-empty when the failure is an out-of-order label
}

func (e *ErrJumpsLabelMismatch) Error() string {
	if e.OrphanedLabel != "" {
		return fmt.Sprintf("label %q has no outstanding jump", e.OrphanedLabel)
	}
	sorted := append([]string(nil), e.UnmatchedJumps...)
	sort.Strings(sorted)
	return fmt.Sprintf("jump(s) without matching label: %s", strings.Join(sorted, ", "))
}

// ErrPluginNotSetForLoading reports an asymmetry between the plugins a
// script declares with LOAD_PLUGIN and the plugins it actually uses.
type ErrPluginNotSetForLoading struct {
	Declared []string
	Used     []string
}

func (e *ErrPluginNotSetForLoading) Error() string {
	missing := diff(e.Used, e.Declared)
	unused := diff(e.Declared, e.Used)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("used but not declared: %s", strings.Join(missing, ", ")))
	}
	if len(unused) > 0 {
		parts = append(parts, fmt.Sprintf("declared but not used: %s", strings.Join(unused, ", ")))
	}
	return "plugin declaration/usage mismatch: " + strings.Join(parts, "; ")
}

// ErrPluginCommandAvailability reports commands a script calls on a
// plugin that the plugin does not advertise support for.
type ErrPluginCommandAvailability struct {
	Plugin      string
	Unsupported []string
}

func (e *ErrPluginCommandAvailability) Error() string {
	sorted := append([]string(nil), e.Unsupported...)
	sort.Strings(sorted)
	return fmt.Sprintf("plugin %q missing script commands: %s", e.Plugin, strings.Join(sorted, ", "))
}

func diff(a, b []string) []string {
	bSet := make(map[string]bool, len(b))
	for _, x := range b {
		bSet[x] = true
	}
	var out []string
	for _, x := range a {
		if !bSet[x] {
			out = append(out, x)
		}
	}
	sort.Strings(out)
	return out
}
