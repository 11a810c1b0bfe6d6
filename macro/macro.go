// Package macro implements $NAME substitution over script lines, used
// by the parser for constants and by the runner for run-time variables.
// It is a single pure function with no dependency on the token
// pipeline, the INI resolver, or the plugin ABI.
package macro

import (
	"sort"
	"strings"
)

// Substitute replaces every occurrence of $NAME in s with m[NAME],
// longest key first, so that a key which is a prefix of another (e.g.
// X and XX) never shadows the longer one. It returns the substituted
// string and whether any replacement was made.
func Substitute(s string, m map[string]string) (string, bool) {
	if len(m) == 0 || !strings.Contains(s, "$") {
		return s, false
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})

	var b strings.Builder
	b.Grow(len(s))
	changed := false

	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}

		matched := false
		for _, name := range names {
			end := i + 1 + len(name)
			if end <= len(s) && s[i+1:end] == name {
				// Longer candidates are tried first, so a shorter
				// name only matches when no longer key fits here.
				// There is no identifier-boundary check: with only
				// X known, "$XY" becomes m["X"] followed by "Y".
				b.WriteString(m[name])
				i = end
				matched = true
				changed = true
				break
			}
		}
		if !matched {
			b.WriteByte(s[i])
			i++
		}
	}

	return b.String(), changed
}
