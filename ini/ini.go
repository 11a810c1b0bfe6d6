// Package ini parses INI configuration files and resolves ${...}
// references between keys, recursively, with a caller-specified depth
// cap to guard against reference cycles.
package ini

import (
	"strings"

	goini "github.com/go-ini/ini"
	"github.com/pkg/errors"
)

// DefaultResolveDepth is the recursion cap the Plugin Manager uses when
// resolving a plugin's configuration section (spec: "Standard depth
// used by the Plugin Manager = 5").
const DefaultResolveDepth = 5

// Resolver wraps a parsed INI file and answers ${...}-expanding queries
// against it. It is read-only: scriptrt never writes INI files back.
type Resolver struct {
	file *goini.File
}

// Load parses the INI file at path.
func Load(path string) (*Resolver, error) {
	f, err := goini.LoadSources(goini.LoadOptions{AllowShadows: false}, path)
	if err != nil {
		return nil, &ErrIOFailure{Path: path, Cause: err}
	}
	return &Resolver{file: f}, nil
}

// LoadBytes parses INI content already in memory, primarily for tests.
func LoadBytes(data []byte) (*Resolver, error) {
	f, err := goini.Load(data)
	if err != nil {
		return nil, errors.Wrap(err, "load ini bytes")
	}
	return &Resolver{file: f}, nil
}

// GetValue resolves key within section, recursively expanding any
// ${key} or ${section:key} references found in its raw value. Missing
// keys/sections resolve to the empty string inside a reference, but a
// top-level lookup of a missing key returns def. A reference cycle is
// cut off after depth recursive lookups; when the cap is hit the whole
// call returns def rather than a partially expanded string.
func (r *Resolver) GetValue(section, key, def string, depth int) string {
	raw, found := r.lookupRaw(section, key)
	if !found {
		return def
	}
	val, ok := r.expand(raw, section, depth)
	if !ok {
		return def
	}
	return val
}

// GetResolvedSection returns every key in section with its value fully
// resolved (missing references become "", a cut-off cycle becomes "").
func (r *Resolver) GetResolvedSection(section string, depth int) map[string]string {
	out := map[string]string{}
	secName := sectionName(section)
	sec, err := r.file.GetSection(secName)
	if err != nil {
		return out
	}
	for _, key := range sec.KeyStrings() {
		out[key] = r.GetValue(section, key, "", depth)
	}
	return out
}

// HasSection reports whether section exists in the file.
func (r *Resolver) HasSection(section string) bool {
	_, err := r.file.GetSection(sectionName(section))
	return err == nil
}

func sectionName(section string) string {
	if section == "" {
		return goini.DefaultSection
	}
	return section
}

// resolveKey looks up section/key and expands its raw value. ok is
// false only when depth was exhausted mid-expansion (cycle guard); a
// key that simply doesn't exist resolves to ("", true) per the
// missing-reference rule.
func (r *Resolver) resolveKey(section, key string, depth int) (string, bool) {
	raw, found := r.lookupRaw(section, key)
	if !found {
		return "", true
	}
	return r.expand(raw, section, depth)
}

func (r *Resolver) lookupRaw(section, key string) (string, bool) {
	sec, err := r.file.GetSection(sectionName(section))
	if err != nil {
		return "", false
	}
	if !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).String(), true
}

// expand replaces every ${token} in raw, where token is "key" (resolved
// against section) or "section:key" (resolved against the named
// section).
func (r *Resolver) expand(raw, section string, depth int) (string, bool) {
	if !strings.Contains(raw, "${") {
		return raw, true
	}
	if depth <= 0 {
		return "", false
	}

	var b strings.Builder
	i := 0
	for i < len(raw) {
		start := strings.Index(raw[i:], "${")
		if start < 0 {
			b.WriteString(raw[i:])
			break
		}
		start += i
		b.WriteString(raw[i:start])

		closeIdx := strings.IndexByte(raw[start:], '}')
		if closeIdx < 0 {
			// Unterminated reference: copy the rest literally.
			b.WriteString(raw[start:])
			break
		}
		end := start + closeIdx

		token := raw[start+2 : end]
		refSection, refKey := section, token
		if idx := strings.IndexByte(token, ':'); idx >= 0 {
			refSection, refKey = token[:idx], token[idx+1:]
		}

		val, ok := r.resolveKey(refSection, refKey, depth-1)
		if !ok {
			return "", false
		}
		b.WriteString(val)
		i = end + 1
	}

	return b.String(), true
}
