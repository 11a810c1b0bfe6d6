// Package pluginmgr loads scriptrt plugins from shared libraries,
// applies their INI-resolved configuration, and owns their lifecycle
// from construction through destruction.
package pluginmgr

import (
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/scriptrt/scriptrt/ini"
	"github.com/scriptrt/scriptrt/logging"
	"github.com/scriptrt/scriptrt/pluginapi"
)

// descriptor owns one loaded plugin: its handle, the optional exit
// symbol, and the fact that it was loaded at all (a dangling, partially
// constructed descriptor is never stored in the registry).
type descriptor struct {
	name   string
	handle pluginapi.Handle
	exit   pluginapi.ExitFunc
}

type sectionCacheKey struct {
	section string
	depth   int
}

// Manager is the Plugin Manager of the runtime: it resolves library
// filenames, drives the load/configure/init/enable/unload sequence,
// and exposes the subset of that contract the Validator and Runner
// need (LoadPlugins, SupportedCommands, EnablePlugins, Dispatch,
// UnloadAll).
type Manager struct {
	mu           sync.Mutex
	pluginDir    string
	ini          *ini.Resolver
	resolveDepth int
	registry     map[string]*descriptor
	sections     *lru.Cache[sectionCacheKey, map[string]string]
}

// New returns a Manager that loads plugin libraries from pluginDir and
// resolves their configuration sections from resolver at the standard
// depth (ini.DefaultResolveDepth). cacheSize bounds the resolved-section
// LRU; pass 0 to disable caching (every load re-resolves the section).
func New(pluginDir string, resolver *ini.Resolver, cacheSize int) (*Manager, error) {
	m := &Manager{
		pluginDir:    pluginDir,
		ini:          resolver,
		resolveDepth: ini.DefaultResolveDepth,
		registry:     map[string]*descriptor{},
	}
	if cacheSize > 0 {
		cache, err := lru.New[sectionCacheKey, map[string]string](cacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "allocate section cache")
		}
		m.sections = cache
	}
	return m, nil
}

// LoadPlugins loads every name not already registered, in order. On
// the first failure it tears down every descriptor it just loaded in
// this call (but leaves previously-registered descriptors from earlier
// calls alone) before returning, per the manager's drop contract.
func (m *Manager) LoadPlugins(names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var justLoaded []string
	for _, name := range names {
		if _, ok := m.registry[name]; ok {
			continue
		}
		desc, err := m.loadOne(name)
		if err != nil {
			for _, n := range justLoaded {
				m.unloadLocked(n)
			}
			return &ErrPluginLoadingFailed{Plugin: name, Cause: err}
		}
		m.registry[name] = desc
		justLoaded = append(justLoaded, name)
	}
	return nil
}

// loadSymbolsFunc is a package-level indirection over loadSymbols so
// tests can substitute a fake loader without touching cgo/plugin.Open.
var loadSymbolsFunc = loadSymbols

func (m *Manager) loadOne(name string) (desc *descriptor, err error) {
	path := libraryFilename(m.pluginDir, name)

	entry, exit, err := loadSymbolsFunc(path)
	if err != nil {
		return nil, err
	}

	handle := entry()
	if handle == nil {
		return nil, errors.Errorf("pluginEntry returned a nil handle for %q", name)
	}

	defer func() {
		if err != nil {
			destroy(handle, exit)
		}
	}()

	if section := m.resolveSection(name); section != nil {
		if !handle.SetParams(section) {
			return nil, errors.Errorf("set_params rejected configuration for %q", name)
		}
	}

	if !handle.DoInit("") {
		return nil, errors.Errorf("do_init failed for %q", name)
	}

	logging.Debugf("loaded plugin %s from %s", name, path)
	return &descriptor{name: name, handle: handle, exit: exit}, nil
}

func (m *Manager) resolveSection(name string) pluginapi.Params {
	if m.ini == nil || !m.ini.HasSection(name) {
		return nil
	}
	key := sectionCacheKey{section: name, depth: m.resolveDepth}
	if m.sections != nil {
		if cached, ok := m.sections.Get(key); ok {
			return toParams(cached)
		}
	}
	resolved := m.ini.GetResolvedSection(name, m.resolveDepth)
	if m.sections != nil {
		m.sections.Add(key, resolved)
	}
	return toParams(resolved)
}

func toParams(m map[string]string) pluginapi.Params {
	p := make(pluginapi.Params, len(m))
	for k, v := range m {
		p[k] = v
	}
	return p
}

// EnablePlugins calls do_enable on every registered descriptor and
// verifies is_enabled reports true afterward.
func (m *Manager) EnablePlugins() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range m.sortedNamesLocked() {
		desc := m.registry[name]
		desc.handle.DoEnable()
		if !desc.handle.IsEnabled() {
			return &ErrEnableFailed{Plugin: name}
		}
	}
	return nil
}

// SupportedCommands returns the set of command names plugin advertises
// via get_params()["cmds"], a comma-separated list by convention.
func (m *Manager) SupportedCommands(plugin string) (map[string]bool, error) {
	m.mu.Lock()
	desc, ok := m.registry[plugin]
	m.mu.Unlock()
	if !ok {
		return nil, &ErrPluginNotFound{Plugin: plugin}
	}

	params := desc.handle.GetParams()
	cmds := map[string]bool{}
	for _, c := range strings.Split(params["cmds"], ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			cmds[c] = true
		}
	}
	return cmds, nil
}

// Dispatch looks up plugin and forwards to pluginapi.Dispatch, which
// applies the fault-tolerance rule.
func (m *Manager) Dispatch(plugin, cmd, args string) (bool, error) {
	m.mu.Lock()
	desc, ok := m.registry[plugin]
	m.mu.Unlock()
	if !ok {
		return false, &ErrPluginNotFound{Plugin: plugin}
	}
	return pluginapi.Dispatch(desc.handle, cmd, args), nil
}

// GetData returns the borrowed result string of plugin's last dispatch.
func (m *Manager) GetData(plugin string) (string, error) {
	m.mu.Lock()
	desc, ok := m.registry[plugin]
	m.mu.Unlock()
	if !ok {
		return "", &ErrPluginNotFound{Plugin: plugin}
	}
	return desc.handle.GetData(), nil
}

// UnloadAll calls pluginExit (or Destroy) on every registered
// descriptor and empties the registry. Teardown order is unspecified.
func (m *Manager) UnloadAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name := range m.registry {
		m.unloadLocked(name)
	}
}

func (m *Manager) unloadLocked(name string) {
	desc, ok := m.registry[name]
	if !ok {
		return
	}
	destroy(desc.handle, desc.exit)
	delete(m.registry, name)
}

func destroy(h pluginapi.Handle, exit pluginapi.ExitFunc) {
	if exit != nil {
		exit(h)
		return
	}
	h.Destroy()
}

func (m *Manager) sortedNamesLocked() []string {
	names := make([]string, 0, len(m.registry))
	for name := range m.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
