//go:build (linux && cgo) || (darwin && cgo)

package pluginmgr

import (
	"plugin"

	"github.com/pkg/errors"

	"github.com/scriptrt/scriptrt/pluginapi"
)

// loadSymbols opens the shared library at path and resolves its entry
// and (optional) exit symbols.
//
// A library may export either the current PluginEntry/PluginExit pair
// or the legacy plugin_create/plugin_destroy pair; both resolve to the
// same Handle interface, so the legacy pair is just an alternate pair
// of symbol names tried once the current ones are absent.
func loadSymbols(path string) (pluginapi.EntryFunc, pluginapi.ExitFunc, error) {
	mod, err := plugin.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open plugin library %q", path)
	}

	entry, err := lookupEntry(mod, pluginapi.ConstructorSymbol)
	if err != nil {
		entry, err = lookupEntry(mod, pluginapi.LegacyConstructorSymbol)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "lookup %s or %s in %q",
				pluginapi.ConstructorSymbol, pluginapi.LegacyConstructorSymbol, path)
		}
	}

	exit := lookupExit(mod, pluginapi.DestructorSymbol)
	if exit == nil {
		exit = lookupExit(mod, pluginapi.LegacyDestructorSymbol)
	}

	return entry, exit, nil
}

func lookupEntry(mod *plugin.Plugin, symbol string) (pluginapi.EntryFunc, error) {
	sym, err := mod.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	if fn, ok := sym.(func() pluginapi.Handle); ok {
		return fn, nil
	}
	if fn, ok := sym.(*pluginapi.EntryFunc); ok {
		return *fn, nil
	}
	return nil, errors.Errorf("symbol %s has unexpected type", symbol)
}

func lookupExit(mod *plugin.Plugin, symbol string) pluginapi.ExitFunc {
	sym, err := mod.Lookup(symbol)
	if err != nil {
		return nil
	}
	if fn, ok := sym.(func(pluginapi.Handle)); ok {
		return fn
	}
	if fn, ok := sym.(*pluginapi.ExitFunc); ok {
		return *fn
	}
	return nil
}
