package pluginmgr

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/scriptrt/scriptrt/logging"
)

// WatchDir watches dir for new or rewritten plugin shared libraries
// (lib*_plugin.so / .dylib / .dll) and calls onChange with the plugin name
// each time one appears. This is purely observational: it never loads
// or reloads a plugin into a running script, it only gives ops tooling
// visibility into what's available on disk. Callers typically log the
// notification; the returned *fsnotify.Watcher should be closed when
// the watch is no longer needed.
func WatchDir(dir string, onChange func(name string)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for evt := range watcher.Events {
			if evt.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name, ok := pluginNameFromPath(evt.Name)
			if !ok {
				continue
			}
			logging.Debugf("plugin directory event: %s (%s)", evt.Name, evt.Op)
			onChange(name)
		}
	}()

	return watcher, nil
}

// pluginNameFromPath extracts the upper-cased plugin name from a
// lib<name>_plugin.<ext> filename, matching the naming convention
// libraryFilename produces.
func pluginNameFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	const prefix = "lib"
	const suffix = "_plugin."
	if !strings.HasPrefix(base, prefix) {
		return "", false
	}
	rest := base[len(prefix):]
	idx := strings.Index(rest, suffix)
	if idx <= 0 {
		return "", false
	}
	ext := rest[idx+len(suffix):]
	switch ext {
	case "so", "dylib", "dll":
	default:
		return "", false
	}
	return strings.ToUpper(rest[:idx]), true
}
