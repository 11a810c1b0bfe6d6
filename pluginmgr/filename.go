package pluginmgr

import (
	"path/filepath"
	"runtime"
	"strings"
)

// libraryExtension returns the shared-library extension for the host
// OS the binary was built for. Windows is named for completeness of
// the naming contract even though actual dynamic loading only works
// on linux/darwin+cgo builds (see pluginmgr_unix.go / pluginmgr_stub.go).
func libraryExtension() string {
	switch runtime.GOOS {
	case "windows":
		return "dll"
	case "darwin":
		return "dylib"
	default:
		return "so"
	}
}

// libraryFilename composes lib<name_lowercase>_plugin.<ext> for name,
// resolved inside dir.
func libraryFilename(dir, name string) string {
	fname := "lib" + strings.ToLower(name) + "_plugin." + libraryExtension()
	return filepath.Join(dir, fname)
}
