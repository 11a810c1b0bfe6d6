//go:build !((linux && cgo) || (darwin && cgo))

package pluginmgr

import "github.com/scriptrt/scriptrt/pluginapi"

// loadSymbols always fails on platforms/builds without cgo-backed
// dynamic plugin loading.
func loadSymbols(path string) (pluginapi.EntryFunc, pluginapi.ExitFunc, error) {
	return nil, nil, &ErrPlatformUnsupported{Plugin: path}
}
