package pluginmgr

import "fmt"

// ErrPluginLoadingFailed wraps the underlying cause of a load failure
// for a single named plugin: a missing library, a missing required
// symbol, a null handle, a rejected set_params, or a failed do_init.
type ErrPluginLoadingFailed struct {
	Plugin string
	Cause  error
}

func (e *ErrPluginLoadingFailed) Error() string {
	return fmt.Sprintf("plugin %q failed to load: %v", e.Plugin, e.Cause)
}

func (e *ErrPluginLoadingFailed) Unwrap() error { return e.Cause }

// ErrPlatformUnsupported is returned when dynamic plugin loading is
// attempted on a build that lacks cgo/plugin support.
type ErrPlatformUnsupported struct {
	Plugin string
}

func (e *ErrPlatformUnsupported) Error() string {
	return fmt.Sprintf("plugin %q: dynamic loading unsupported on this platform/build", e.Plugin)
}

// ErrPluginNotFound is returned when a requested plugin name has no
// registered descriptor.
type ErrPluginNotFound struct {
	Plugin string
}

func (e *ErrPluginNotFound) Error() string {
	return fmt.Sprintf("plugin %q is not loaded", e.Plugin)
}

// ErrEnableFailed is returned when is_enabled still reports false after
// a plugin's do_enable call.
type ErrEnableFailed struct {
	Plugin string
}

func (e *ErrEnableFailed) Error() string {
	return fmt.Sprintf("plugin %q did not report enabled after do_enable", e.Plugin)
}
