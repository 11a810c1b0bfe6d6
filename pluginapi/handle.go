// Package pluginapi defines the interface every scriptrt plugin must
// satisfy. It is the Go realization of the flat vtable-in-struct ABI:
// each C function pointer becomes a method, and the opaque instance
// pointer becomes the receiver's own state.
package pluginapi

// Params is the key-value bag passed to SetParams (from a resolved INI
// section) and returned from GetParams (introspective metadata).
type Params map[string]string

// Handle is the contract a plugin's exported constructor must return.
// Method names mirror the ABI's C operations one-to-one; Go's
// zero-value and garbage collection take over what the ABI used
// pointers and destroy() for, but Destroy is kept as an explicit
// lifecycle hook so plugins holding external resources (files,
// sockets, native handles via cgo) can release them deterministically.
type Handle interface {
	// Destroy releases the instance. Idempotent: calling it on an
	// already-destroyed handle must not panic.
	Destroy()

	// DoInit performs one-time preparation and may fail.
	DoInit(userData string) bool

	// DoEnable transitions the plugin to the enabled state.
	DoEnable()

	// DoDispatch executes cmd with args. On success the plugin's
	// internal result buffer reflects the outcome, retrievable via
	// GetData.
	DoDispatch(cmd, args string) bool

	// DoCleanup releases command-scoped resources after a dispatch.
	DoCleanup()

	// SetParams installs configuration key-values, transitioning
	// Created -> Configured. Returns false to abort the load.
	SetParams(params Params) bool

	// GetParams reports introspective metadata. Implementations must
	// include "cmds" (a comma-separated list of command names, split
	// by the manager) and "vers".
	GetParams() Params

	// GetData returns a borrowable view of the latest dispatch result.
	GetData() string

	// ResetData empties the result buffer.
	ResetData()

	IsInitialized() bool
	IsEnabled() bool
	IsPrivileged() bool
	IsFaultTolerant() bool
}

// ConstructorSymbol is the symbol name a plugin shared object built with
// `go build -buildmode=plugin` must export, resolved via plugin.Lookup.
// It mirrors the ABI's current `pluginEntry` symbol.
const ConstructorSymbol = "PluginEntry"

// DestructorSymbol is the optional exported teardown symbol, mirroring
// the ABI's `pluginExit`. When absent, the manager calls Handle.Destroy
// directly.
const DestructorSymbol = "PluginExit"

// LegacyConstructorSymbol and LegacyDestructorSymbol are the ABI's
// older `plugin_create`/`plugin_destroy` export names. A plugin built
// against this convention satisfies the same Handle interface; only
// the exported symbol names differ, so the loader falls back to these
// when ConstructorSymbol/DestructorSymbol aren't found.
const (
	LegacyConstructorSymbol = "plugin_create"
	LegacyDestructorSymbol  = "plugin_destroy"
)

// EntryFunc is the signature a plugin's PluginEntry symbol must match.
type EntryFunc func() Handle

// ExitFunc is the signature a plugin's optional PluginExit symbol must
// match; it is handed the same Handle PluginEntry returned.
type ExitFunc func(Handle)
