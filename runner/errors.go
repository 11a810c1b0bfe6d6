package runner

import "fmt"

// ErrExecutingCommand reports a dispatch that returned false from a
// plugin that is not fault-tolerant.
type ErrExecutingCommand struct {
	Plugin  string
	Command string
}

func (e *ErrExecutingCommand) Error() string {
	return fmt.Sprintf("error executing command %s.%s", e.Plugin, e.Command)
}

// ErrPluginNotFound reports a plugin name missing from the registry at
// dispatch time. Runner.Run does not construct it: a missing plugin
// reaches the caller as the error PluginManager.Dispatch or GetData
// returns (pluginmgr.ErrPluginNotFound for the real manager).
type ErrPluginNotFound struct {
	Plugin string
}

func (e *ErrPluginNotFound) Error() string {
	return fmt.Sprintf("plugin %q not found", e.Plugin)
}
