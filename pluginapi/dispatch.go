package pluginapi

// Dispatch calls h.DoDispatch(cmd, args) and applies the ABI's
// fault-tolerance rule: a plugin marked fault-tolerant reports success
// regardless of what DoDispatch actually returned, turning a hard
// dispatch failure into a soft one the caller can log and ignore.
// DoCleanup always runs, even when DoDispatch panics-free but returns
// false, since cleanup is about releasing command-scoped resources,
// not about the outcome.
func Dispatch(h Handle, cmd, args string) bool {
	ok := h.DoDispatch(cmd, args)
	h.DoCleanup()
	if ok {
		return true
	}
	return h.IsFaultTolerant()
}
