//go:build !pprof

package profile

// start is a no-op when built without the pprof tag.
func start(_, _ string, _ bool) interface{ Stop() } { return noop{} }
