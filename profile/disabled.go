//go:build !pprof

package profile

// start returns a no-op profiler when built without the pprof tag.
func start(_, _ string, _ bool) interface{ Stop() } {
	return ignore{}
}

// Modes returns no profiling modes when built without the pprof tag.
func Modes() []string { return nil }
