package profile

// Config returns the profiler parameters: the profiling mode, the output
// directory, and whether banner output is suppressed.
type Config func() (mode, path string, quiet bool)

// Start launches the profiler described by the config and returns a handle
// for stopping it. When the binary was built without the pprof tag, or when
// no mode is set, the returned handle is a no-op, so callers may always
// defer Stop.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// rebind derives a Config by transforming the parameters of an existing one.
func rebind(
	c Config,
	fn func(mode, path string, quiet bool) (string, string, bool),
) Config {
	return func() (string, string, bool) {
		return fn(c())
	}
}

// WithMode returns a functional option that sets the profiling mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		return rebind(c, func(_, path string, quiet bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

// WithPath returns a functional option that sets the profiler output
// directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		return rebind(c, func(mode, _ string, quiet bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

// WithQuiet returns a functional option that suppresses the profiler banner.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		return rebind(c, func(mode, path string, _ bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

// ignore is the stopper returned when nothing is profiling.
type ignore struct{}

func (ignore) Stop() {}
