// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, callsite information,
// and output formats that are applied at logger creation time using
// functional options. The zero value of [Logger] is a no-op, so library
// packages can accept a Logger without nil checks and stay silent unless
// the caller opts in.
//
// # Basic Usage
//
//	logger := log.Make(os.Stdout)
//	logger.Info("scan finished", slog.Int("statements", n))
//	logger.Error("scan failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCallsite(true))
//
// # Package-Level Logger
//
// A package-level logger writing to standard error is available through
// top-level functions mirroring the [Logger] methods. It is reconfigured
// with [Config], typically as command-line flags are parsed:
//
//	log.Config(log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatText))
//	log.Debug("logger initialized")
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("component", "scanner"))
//	logger.Info("source loaded") // includes component=scanner
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant:
//
//	logger.InfoContext(ctx, "processing source")
//	logger.Info("message without context") // uses DefaultContextProvider
//
// Context-unaware functions internally call their context-aware counterparts
// using [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the configured
// level are discarded. Trace sits below [slog.LevelDebug] and is rendered
// by name rather than as a debug offset.
//
// # Time Formatting
//
// Time formatting is configurable using [WithTimeLayout]. You can
// specify any named layout supported by the [time] package (such as
// "RFC3339" or "RFC3339Nano") or provide a custom layout string.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText], each with an optional colorized pretty variant enabled by
// [WithPretty] (the default).
package log
