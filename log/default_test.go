package log

// The tests in this file reconfigure the package-level logger, so none of
// them run in parallel. Parallel tests elsewhere in the package only resume
// after every serial test has finished.

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigReconfiguresDefault(t *testing.T) {
	restore := defaultLog
	defer func() { defaultLog = restore }()

	var buf bytes.Buffer

	Config(
		WithOutput(&buf),
		WithLevel(LevelDebug),
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	Debug("probing selector cache")
	assert.Equal(t, "level=DEBUG msg=\"probing selector cache\"\n", buf.String())
}

func TestConfigPreservesUntouchedSettings(t *testing.T) {
	restore := defaultLog
	defer func() { defaultLog = restore }()

	var buf bytes.Buffer

	Config(
		WithOutput(&buf),
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	// A second call overrides only the level; the writer and format from
	// the first call must survive.
	Config(WithLevel(LevelTrace))

	Trace("cursor state dumped")
	assert.Equal(t, "level=TRACE msg=\"cursor state dumped\"\n", buf.String())
}

func TestPackageLevelFunctions(t *testing.T) {
	restore := defaultLog
	defer func() { defaultLog = restore }()

	var buf bytes.Buffer

	Config(
		WithOutput(&buf),
		WithLevel(LevelTrace),
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	ctx := context.Background()

	fns := []struct {
		name  string
		level string
		log   func(string, ...slog.Attr)
	}{
		{"Trace", "TRACE", Trace},
		{"Debug", "DEBUG", Debug},
		{"Info", "INFO", Info},
		{"Warn", "WARN", Warn},
		{"Error", "ERROR", Error},
		{"TraceContext", "TRACE", func(msg string, attrs ...slog.Attr) {
			TraceContext(ctx, msg, attrs...)
		}},
		{"DebugContext", "DEBUG", func(msg string, attrs ...slog.Attr) {
			DebugContext(ctx, msg, attrs...)
		}},
		{"InfoContext", "INFO", func(msg string, attrs ...slog.Attr) {
			InfoContext(ctx, msg, attrs...)
		}},
		{"WarnContext", "WARN", func(msg string, attrs ...slog.Attr) {
			WarnContext(ctx, msg, attrs...)
		}},
		{"ErrorContext", "ERROR", func(msg string, attrs ...slog.Attr) {
			ErrorContext(ctx, msg, attrs...)
		}},
	}

	for _, fn := range fns {
		t.Run(fn.name, func(t *testing.T) {
			buf.Reset()
			fn.log("registry event", slog.String("path", "lib/_mixins.scss"))

			out := buf.String()
			assert.Contains(t, out, `"level":"`+fn.level+`"`)
			assert.Contains(t, out, `"msg":"registry event"`)
			assert.Contains(t, out, `"path":"lib/_mixins.scss"`)
		})
	}
}

func TestDefaultAccessor(t *testing.T) {
	restore := defaultLog
	defer func() { defaultLog = restore }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithPretty(false))

	require.Same(t, defaultLog.Logger, Default().Logger)

	Default().Info("direct default")
	assert.Contains(t, buf.String(), "direct default")
}

func TestDefaultContextProvider(t *testing.T) {
	restore := DefaultContextProvider
	defer func() { DefaultContextProvider = restore }()

	assert.Equal(t, context.TODO(), DefaultContextProvider())

	var called bool

	DefaultContextProvider = func() context.Context {
		called = true

		return context.Background()
	}

	Make(io.Discard).Info("capture provider")
	assert.True(t, called)
}
