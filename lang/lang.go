package lang

import (
	"context"
	"log/slog"
)

// ParseString scans source into a stylesheet using the configured options.
// Every call scans independently; [ParseReader] is the cached entry point.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Stylesheet, error) {
	p := New(source, opts...)

	p.logger.TraceContext(ctx, "scan source",
		slog.Int("source_bytes", len(source)),
		slog.Bool("plain_css", p.opts.plainCSS),
		slog.Bool("compile_exprs", p.opts.compileExprs),
	)

	return p.Parse()
}
