package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/slatecss/slate/log"
)

// Check scans stylesheet sources and reports syntax errors and deprecation
// warnings without producing output documents.
type Check struct {
	Strict bool `help:"Treat deprecation warnings as errors" short:"s"`

	Sources []string `arg:"" help:"Source file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the check command. All sources are checked even after a
// failure; the command reports every diagnostic before returning.
func (c *Check) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := resolveSources(ctx, c.Sources)
	if err != nil {
		return err
	}

	var failed, warned int

	for _, src := range sources {
		sheet, err := src.Scan(ctx)
		if err != nil {
			failed++

			fmt.Fprintf(os.Stderr, "%s: %v\n", src.Name, err)

			continue
		}

		warned += len(sheet.Warnings)

		for _, warning := range sheet.Warnings {
			fmt.Fprintf(os.Stderr, "%s: %s: warning: %s\n",
				src.Name, warning.Span.Start, warning.Message)
		}
	}

	if failed > 0 || (c.Strict && warned > 0) {
		return ErrCheckFailed.With(
			slog.Int("errors", failed),
			slog.Int("warnings", warned),
		)
	}

	log.DebugContext(ctx, "all sources clean",
		slog.Int("sources", len(sources)),
		slog.Int("warnings", warned),
	)

	return nil
}
