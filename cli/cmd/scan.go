package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/slatecss/slate/lang"
	"github.com/slatecss/slate/log"
)

// Scan reads stylesheet sources and prints their statement structure.
type Scan struct {
	Format string `default:"tree" enum:"tree,native,json,yaml" help:"Output format (tree, native, json, yaml)" short:"F"`
	Indent int    `default:"2"    help:"Indent width for native, json, and yaml output" short:"i"`

	Sources []string `arg:"" help:"Source file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the scan command.
func (s *Scan) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := resolveSources(ctx, s.Sources)
	if err != nil {
		return err
	}

	for i, src := range sources {
		sheet, err := src.Scan(ctx)
		if err != nil {
			return lang.WrapError(err).
				With(
					slog.String("command", "scan"),
					slog.String("source", src.Name),
				)
		}

		for _, warning := range sheet.Warnings {
			log.WarnContext(ctx, warning.Message,
				slog.String("source", src.Name),
				slog.Any("warning", warning),
			)
		}

		err = s.print(ctx, os.Stdout, src.Name, sheet, i)
		if err != nil {
			return err
		}
	}

	return nil
}

// print renders one scanned source in the selected format. The index
// separates consecutive documents when scanning multiple sources.
func (s *Scan) print(
	ctx context.Context,
	w io.Writer,
	name string,
	sheet *lang.Stylesheet,
	index int,
) error {
	switch s.Format {
	case "native":
		if index > 0 {
			_, err := fmt.Fprintln(w)
			if err != nil {
				return err
			}
		}

		return sheet.Format(ctx, w, s.Indent)

	case "json":
		return sheet.FormatJSON(ctx, w, s.Indent)

	case "yaml":
		if index > 0 {
			_, err := fmt.Fprintln(w, "---")
			if err != nil {
				return err
			}
		}

		return sheet.FormatYAML(ctx, w, s.Indent)

	default:
		if index > 0 {
			_, err := fmt.Fprintln(w)
			if err != nil {
				return err
			}
		}

		return writeTree(w, name, sheet)
	}
}
