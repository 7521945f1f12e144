package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/slatecss/slate/lang"
	"github.com/slatecss/slate/log"
)

// Fmt rewrites stylesheet sources in a normalized layout.
type Fmt struct {
	Indent int  `default:"2" help:"Indent width for formatted output"                 short:"i"`
	Write  bool `            help:"Write result back to source file instead of stdout" short:"w"`

	Sources []string `arg:"" help:"Source file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := resolveSources(ctx, f.Sources)
	if err != nil {
		return err
	}

	for _, src := range sources {
		sheet, err := src.Scan(ctx)
		if err != nil {
			return lang.WrapError(err).
				With(
					slog.String("command", "fmt"),
					slog.String("source", src.Name),
				)
		}

		// Stdin has nowhere to write back to, so it always formats to
		// stdout.
		if f.Write && !src.IsStdin() {
			err = f.rewrite(ctx, src, sheet)
		} else {
			err = sheet.Format(ctx, os.Stdout, f.Indent)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// rewrite formats the stylesheet back into its source file, preserving the
// file's permission bits.
func (f *Fmt) rewrite(
	ctx context.Context,
	src Source,
	sheet *lang.Stylesheet,
) error {
	var buf bytes.Buffer

	err := sheet.Format(ctx, &buf, f.Indent)
	if err != nil {
		return ErrWriteSource.
			With(slog.String("source", src.Name)).
			Wrap(err)
	}

	fsys := fsFrom(ctx)

	mode := os.FileMode(0o644)
	if info, err := fsys.Stat(src.Path); err == nil {
		mode = info.Mode().Perm()
	}

	err = afero.WriteFile(fsys, src.Path, buf.Bytes(), mode)
	if err != nil {
		return ErrWriteSource.
			With(slog.String("source", src.Name)).
			Wrap(err)
	}

	log.DebugContext(ctx, "rewrote source",
		slog.String("source", src.Name),
		slog.Int("bytes", buf.Len()),
	)

	return nil
}
