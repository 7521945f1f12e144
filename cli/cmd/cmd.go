package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/slatecss/slate/lang"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	fsKey          struct{}
	loadPathKey    struct{}
	scanOptionsKey struct{}
)

// WithFS returns a new context.Context containing the filesystem that
// commands read sources from and write results to.
func WithFS(ctx context.Context, fsys afero.Fs) context.Context {
	return context.WithValue(ctx, fsKey{}, fsys)
}

// fsFrom retrieves the filesystem stored in ctx by WithFS, defaulting to
// the host filesystem.
func fsFrom(ctx context.Context) afero.Fs {
	fsys, ok := ctx.Value(fsKey{}).(afero.Fs)
	if !ok || fsys == nil {
		return afero.NewOsFs()
	}

	return fsys
}

// WithLoadPath returns a new context.Context containing the directories
// searched for source files named by relative paths.
func WithLoadPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, loadPathKey{}, dirs)
}

// loadPathFrom retrieves the directory list stored in ctx by WithLoadPath.
func loadPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(loadPathKey{}).([]string)

	return dirs
}

// WithScanOptions returns a new context.Context containing the scanner
// options applied to every source a command scans.
func WithScanOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, scanOptionsKey{}, opts)
}

// scanOptionsFrom retrieves the scanner options stored in ctx by
// WithScanOptions.
func scanOptionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(scanOptionsKey{}).([]lang.Option)

	return opts
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source is one resolved scan input: a file on the configured filesystem,
// or stdin.
type Source struct {
	// Name is the display name used in diagnostics: the path as given on
	// the command line, or "stdin".
	Name string
	// Path is the resolved filesystem path; empty for stdin.
	Path string
}

// IsStdin reports whether the source reads from standard input.
func (s Source) IsStdin() bool { return s.Path == "" }

// Open returns a reader for the source contents.
func (s Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.IsStdin() {
		return io.NopCloser(os.Stdin), nil
	}

	return fsFrom(ctx).Open(s.Path)
}

// Scan reads and scans the source with the context's scanner options.
func (s Source) Scan(ctx context.Context) (*lang.Stylesheet, error) {
	r, err := s.Open(ctx)
	if err != nil {
		return nil, ErrSourceNotFound.
			With(slog.String("source", s.Name)).
			Wrap(err)
	}
	defer r.Close()

	return lang.ParseReader(ctx, r, scanOptionsFrom(ctx)...)
}

// resolveSources maps command-line source arguments to scan inputs.
//
// Relative paths that do not exist under the working directory are searched
// for in each load-path directory in order; the first hit wins. Duplicate
// paths are collapsed after cleaning. All occurrences of "-" are replaced
// with a single stdin source placed last so it is consumed after all
// regular files. An empty argument list yields stdin alone.
func resolveSources(ctx context.Context, args []string) ([]Source, error) {
	if len(args) == 0 {
		return []Source{{Name: "stdin"}}, nil
	}

	fsys := fsFrom(ctx)
	dirs := loadPathFrom(ctx)

	sources := make([]Source, 0, len(args))
	seen := make(map[string]struct{}, len(args))
	stdin := false

	for _, arg := range args {
		if arg == stdinSource {
			stdin = true

			continue
		}

		path, err := findSource(fsys, dirs, arg)
		if err != nil {
			return nil, err
		}

		if _, ok := seen[path]; ok {
			continue
		}

		seen[path] = struct{}{}

		sources = append(sources, Source{Name: arg, Path: path})
	}

	if stdin {
		sources = append(sources, Source{Name: "stdin"})
	}

	return sources, nil
}

// findSource resolves name against the working directory and then each
// load-path directory, returning the cleaned path of the first file found.
func findSource(fsys afero.Fs, dirs []string, name string) (string, error) {
	try := []string{name}

	if !filepath.IsAbs(name) {
		for _, dir := range dirs {
			try = append(try, filepath.Join(dir, name))
		}
	}

	for _, path := range try {
		info, err := fsys.Stat(path)
		if err == nil && !info.IsDir() {
			return filepath.Clean(path), nil
		}
	}

	return "", ErrSourceNotFound.
		With(slog.String("source", name)).
		With(slog.Int("load_path_dirs", len(dirs)))
}
