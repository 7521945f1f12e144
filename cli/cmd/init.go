package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/slatecss/slate/log"
	"github.com/slatecss/slate/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	fsys := fsFrom(ctx)

	// Check if file exists and force not set
	_, err = fsys.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	doc := map[string]any{ConfigIdentifier: i.buildConfig(ctx)}

	data, err := yaml.MarshalContext(ctx, doc, yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = afero.WriteFile(fsys, confPath, data, 0o644)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildConfig collects current flag values into the config document.
func (i *Init) buildConfig(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)

	values := make(map[string]any)

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := flagValue(ktx, flag.Name)
		if val != nil {
			values[flag.Name] = val
		}
	}

	return values
}

// flagValue returns the config document value for a CLI flag, or nil if
// unset or empty.
func flagValue(ktx *kong.Context, name string) any {
	idx := slices.IndexFunc(ktx.Model.Flags, func(flag *kong.Flag) bool {
		return flag.Name == name
	})
	if idx == -1 {
		return nil
	}

	val := ktx.FlagValue(ktx.Model.Flags[idx])
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case []int:
		if len(v) == 0 {
			return nil
		}

		return v

	case []bool:
		if len(v) == 0 {
			return nil
		}

		return v

	default:
		// Flag types without a direct YAML representation, such as the
		// TextUnmarshaler log flags, serialize through fmt.
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return s
	}
}
