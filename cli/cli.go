package cli

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/slatecss/slate/cli/cmd"
	"github.com/slatecss/slate/lang"
	"github.com/slatecss/slate/log"
	"github.com/slatecss/slate/pkg"
)

// CLI is the top-level command-line interface for slate.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	PlainCSS     bool     `help:"Restrict input to plain CSS syntax"           name:"plain-css"`
	CompileExprs bool     `help:"Compile #{} expressions while scanning"      name:"compile-exprs"`
	LoadPath     []string `help:"Add directory to the stylesheet search path" name:"load-path" placeholder:"DIR" short:"I"`

	Init    cmd.Init    `cmd:"" help:"Write a default configuration file"`
	Fmt     cmd.Fmt     `cmd:"" help:"Reprint stylesheets in canonical form"`
	Check   cmd.Check   `cmd:"" help:"Diagnose stylesheets without printing"`
	Repl    cmd.Repl    `cmd:"" help:"Scan stylesheets interactively"`
	Version cmd.Version `cmd:"" help:"Print version information"`

	Scan cmd.Scan `cmd:"" default:"withargs" help:"Scan stylesheets and print their statements"`
}

// Run executes the slate CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(baseConfig), configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithFS(ctx, afero.NewOsFs())
	ctx = cmd.WithLoadPath(ctx, loadPath(cli.LoadPath))
	ctx = cmd.WithScanOptions(ctx,
		lang.WithLogger(log.Default()),
		lang.WithPlainCSS(cli.PlainCSS),
		lang.WithCompileExprs(cli.CompileExprs),
	)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Callsite which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
