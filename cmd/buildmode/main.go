package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/buildmode/cmd/buildmode/internal/commands"
	"github.com/wolfeidau/buildmode/internal/logger"
	"github.com/wolfeidau/buildmode/internal/profile"
)

var version = "dev"

// CLI accepts webpack style invocations: --mode and --env take any value and each
// command swallows trailing arguments, so only the "production" substring decides.
type CLI struct {
	Debug   bool     `help:"Enable debug mode."`
	Mode    string   `help:"Build mode hint, any argument containing \"production\" selects the production profile." placeholder:"MODE"`
	Env     []string `help:"Environment hints, e.g. --env production. Only matched for the production substring." placeholder:"VALUE"`
	BaseDir string   `help:"Directory entry and output paths are resolved against." default:"." type:"path" env:"BUILDMODE_BASE_DIR"`
	Tracing bool     `help:"Export traces and metrics over OTLP." default:"false" env:"BUILDMODE_TRACING"`
	Version kong.VersionFlag

	Profile commands.ProfileCmd `cmd:"" help:"Print the resolved build profile"`
	Print   commands.PrintCmd   `cmd:"" help:"Print the composed build config"`
	Build   commands.BuildCmd   `cmd:"" help:"Bundle the entry points with esbuild"`
	Serve   commands.ServeCmd   `cmd:"" help:"Watch the entry points and run the esbuild dev server"`
}

func newParser(ctx context.Context, cli *CLI) *kong.Kong {
	return kong.Must(cli,
		kong.Name("buildmode"),
		kong.Description("Resolve the build profile and hand a composed config to esbuild."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
}

func main() {
	// snapshot once, everything downstream gets it passed explicitly
	inv := profile.NewInvocation(os.Args, os.Environ())

	args := inv.Args()
	if len(args) > 0 {
		args = args[1:]
	}

	var cli CLI
	parser := newParser(context.Background(), &cli)
	cmd, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	globals := &commands.Globals{
		Debug:      cli.Debug,
		Version:    version,
		BaseDir:    cli.BaseDir,
		Tracing:    cli.Tracing,
		Invocation: inv,
		Stdout:     os.Stdout,
	}
	globals.Logger = logger.Setup(inv, globals.Profile(), cli.Debug)

	err = cmd.Run(globals)
	cmd.FatalIfErrorf(err)
}
