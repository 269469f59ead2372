package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wolfeidau/buildmode/internal/assets"
)

// ServeCmd runs esbuild in watch mode behind its dev server.
type ServeCmd struct {
	Overlay string   `help:"YAML overlay merged onto the composed config" type:"existingfile" env:"BUILDMODE_OVERLAY"`
	Args    []string `arg:"" optional:"" help:"Extra arguments, only inspected for the production substring."`
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	p := globals.Profile()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, shutdown, err := bundlerContext(ctx, globals, p)
	if err != nil {
		return err
	}
	defer shutdown()

	cfg, baseDir, err := composeConfig(globals, p, c.Overlay)
	if err != nil {
		return err
	}

	return assets.New(cfg, baseDir).Serve(ctx)
}
