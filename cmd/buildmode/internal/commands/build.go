package commands

import (
	"context"

	"github.com/wolfeidau/buildmode/internal/assets"
)

// BuildCmd runs a single esbuild build with the composed config.
type BuildCmd struct {
	Overlay string   `help:"YAML overlay merged onto the composed config" type:"existingfile" env:"BUILDMODE_OVERLAY"`
	Args    []string `arg:"" optional:"" help:"Extra arguments, only inspected for the production substring."`
}

func (c *BuildCmd) Run(ctx context.Context, globals *Globals) error {
	p := globals.Profile()

	ctx, shutdown, err := bundlerContext(ctx, globals, p)
	if err != nil {
		return err
	}
	defer shutdown()

	cfg, baseDir, err := composeConfig(globals, p, c.Overlay)
	if err != nil {
		return err
	}

	return assets.New(cfg, baseDir).Build(ctx)
}
