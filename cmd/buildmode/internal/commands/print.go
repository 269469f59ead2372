package commands

import (
	"fmt"

	"github.com/wolfeidau/buildmode/internal/buildconfig"
)

// PrintCmd composes the build config and writes it out.
type PrintCmd struct {
	Format      string   `help:"output format" default:"json" enum:"json,yaml"`
	Out         string   `help:"write the config to this file instead of stdout" type:"path"`
	Overlay     string   `help:"YAML overlay merged onto the composed config" type:"existingfile" env:"BUILDMODE_OVERLAY"`
	Fingerprint bool     `help:"print the config fingerprint instead of the config"`
	Args        []string `arg:"" optional:"" help:"Extra arguments, only inspected for the production substring."`
}

func (c *PrintCmd) Run(globals *Globals) error {
	p := globals.Profile()

	cfg, _, err := composeConfig(globals, p, c.Overlay)
	if err != nil {
		return err
	}

	if c.Fingerprint {
		fingerprint, err := buildconfig.Fingerprint(cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(globals.Stdout, fingerprint)
		return err
	}

	format, err := buildconfig.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	if c.Out != "" {
		if err := buildconfig.WriteFile(c.Out, cfg, format); err != nil {
			return err
		}
		globals.Logger.Info().Str("path", c.Out).Str("format", string(format)).Msg("Wrote build config")
		return nil
	}

	return buildconfig.Encode(globals.Stdout, cfg, format)
}
