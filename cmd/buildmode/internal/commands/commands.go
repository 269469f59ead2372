package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/buildmode/internal/buildconfig"
	"github.com/wolfeidau/buildmode/internal/profile"
	"github.com/wolfeidau/buildmode/internal/telemetry"
)

type Globals struct {
	Debug      bool
	Version    string
	BaseDir    string
	Tracing    bool
	Invocation profile.Invocation
	Stdout     io.Writer
	Logger     zerolog.Logger
}

// Profile resolves the build profile from the invocation snapshot.
func (g *Globals) Profile() profile.Profile {
	return profile.Resolve(g.Invocation)
}

func (g *Globals) baseDir() (string, error) {
	dir := g.BaseDir
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base dir: %w", err)
	}
	return abs, nil
}

// composeConfig composes the config for p and applies the optional overlay file.
func composeConfig(g *Globals, p profile.Profile, overlayPath string) (buildconfig.Config, string, error) {
	baseDir, err := g.baseDir()
	if err != nil {
		return buildconfig.Config{}, "", err
	}

	cfg := buildconfig.Compose(baseDir, p)

	var overlay *buildconfig.Overlay
	if overlayPath != "" {
		overlay, err = buildconfig.LoadOverlay(overlayPath)
		if err != nil {
			return buildconfig.Config{}, "", err
		}
	}

	cfg, err = buildconfig.Apply(baseDir, cfg, overlay)
	if err != nil {
		return buildconfig.Config{}, "", err
	}

	return cfg, baseDir, nil
}

// bundlerContext attaches a logger tagged with a fresh build ID to ctx and starts
// telemetry when enabled. The returned func flushes telemetry.
func bundlerContext(ctx context.Context, g *Globals, p profile.Profile) (context.Context, func(), error) {
	buildID, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate build id: %w", err)
	}

	log := g.Logger.With().Str("build_id", buildID.String()).Logger()
	ctx = log.WithContext(ctx)

	log.Info().Str("version", g.Version).Bool("debug", g.Debug).Msg("Starting buildmode")

	if !g.Tracing {
		return ctx, func() {}, nil
	}

	log.Info().Msg("Tracing is enabled")
	shutdown, err := telemetry.Init(ctx, "buildmode", g.Version, p.String())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without it")
		return ctx, func() {}, nil
	}

	return ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown telemetry")
		}
	}, nil
}
