package assets

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"
)

// serveAttempts bounds how often the dev server start is retried while its port is busy.
const serveAttempts = 5

// Serve starts esbuild in watch mode and serves the static directory on the
// configured port. Every rebuild refreshes the cached metadata. It blocks until
// ctx is cancelled.
func (p *Pipeline) Serve(ctx context.Context) error {
	log := zerolog.Ctx(ctx)

	opts := p.options
	opts.Plugins = append(slices.Clone(opts.Plugins), p.rebuildPlugin(ctx))

	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		for _, msg := range ctxErr.Errors {
			log.Error().Str("error", msg.Text).Str("location", location(msg)).Msg("Build context error")
		}
		return fmt.Errorf("%w: failed to create build context", ErrBuildFailed)
	}
	defer buildCtx.Dispose()

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}

	serveOpts := api.ServeOptions{
		Servedir: p.config.DevServer.Static,
	}
	setPort(&serveOpts.Port, p.config.DevServer.Port)

	result, err := backoff.Retry(ctx, func() (api.ServeResult, error) {
		res, err := buildCtx.Serve(serveOpts)
		if err != nil {
			log.Warn().Err(err).Int("port", p.config.DevServer.Port).Msg("Dev server failed to start")
			return res, err
		}
		return res, nil
	},
		backoff.WithBackOff(newServeBackOff()),
		backoff.WithMaxTries(serveAttempts),
	)
	if err != nil {
		return fmt.Errorf("failed to start dev server: %w", err)
	}

	log.Info().
		Any("port", result.Port).
		Str("static", p.config.DevServer.Static).
		Msg("Dev server listening")

	<-ctx.Done()

	log.Info().Msg("Dev server stopping")

	return nil
}

// rebuildPlugin hooks the end of every watch rebuild so diagnostics, the metafile
// and metrics stay current while serving.
func (p *Pipeline) rebuildPlugin(ctx context.Context) api.Plugin {
	var started time.Time

	return api.Plugin{
		Name: "buildmode-rebuild",
		Setup: func(build api.PluginBuild) {
			build.OnStart(func() (api.OnStartResult, error) {
				started = time.Now()
				zerolog.Ctx(ctx).Debug().Msg("Rebuild started")
				return api.OnStartResult{}, nil
			})
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				if err := p.record(ctx, result, started); err != nil {
					zerolog.Ctx(ctx).Error().Err(err).Msg("Rebuild failed")
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

func newServeBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}

// setPort converts a validated port into esbuild's port field type.
func setPort[T ~int | ~uint16](dst *T, port int) {
	// #nosec G115 - port is validated to 1..65535 by buildconfig
	*dst = T(port)
}
