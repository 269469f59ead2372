package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/buildmode/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Build runs esbuild once with the configured settings and loads metadata
func (p *Pipeline) Build(ctx context.Context) error {
	ctx, span := telemetry.Tracer().Start(ctx, "assets.Build")
	defer span.End()

	span.SetAttributes(
		attribute.String("mode", p.config.Mode.String()),
		attribute.StringSlice("entrypoints", p.config.EntryNames()),
	)

	zerolog.Ctx(ctx).Info().
		Strs("entrypoints", p.config.EntryNames()).
		Str("outdir", p.config.Output.Path).
		Msg("Building assets")

	started := time.Now()
	result := api.Build(p.options)

	if err := p.record(ctx, &result, started); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// record handles a finished esbuild run: it logs diagnostics, writes the metafile,
// caches the parsed metadata and precompresses production output.
func (p *Pipeline) record(ctx context.Context, result *api.BuildResult, started time.Time) error {
	log := zerolog.Ctx(ctx)

	for _, msg := range result.Warnings {
		log.Warn().Str("warning", msg.Text).Str("location", location(msg)).Msg("Build warning")
	}

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			log.Error().Str("error", msg.Text).Str("location", location(msg)).Msg("Build error")
		}
		p.metrics.RecordBuild(ctx, p.config.Mode.String(), started, 0, true)
		return fmt.Errorf("%w: %d errors", ErrBuildFailed, len(result.Errors))
	}

	var outputBytes int64
	for _, file := range result.OutputFiles {
		outputBytes += int64(len(file.Contents))
		log.Debug().Str("file", file.Path).Int("bytes", len(file.Contents)).Msg("Built file")
	}

	if err := os.MkdirAll(filepath.Dir(p.MetafilePath()), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := os.WriteFile(p.MetafilePath(), []byte(result.Metafile), 0o644); err != nil {
		return fmt.Errorf("failed to write metafile: %w", err)
	}

	var metadata BuildMetadata
	if err := json.Unmarshal([]byte(result.Metafile), &metadata); err != nil {
		return fmt.Errorf("failed to parse metafile: %w", err)
	}

	if p.config.Mode.IsProduction() {
		if err := precompress(ctx, result.OutputFiles); err != nil {
			return err
		}
	}

	p.mu.Lock()
	p.metadata = &metadata
	p.mu.Unlock()

	p.metrics.RecordBuild(ctx, p.config.Mode.String(), started, outputBytes, false)

	log.Info().
		Int("files", len(result.OutputFiles)).
		Int64("bytes", outputBytes).
		Dur("duration", time.Since(started)).
		Msg("Build complete")

	return nil
}

// Scripts returns the ordered list of script paths needed for the named entry, as
// served from the dev server root: the entry bundle first, then its imports.
func (p *Pipeline) Scripts(entryName string) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.metadata == nil {
		return nil, ErrNotBuilt
	}

	source, ok := p.config.Entry[entryName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entryName)
	}
	entryPointPath := p.metafilePath(source)

	scripts := []string{}
	visited := make(map[string]bool)

	// Find the output file for this entrypoint
	for outputPath, info := range p.metadata.Outputs {
		if info.EntryPoint == entryPointPath {
			scripts = append(scripts, p.servePath(outputPath))
			visited[outputPath] = true
			p.addDependencies(info, &scripts, visited)
			return scripts, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entryName)
}

func (p *Pipeline) addDependencies(output OutputInfo, scripts *[]string, visited map[string]bool) {
	for _, imp := range output.Imports {
		if imp.External || visited[imp.Path] {
			continue
		}
		visited[imp.Path] = true
		*scripts = append(*scripts, p.servePath(imp.Path))

		if chunkInfo, exists := p.metadata.Outputs[imp.Path]; exists {
			p.addDependencies(chunkInfo, scripts, visited)
		}
	}
}

// metafilePath converts an entry source into the form esbuild records in the
// metafile: slash separated and relative to the working directory.
func (p *Pipeline) metafilePath(source string) string {
	if filepath.IsAbs(source) && p.workDir != "" {
		if rel, err := filepath.Rel(p.workDir, source); err == nil {
			source = rel
		}
	}
	return filepath.ToSlash(filepath.Clean(source))
}

// servePath converts a metafile output path into a URL path under the dev server static dir.
func (p *Pipeline) servePath(outputPath string) string {
	abs := filepath.Join(p.workDir, filepath.FromSlash(outputPath))

	static := p.config.DevServer.Static
	if !filepath.IsAbs(static) {
		static = filepath.Join(p.workDir, static)
	}

	rel, err := filepath.Rel(static, abs)
	if err != nil {
		return "/" + outputPath
	}
	return "/" + filepath.ToSlash(rel)
}

func location(msg api.Message) string {
	if msg.Location == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", msg.Location.File, msg.Location.Line, msg.Location.Column)
}
