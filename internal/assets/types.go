package assets

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/wolfeidau/buildmode/internal/buildconfig"
	"github.com/wolfeidau/buildmode/internal/telemetry"
)

const metafileName = "meta.json"

var (
	ErrBuildFailed   = errors.New("esbuild failed with errors")
	ErrNotBuilt      = errors.New("assets not built yet, call Build() first")
	ErrEntryNotFound = errors.New("entrypoint not found in metadata")
)

type BuildMetadata struct {
	Outputs map[string]OutputInfo `json:"outputs"`
}

type OutputInfo struct {
	EntryPoint string       `json:"entryPoint"`
	Imports    []ImportInfo `json:"imports"`
	Bytes      int64        `json:"bytes"`
}

type ImportInfo struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external"`
}

// Pipeline hands a composed build config to esbuild and keeps the metadata of the last build.
type Pipeline struct {
	config   buildconfig.Config
	workDir  string
	options  api.BuildOptions
	metrics  *telemetry.Metrics
	metadata *BuildMetadata
	mu       sync.RWMutex
}

// New creates a pipeline for cfg. workDir must be absolute; entry sources are resolved against it.
func New(cfg buildconfig.Config, workDir string) *Pipeline {
	cfg = cfg.Clone()
	return &Pipeline{
		config:  cfg,
		workDir: workDir,
		options: Options(cfg, workDir),
		metrics: telemetry.GetMetrics(),
	}
}

// Config returns a copy of the config the pipeline was created with.
func (p *Pipeline) Config() buildconfig.Config {
	return p.config.Clone()
}

// MetafilePath is where the esbuild metafile is written after each build.
func (p *Pipeline) MetafilePath() string {
	return p.outputPath(metafileName)
}

func (p *Pipeline) outputPath(name string) string {
	out := p.config.Output.Path
	if !filepath.IsAbs(out) && p.workDir != "" {
		out = filepath.Join(p.workDir, out)
	}
	return filepath.Join(out, name)
}
