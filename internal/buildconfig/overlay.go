package buildconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Overlay holds optional overrides loaded from a YAML file. Mode and devtool
// always follow the resolved profile and cannot be overridden.
type Overlay struct {
	Entry     map[string]string `yaml:"entry"`
	Output    Output            `yaml:"output"`
	DevServer DevServer         `yaml:"devServer"`
	Rules     []Rule            `yaml:"rules"`
}

// LoadOverlay reads and decodes an overlay file.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay: %w", err)
	}

	overlay, err := DecodeOverlay(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode overlay %s: %w", path, err)
	}

	return overlay, nil
}

// DecodeOverlay decodes YAML from r, rejecting unknown fields. An empty document is a valid, empty overlay.
func DecodeOverlay(r io.Reader) (*Overlay, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	overlay := &Overlay{}
	if err := dec.Decode(overlay); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return overlay, nil
}

// Apply merges the overlay onto a copy of cfg and validates the result.
// Overlay values win; rules are appended after the composed ones. Relative
// paths in the overlay are resolved against baseDir.
func Apply(baseDir string, cfg Config, overlay *Overlay) (Config, error) {
	merged := cfg.Clone()
	if overlay == nil {
		return merged, merged.Validate()
	}

	src := Config{
		Entry: overlay.Entry,
		Output: Output{
			Path:     resolvePath(baseDir, overlay.Output.Path),
			Filename: overlay.Output.Filename,
		},
		DevServer: DevServer{
			Static: resolvePath(baseDir, overlay.DevServer.Static),
			Port:   overlay.DevServer.Port,
		},
		Module: Module{
			Rules: overlay.Rules,
		},
	}

	// the dev server serves whatever the bundler writes unless told otherwise
	if src.Output.Path != "" && src.DevServer.Static == "" && cfg.DevServer.Static == cfg.Output.Path {
		src.DevServer.Static = src.Output.Path
	}

	if err := mergo.Merge(&merged, src, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return Config{}, fmt.Errorf("failed to merge overlay: %w", err)
	}

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}

	return merged, nil
}

func resolvePath(baseDir, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
