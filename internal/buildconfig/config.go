package buildconfig

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/wolfeidau/buildmode/internal/profile"
)

const (
	// DefaultEntryName is the logical bundle name, substituted for [name] in the output filename.
	DefaultEntryName = "app"
	// DefaultEntrySource is the bundler entry point, relative to the base directory
	DefaultEntrySource = "./src/App.fs.js"
	// DefaultOutputDir is joined onto the base directory to produce the output path
	DefaultOutputDir = "./dist"
	// DefaultFilename is the output filename pattern
	DefaultFilename = "[name].js"
	// DefaultDevServerPort is the port the external dev server listens on
	DefaultDevServerPort = 8080
)

// SourceMap is the devtool setting handed to the bundler. The zero value means
// source maps are disabled; any other value names a strategy.
type SourceMap string

const (
	SourceMapDisabled SourceMap = ""
	SourceMapDefault  SourceMap = "source-map"
)

// Enabled reports whether a source map strategy is set.
func (s SourceMap) Enabled() bool {
	return s != SourceMapDisabled
}

func (s SourceMap) String() string {
	if !s.Enabled() {
		return "false"
	}
	return string(s)
}

// MarshalJSON encodes a disabled source map as false, matching the bundler's devtool schema.
func (s SourceMap) MarshalJSON() ([]byte, error) {
	if !s.Enabled() {
		return []byte("false"), nil
	}
	return json.Marshal(string(s))
}

func (s *SourceMap) UnmarshalJSON(data []byte) error {
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err == nil {
		if enabled {
			return fmt.Errorf("devtool: true is not a source map strategy")
		}
		*s = SourceMapDisabled
		return nil
	}

	var strategy string
	if err := json.Unmarshal(data, &strategy); err != nil {
		return fmt.Errorf("devtool must be false or a strategy name: %w", err)
	}
	*s = SourceMap(strategy)
	return nil
}

func (s SourceMap) MarshalYAML() (any, error) {
	if !s.Enabled() {
		return false, nil
	}
	return string(s), nil
}

// Config is the build configuration consumed by the bundler.
type Config struct {
	// Optimization label, encoded as "production" or "development"
	Mode profile.Profile `json:"mode" yaml:"mode"`
	// Source map mode
	Devtool SourceMap `json:"devtool" yaml:"devtool"`
	// Logical bundle name to source file path
	Entry map[string]string `json:"entry" yaml:"entry"`
	// Where artifacts are written and how they are named
	Output Output `json:"output" yaml:"output"`
	// Static serving directory and port for the dev server
	DevServer DevServer `json:"devServer" yaml:"devServer"`
	// Per-file transformation rules
	Module Module `json:"module" yaml:"module"`
}

// Output is where the bundler writes artifacts and the filename pattern it uses.
type Output struct {
	Path     string `json:"path" yaml:"path"`
	Filename string `json:"filename" yaml:"filename"`
}

// DevServer describes what the external dev server serves and where.
type DevServer struct {
	Static string `json:"static" yaml:"static"`
	Port   int    `json:"port" yaml:"port"`
}

// Module holds the per-file transformation rules, empty by default.
type Module struct {
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Rule maps files with the Test extension (e.g. ".svg") to a bundler loader.
type Rule struct {
	Test   string `json:"test" yaml:"test"`
	Loader string `json:"loader" yaml:"loader"`
}

// Clone returns a deep copy so callers can hand the result off without sharing maps or slices.
func (c Config) Clone() Config {
	out := c
	out.Entry = maps.Clone(c.Entry)
	if out.Entry == nil {
		out.Entry = map[string]string{}
	}
	out.Module.Rules = slices.Clone(c.Module.Rules)
	if out.Module.Rules == nil {
		out.Module.Rules = []Rule{}
	}
	return out
}

// EntryNames returns the logical entry names in sorted order.
func (c Config) EntryNames() []string {
	return slices.Sorted(maps.Keys(c.Entry))
}

// Loaders lists the loader names a Rule may reference.
var Loaders = []string{
	"base64",
	"binary",
	"copy",
	"css",
	"dataurl",
	"empty",
	"file",
	"global-css",
	"js",
	"json",
	"jsx",
	"local-css",
	"text",
	"ts",
	"tsx",
}
