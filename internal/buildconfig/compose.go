package buildconfig

import (
	"path/filepath"

	"github.com/wolfeidau/buildmode/internal/profile"
)

// Compose builds the configuration for profile p. Paths are joined onto baseDir;
// nothing else is read from the environment, so the same inputs always give the
// same Config.
func Compose(baseDir string, p profile.Profile) Config {
	outputPath := filepath.Join(baseDir, DefaultOutputDir)

	devtool := SourceMapDefault
	if p.IsProduction() {
		devtool = SourceMapDisabled
	}

	return Config{
		Mode:    p,
		Devtool: devtool,
		Entry: map[string]string{
			DefaultEntryName: DefaultEntrySource,
		},
		Output: Output{
			Path:     outputPath,
			Filename: DefaultFilename,
		},
		DevServer: DevServer{
			Static: outputPath,
			Port:   DefaultDevServerPort,
		},
		Module: Module{
			Rules: []Rule{},
		},
	}
}
