package buildconfig

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wolfeidau/buildmode/internal/profile"
)

const namePlaceholder = "[name]"

// Validate checks the config and returns a *ConfigError for the first problem found.
func (c Config) Validate() error {
	if c.Mode != profile.Development && c.Mode != profile.Production {
		return fieldError("mode", "must be development or production, got %d", int(c.Mode))
	}

	if len(c.Entry) == 0 {
		return fieldError("entry", "at least one entry point is required")
	}

	for _, name := range c.EntryNames() {
		if strings.TrimSpace(name) == "" {
			return fieldError("entry", "entry name must not be empty")
		}
		if strings.TrimSpace(c.Entry[name]) == "" {
			return fieldError(fmt.Sprintf("entry.%s", name), "source path must not be empty")
		}
	}

	if c.Output.Path == "" {
		return fieldError("output.path", "must not be empty")
	}
	if c.Output.Filename == "" {
		return fieldError("output.filename", "must not be empty")
	}
	if len(c.Entry) > 1 && !strings.Contains(c.Output.Filename, namePlaceholder) {
		return fieldError("output.filename", "must contain %s when there are %d entries", namePlaceholder, len(c.Entry))
	}

	if c.DevServer.Static == "" {
		return fieldError("devServer.static", "must not be empty")
	}
	if c.DevServer.Port < 1 || c.DevServer.Port > 65535 {
		return fieldError("devServer.port", "must be between 1 and 65535, got %d", c.DevServer.Port)
	}

	for i, rule := range c.Module.Rules {
		if !strings.HasPrefix(rule.Test, ".") || len(rule.Test) < 2 {
			return fieldError(fmt.Sprintf("module.rules[%d].test", i), "must be a file extension like .svg, got %q", rule.Test)
		}
		if !slices.Contains(Loaders, rule.Loader) {
			return fieldError(fmt.Sprintf("module.rules[%d].loader", i), "unknown loader %q", rule.Loader)
		}
	}

	return nil
}
