package buildconfig

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Encode and WriteFile.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q (want json or yaml)", s)
	}
}

// Encode writes cfg to w in the given format.
func Encode(w io.Writer, cfg Config, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile atomically replaces path with the encoded config.
func WriteFile(path string, cfg Config, format Format) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer func() {
		// no-op once the file has been committed
		_ = pendingFile.Cleanup()
	}()

	if err := Encode(pendingFile, cfg, format); err != nil {
		return err
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace config file: %w", err)
	}

	return nil
}
