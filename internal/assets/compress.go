package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
)

var compressibleExts = map[string]bool{
	".js":   true,
	".css":  true,
	".map":  true,
	".json": true,
	".html": true,
	".svg":  true,
}

// precompress writes .gz and .zst siblings next to each compressible output so a
// static file server can hand them out without compressing on every request.
func precompress(ctx context.Context, files []api.OutputFile) error {
	log := zerolog.Ctx(ctx)

	for _, file := range files {
		if !compressibleExts[filepath.Ext(file.Path)] {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(file.Path), 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}

		gz, err := compressGzip(file.Contents)
		if err != nil {
			return fmt.Errorf("failed to gzip %s: %w", file.Path, err)
		}
		if err := os.WriteFile(file.Path+".gz", gz, 0o644); err != nil {
			return fmt.Errorf("failed to write %s.gz: %w", file.Path, err)
		}

		zst, err := compressZstd(file.Contents)
		if err != nil {
			return fmt.Errorf("failed to zstd %s: %w", file.Path, err)
		}
		if err := os.WriteFile(file.Path+".zst", zst, 0o644); err != nil {
			return fmt.Errorf("failed to write %s.zst: %w", file.Path, err)
		}

		log.Debug().
			Str("file", file.Path).
			Int("original_bytes", len(file.Contents)).
			Int("gzip_bytes", len(gz)).
			Int("zstd_bytes", len(zst)).
			Msg("Precompressed output")
	}

	return nil
}

func compressGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}
