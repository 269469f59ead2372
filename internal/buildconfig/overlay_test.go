package buildconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/buildmode/internal/profile"
)

func TestDecodeOverlay(t *testing.T) {
	overlay, err := DecodeOverlay(strings.NewReader(`
entry:
  admin: ./src/Admin.fs.js
output:
  filename: "[name].[contenthash].js"
devServer:
  port: 9000
rules:
  - test: .svg
    loader: text
`))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"admin": "./src/Admin.fs.js"}, overlay.Entry)
	require.Equal(t, "[name].[contenthash].js", overlay.Output.Filename)
	require.Equal(t, 9000, overlay.DevServer.Port)
	require.Equal(t, []Rule{{Test: ".svg", Loader: "text"}}, overlay.Rules)
}

func TestDecodeOverlay_Empty(t *testing.T) {
	overlay, err := DecodeOverlay(strings.NewReader(""))
	require.NoError(t, err)
	require.NotNil(t, overlay)
	require.Empty(t, overlay.Entry)
}

func TestDecodeOverlay_RejectsModeAndUnknownFields(t *testing.T) {
	_, err := DecodeOverlay(strings.NewReader("mode: production\n"))
	require.Error(t, err)

	_, err = DecodeOverlay(strings.NewReader("devtool: eval\n"))
	require.Error(t, err)
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buildmode.yaml")
	require.NoError(t, os.WriteFile(path, []byte("devServer:\n  port: 3000\n"), 0600))

	overlay, err := LoadOverlay(path)
	require.NoError(t, err)
	require.Equal(t, 3000, overlay.DevServer.Port)

	_, err = LoadOverlay(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "app")

	t.Run("nil overlay returns validated copy", func(t *testing.T) {
		cfg := Compose(base, profile.Development)
		merged, err := Apply(base, cfg, nil)
		require.NoError(t, err)
		require.Equal(t, cfg, merged)

		merged.Entry["x"] = "./x.js"
		require.Len(t, cfg.Entry, 1)
	})

	t.Run("overrides and appends", func(t *testing.T) {
		cfg := Compose(base, profile.Development)
		cfg.Module.Rules = []Rule{{Test: ".txt", Loader: "text"}}

		merged, err := Apply(base, cfg, &Overlay{
			Entry:     map[string]string{"admin": "./src/Admin.fs.js"},
			DevServer: DevServer{Port: 9000},
			Rules:     []Rule{{Test: ".svg", Loader: "dataurl"}},
		})
		require.NoError(t, err)

		require.Equal(t, map[string]string{
			"app":   "./src/App.fs.js",
			"admin": "./src/Admin.fs.js",
		}, merged.Entry)
		require.Equal(t, 9000, merged.DevServer.Port)
		require.Equal(t, []Rule{
			{Test: ".txt", Loader: "text"},
			{Test: ".svg", Loader: "dataurl"},
		}, merged.Module.Rules)

		// input untouched
		require.Len(t, cfg.Entry, 1)
		require.Len(t, cfg.Module.Rules, 1)
	})

	t.Run("mode and devtool follow profile", func(t *testing.T) {
		cfg := Compose(base, profile.Production)
		merged, err := Apply(base, cfg, &Overlay{DevServer: DevServer{Port: 9001}})
		require.NoError(t, err)
		require.Equal(t, profile.Production, merged.Mode)
		require.False(t, merged.Devtool.Enabled())
	})

	t.Run("output path moves static dir", func(t *testing.T) {
		cfg := Compose(base, profile.Development)
		merged, err := Apply(base, cfg, &Overlay{Output: Output{Path: "public"}})
		require.NoError(t, err)
		require.Equal(t, filepath.Join(base, "public"), merged.Output.Path)
		require.Equal(t, merged.Output.Path, merged.DevServer.Static)
	})

	t.Run("explicit static dir is kept", func(t *testing.T) {
		cfg := Compose(base, profile.Development)
		static := filepath.Join(string(filepath.Separator), "var", "www")
		merged, err := Apply(base, cfg, &Overlay{
			Output:    Output{Path: "public"},
			DevServer: DevServer{Static: static},
		})
		require.NoError(t, err)
		require.Equal(t, filepath.Join(base, "public"), merged.Output.Path)
		require.Equal(t, static, merged.DevServer.Static)
	})

	t.Run("invalid result", func(t *testing.T) {
		cfg := Compose(base, profile.Development)
		_, err := Apply(base, cfg, &Overlay{
			Entry:  map[string]string{"admin": "./src/Admin.fs.js"},
			Output: Output{Filename: "bundle.js"},
		})
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = Apply(base, cfg, &Overlay{Rules: []Rule{{Test: ".fs", Loader: "fable"}}})
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
