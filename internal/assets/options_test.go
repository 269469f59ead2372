package assets

import (
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/buildmode/internal/buildconfig"
	"github.com/wolfeidau/buildmode/internal/profile"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name      string
		profile   profile.Profile
		minify    bool
		sourcemap api.SourceMap
		define    string
	}{
		{
			name:      "development",
			profile:   profile.Development,
			minify:    false,
			sourcemap: api.SourceMapLinked,
			define:    `"development"`,
		},
		{
			name:      "production",
			profile:   profile.Production,
			minify:    true,
			sourcemap: api.SourceMapNone,
			define:    `"production"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := buildconfig.Compose("/work", tt.profile)
			opts := Options(cfg, "/work")

			require.Equal(t, []api.EntryPoint{{InputPath: "./src/App.fs.js", OutputPath: "app"}}, opts.EntryPointsAdvanced)
			require.Equal(t, "/work", opts.AbsWorkingDir)
			require.Equal(t, "/work/dist", opts.Outdir)
			require.Equal(t, "[name]", opts.EntryNames)
			require.True(t, opts.Bundle)
			require.True(t, opts.Write)
			require.True(t, opts.Metafile)
			require.Equal(t, tt.minify, opts.MinifyWhitespace)
			require.Equal(t, tt.minify, opts.MinifyIdentifiers)
			require.Equal(t, tt.minify, opts.MinifySyntax)
			require.Equal(t, tt.sourcemap, opts.Sourcemap)
			require.Equal(t, tt.define, opts.Define["process.env.NODE_ENV"])
			require.Nil(t, opts.Loader)
			require.Nil(t, opts.OutExtension)
		})
	}
}

func TestOptions_MultipleEntriesSorted(t *testing.T) {
	cfg := buildconfig.Compose("/work", profile.Development)
	cfg.Entry["admin"] = "./src/Admin.fs.js"

	opts := Options(cfg, "/work")
	require.Equal(t, []api.EntryPoint{
		{InputPath: "./src/Admin.fs.js", OutputPath: "admin"},
		{InputPath: "./src/App.fs.js", OutputPath: "app"},
	}, opts.EntryPointsAdvanced)
}

func TestOptions_Rules(t *testing.T) {
	cfg := buildconfig.Compose("/work", profile.Development)
	cfg.Module.Rules = []buildconfig.Rule{
		{Test: ".svg", Loader: "dataurl"},
		{Test: ".txt", Loader: "text"},
		{Test: ".txt", Loader: "file"},
	}

	opts := Options(cfg, "/work")
	require.Equal(t, map[string]api.Loader{
		".svg": api.LoaderDataURL,
		".txt": api.LoaderFile,
	}, opts.Loader)
}

func TestOptions_ModuleExtension(t *testing.T) {
	cfg := buildconfig.Compose("/work", profile.Development)
	cfg.Output.Filename = "[name].[contenthash].mjs"

	opts := Options(cfg, "/work")
	require.Equal(t, "[name].[hash]", opts.EntryNames)
	require.Equal(t, map[string]string{".js": ".mjs"}, opts.OutExtension)
}

func TestEntryNames(t *testing.T) {
	tests := []struct {
		filename string
		names    string
		ext      string
	}{
		{filename: "[name].js", names: "[name]", ext: ".js"},
		{filename: "[name].[contenthash].js", names: "[name].[hash]", ext: ".js"},
		{filename: "[name]-[chunkhash].cjs", names: "[name]-[hash]", ext: ".cjs"},
		{filename: "bundle.[fullhash].js", names: "bundle.[hash]", ext: ".js"},
		{filename: "[name]", names: "[name]", ext: ".js"},
		{filename: "[name].[contenthash]", names: "[name].[hash]", ext: ".js"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			names, ext := entryNames(tt.filename)
			require.Equal(t, tt.names, names)
			require.Equal(t, tt.ext, ext)
		})
	}
}

func TestSourceMap(t *testing.T) {
	tests := []struct {
		devtool  buildconfig.SourceMap
		expected api.SourceMap
	}{
		{devtool: "source-map", expected: api.SourceMapLinked},
		{devtool: "cheap-source-map", expected: api.SourceMapLinked},
		{devtool: "eval", expected: api.SourceMapLinked},
		{devtool: "inline-source-map", expected: api.SourceMapInline},
		{devtool: "hidden-source-map", expected: api.SourceMapExternal},
		{devtool: "nosources-source-map", expected: api.SourceMapExternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.devtool), func(t *testing.T) {
			require.Equal(t, tt.expected, sourceMap(tt.devtool))
		})
	}
}

func TestLoaders_CoverConfigVocabulary(t *testing.T) {
	for _, name := range buildconfig.Loaders {
		_, ok := loaders[name]
		require.True(t, ok, "loader %q accepted by validation but unknown to esbuild options", name)
	}
	require.Len(t, loaders, len(buildconfig.Loaders))
}

func TestSetPort(t *testing.T) {
	var small uint16
	setPort(&small, 8080)
	require.Equal(t, uint16(8080), small)

	var wide int
	setPort(&wide, 65535)
	require.Equal(t, 65535, wide)
}
