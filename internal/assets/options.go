package assets

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/wolfeidau/buildmode/internal/buildconfig"
)

var loaders = map[string]api.Loader{
	"base64":     api.LoaderBase64,
	"binary":     api.LoaderBinary,
	"copy":       api.LoaderCopy,
	"css":        api.LoaderCSS,
	"dataurl":    api.LoaderDataURL,
	"empty":      api.LoaderEmpty,
	"file":       api.LoaderFile,
	"global-css": api.LoaderGlobalCSS,
	"js":         api.LoaderJS,
	"json":       api.LoaderJSON,
	"jsx":        api.LoaderJSX,
	"local-css":  api.LoaderLocalCSS,
	"text":       api.LoaderText,
	"ts":         api.LoaderTS,
	"tsx":        api.LoaderTSX,
}

// hash placeholders from the config filename pattern that esbuild spells [hash]
var hashPlaceholders = strings.NewReplacer(
	"[contenthash]", "[hash]",
	"[chunkhash]", "[hash]",
	"[fullhash]", "[hash]",
)

// Options translates a build config into esbuild build options. workDir becomes
// esbuild's working directory, so relative entry sources resolve against it.
func Options(cfg buildconfig.Config, workDir string) api.BuildOptions {
	production := cfg.Mode.IsProduction()
	names, ext := entryNames(cfg.Output.Filename)

	entryPoints := make([]api.EntryPoint, 0, len(cfg.Entry))
	for _, name := range cfg.EntryNames() {
		entryPoints = append(entryPoints, api.EntryPoint{
			InputPath:  cfg.Entry[name],
			OutputPath: name,
		})
	}

	opts := api.BuildOptions{
		EntryPointsAdvanced: entryPoints,
		AbsWorkingDir:       workDir,
		Bundle:              true,
		Write:               true,
		Outdir:              cfg.Output.Path,
		EntryNames:          names,
		Format:              api.FormatIIFE,
		Platform:            api.PlatformBrowser,
		MinifyWhitespace:    production,
		MinifyIdentifiers:   production,
		MinifySyntax:        production,
		TreeShaking:         api.TreeShakingTrue,
		Sourcemap:           cond(cfg.Devtool.Enabled(), sourceMap(cfg.Devtool), api.SourceMapNone),
		Loader:              ruleLoaders(cfg.Module.Rules),
		Define: map[string]string{
			"process.env.NODE_ENV": strconv.Quote(cfg.Mode.String()),
		},
		Metafile: true,
		LogLevel: api.LogLevelSilent,
	}

	if ext != ".js" {
		opts.OutExtension = map[string]string{".js": ext}
	}

	return opts
}

// entryNames splits a filename pattern such as "[name].[contenthash].js" into the
// esbuild entry names template "[name].[hash]" and the output extension.
func entryNames(filename string) (string, string) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".js", ".mjs", ".cjs":
		filename = strings.TrimSuffix(filename, ext)
	default:
		ext = ".js"
	}
	return hashPlaceholders.Replace(filename), ext
}

// sourceMap maps an enabled devtool strategy onto the closest esbuild mode.
func sourceMap(devtool buildconfig.SourceMap) api.SourceMap {
	switch devtool {
	case "inline-source-map", "inline-cheap-source-map", "inline-cheap-module-source-map":
		return api.SourceMapInline
	case "hidden-source-map", "nosources-source-map":
		return api.SourceMapExternal
	default:
		return api.SourceMapLinked
	}
}

func ruleLoaders(rules []buildconfig.Rule) map[string]api.Loader {
	if len(rules) == 0 {
		return nil
	}

	out := make(map[string]api.Loader, len(rules))
	for _, rule := range rules {
		if loader, ok := loaders[rule.Loader]; ok {
			out[rule.Test] = loader
		}
	}
	return out
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
