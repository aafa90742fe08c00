// Package csstest helps test utility CSS plugins: it generates CSS from a
// config through the built-in pipeline, compares stylesheets modulo
// formatting, and detects known deprecation warnings.
//
// A typical test:
//
//	css, err := csstest.GeneratePluginCSS(ctx, csstest.Config{
//		"plugins": []any{myPlugin},
//	})
//	require.NoError(t, err)
//	csstest.AssertContainsCSS(t, css, ".skew-10 { transform: skewY(-10deg) }")
package csstest

import (
	"context"
	"strings"

	"github.com/go-logr/logr"

	"github.com/yacobolo/twtest/internal/engine"
)

type (
	// Config is a styling configuration. See BaseConfig for the defaults
	// every generated stylesheet starts from.
	Config = engine.Config
	// Plugin registers utilities, components, base styles or variants.
	Plugin = engine.Plugin
	// PluginFunc adapts a function to Plugin.
	PluginFunc = engine.PluginFunc
	// PluginAPI is handed to plugins during registration.
	PluginAPI = engine.PluginAPI
	// Rule is a selector with declarations.
	Rule = engine.Rule
	// Decl is a single declaration.
	Decl = engine.Decl
)

// DefaultCSS is the source used when none is given: every utility.
const DefaultCSS = engine.DefaultCSS

// Future flags set by BaseConfig.
const (
	FlagDefaultLineHeights           = engine.FlagDefaultLineHeights
	FlagStandardFontWeights          = engine.FlagStandardFontWeights
	FlagRemoveDeprecatedGapUtilities = engine.FlagRemoveDeprecatedGapUtilities
	FlagPurgeLayersByDefault         = engine.FlagPurgeLayersByDefault
)

// BaseConfig returns a fresh copy of the config that callers' configs are
// merged onto: an empty theme, core plugins off and every future flag on.
func BaseConfig() Config {
	return Config{
		"theme":       map[string]any{},
		"corePlugins": false,
		"future": map[string]any{
			FlagDefaultLineHeights:           true,
			FlagStandardFontWeights:          true,
			FlagRemoveDeprecatedGapUtilities: true,
			FlagPurgeLayersByDefault:         true,
		},
	}
}

// Generator runs configs through the pipeline. The zero value discards
// warnings and produces expanded CSS.
type Generator struct {
	// Logger receives warnings (V(0)) and debug output (V(1)).
	Logger logr.Logger
	// Minify minifies the output.
	Minify bool
}

// Generate merges config onto BaseConfig and processes css, which defaults
// to DefaultCSS. Several sources are joined with newlines. Pipeline errors
// are returned as is.
func (g Generator) Generate(ctx context.Context, config Config, css ...string) (string, error) {
	src := DefaultCSS
	if len(css) > 0 {
		src = strings.Join(css, "\n")
	}

	var opts []engine.Option
	if g.Logger.GetSink() != nil {
		opts = append(opts, engine.WithLogger(g.Logger))
	}
	if g.Minify {
		opts = append(opts, engine.WithMinify())
	}

	res, err := engine.Process(ctx, engine.Merge(BaseConfig(), config), src, opts...)
	if err != nil {
		return "", err
	}
	return res.CSS, nil
}

// GeneratePluginCSS is Generator{}.Generate.
func GeneratePluginCSS(ctx context.Context, config Config, css ...string) (string, error) {
	return Generator{}.Generate(ctx, config, css...)
}
