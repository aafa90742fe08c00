package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/twtest/csstest"
	"github.com/yacobolo/twtest/internal/engine"
	"github.com/yacobolo/twtest/internal/fixtures"
	"github.com/yacobolo/twtest/internal/report"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	k = koanf.New(".")

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".twtest.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set
	// so that flag defaults never shadow file or env values)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TWTEST_* prefix)
	if err := k.Load(env.Provider("TWTEST_", ".", func(s string) string {
		// TWTEST_VERIFY_ROOT -> verify.root
		// TWTEST_ENGINE_CONFIG -> engine.config
		// TWTEST_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TWTEST_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildOptions configures the build command.
type buildOptions struct {
	EngineConfig string
	Input        string
	Output       string
	Minify       bool
}

// verifyOptions configures the verify command.
type verifyOptions struct {
	EngineConfig string
	Root         string
	Pattern      string
	Update       bool
	Diff         bool
	Strict       bool
	Format       string
}

func buildBuildOptions() buildOptions {
	return buildOptions{
		EngineConfig: getStringWithFallback("tw-config", "engine.config", ""),
		Input:        getStringWithFallback("input", "build.input", ""),
		Output:       getStringWithFallback("output", "build.output", ""),
		Minify:       getBoolWithFallback("minify", "build.minify", false),
	}
}

func buildVerifyOptions() verifyOptions {
	return verifyOptions{
		EngineConfig: getStringWithFallback("tw-config", "engine.config", ""),
		Root:         getStringWithFallback("root", "verify.root", "testdata"),
		Pattern:      getStringWithFallback("pattern", "verify.pattern", fixtures.DefaultPattern),
		Update:       getBoolWithFallback("update", "verify.update", false),
		Diff:         getBoolWithFallback("diff", "verify.diff", false),
		Strict:       getBoolWithFallback("strict", "verify.strict", false),
		Format:       getStringWithFallback("output-format", "verify.output-format", "text"),
	}
}

// loadEngineConfig reads the styling config at path. An empty path yields
// an empty config, leaving only the base config.
func loadEngineConfig(path string) (csstest.Config, error) {
	if path == "" {
		return csstest.Config{}, nil
	}
	cfg, err := engine.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("styling config: %w", err)
	}
	return cfg, nil
}

func isQuiet() bool {
	return getBoolWithFallback("quiet", "quiet", false)
}

func isVerbose() bool {
	return getBoolWithFallback("verbose", "verbose", false)
}

func useColors() bool {
	return getBoolWithFallback("color", "color", false)
}

// newReporter writes to w, or nowhere in quiet mode.
func newReporter(w io.Writer, opts report.Options) *report.Reporter {
	if isQuiet() {
		w = io.Discard
	}
	opts.UseColors = opts.UseColors || useColors()
	return report.NewReporter(w, opts)
}

// newLogger returns the debug logger: funcr on w when verbose, discard
// otherwise.
func newLogger(w io.Writer) logr.Logger {
	if !isVerbose() || isQuiet() {
		return logr.Discard()
	}
	colors := useColors()
	return funcr.New(func(prefix, args string) {
		line := args
		if prefix != "" {
			line = prefix + ": " + args
		}
		fmt.Fprintln(w, report.RenderStyle(report.StyleGray, line, colors))
	}, funcr.Options{Verbosity: 1})
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
