package csstest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twtest/internal/engine"
)

// fakeT records failures instead of failing the running test.
type fakeT struct {
	errors []string
	failed bool
}

func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) FailNow() { f.failed = true }

func (f *fakeT) Helper() {}

func skewPlugin() Plugin {
	return PluginFunc(func(api *PluginAPI) error {
		api.AddUtilities([]Rule{
			engine.NewRule("."+api.E("skew-10"), engine.D("transform", "skewY(-10deg)")),
		}, "responsive", "hover")
		return nil
	})
}

func TestBaseConfigIsFresh(t *testing.T) {
	a := BaseConfig()
	a["future"].(map[string]any)[FlagDefaultLineHeights] = false
	a["corePlugins"] = true

	b := BaseConfig()
	assert.Equal(t, true, b["future"].(map[string]any)[FlagDefaultLineHeights])
	assert.Equal(t, false, b["corePlugins"])
}

func TestGenerateEmptyConfig(t *testing.T) {
	css, err := GeneratePluginCSS(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, "", css)
}

func TestGeneratePlugin(t *testing.T) {
	css, err := GeneratePluginCSS(context.Background(), Config{
		"theme":   map[string]any{"screens": map[string]any{"md": "768px"}},
		"plugins": []any{skewPlugin()},
	})
	require.NoError(t, err)

	AssertExactCSS(t, css, `
		.skew-10 { transform: skewY(-10deg) }
		.hover\:skew-10:hover { transform: skewY(-10deg) }
		@media (min-width: 768px) {
			.md\:skew-10 { transform: skewY(-10deg) }
			.md\:hover\:skew-10:hover { transform: skewY(-10deg) }
		}
	`)
}

func TestGenerateCustomSource(t *testing.T) {
	css, err := GeneratePluginCSS(context.Background(),
		Config{"corePlugins": []string{"opacity"}},
		".btn { @apply opacity-50 }")
	require.NoError(t, err)
	AssertExactCSS(t, css, ".btn { opacity: 0.5 }")
}

func TestGenerateInvalidConfig(t *testing.T) {
	_, err := GeneratePluginCSS(context.Background(), Config{"colour": "red"})

	var cfgErr *engine.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "colour", cfgErr.Key)
}

func TestGenerateDoesNotMutateConfig(t *testing.T) {
	cfg := Config{"theme": map[string]any{"extend": map[string]any{}}}
	_, err := GeneratePluginCSS(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, Config{"theme": map[string]any{"extend": map[string]any{}}}, cfg)
}

func TestGenerateConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			css, err := GeneratePluginCSS(context.Background(), Config{"plugins": []any{skewPlugin()}})
			assert.NoError(t, err)
			results[i] = css
		}(i)
	}
	wg.Wait()
	for _, css := range results[1:] {
		assert.Equal(t, results[0], css)
	}
}

func TestGeneratorWarnings(t *testing.T) {
	rec := NewRecorder()
	gen := Generator{Logger: rec.Logger()}

	_, err := gen.Generate(context.Background(), Config{"target": "relaxed"})
	require.NoError(t, err)
	assert.True(t, OnTailwind2(rec.Warnings()))

	rec.Reset()
	_, err = gen.Generate(context.Background(), Config{})
	require.NoError(t, err)
	assert.False(t, OnTailwind2(rec.Warnings()))
}

func TestGeneratorMinify(t *testing.T) {
	css, err := Generator{Minify: true}.Generate(context.Background(), Config{}, ".a { color: red; }")
	require.NoError(t, err)
	assert.Equal(t, ".a{color:red}", css)
}

func TestAssertExactCSS(t *testing.T) {
	ft := &fakeT{}
	assert.True(t, AssertExactCSS(ft, ".a{color:red}", ".a { color: red; }"))
	assert.Empty(t, ft.errors)

	assert.False(t, AssertExactCSS(ft, ".a{color:red}", ".a{color:blue}"))
	require.Len(t, ft.errors, 1)
	assert.Contains(t, ft.errors[0], "color:blue")
}

func TestAssertContainsCSS(t *testing.T) {
	ft := &fakeT{}
	assert.True(t, AssertContainsCSS(ft, ".a{color:red}.b{color:blue}", ".a{color:red}"))
	assert.Empty(t, ft.errors)

	assert.False(t, AssertContainsCSS(ft, ".a{color:red}", ".c{color:green}", ".d{color:green}"))
	require.Len(t, ft.errors, 2)
	assert.Contains(t, ft.errors[0], "to contain .c{")
	assert.Contains(t, ft.errors[1], "to contain .d{")
}

func TestRequireCSS(t *testing.T) {
	ft := &fakeT{}
	RequireExactCSS(ft, ".a { color: red }", ".a{color:red}")
	RequireContainsCSS(ft, ".a { color: red }", "color: red")
	assert.False(t, ft.failed)

	RequireContainsCSS(ft, ".a{color:red}", ".c{color:green}", ".d{color:green}")
	assert.True(t, ft.failed)
	assert.Len(t, ft.errors, 1)

	ft = &fakeT{}
	RequireExactCSS(ft, ".a{color:red}", ".a{color:blue}")
	assert.True(t, ft.failed)
}

func TestOnTailwind2(t *testing.T) {
	tests := []struct {
		name     string
		warnings []Warning
		want     bool
	}{
		{"nil", nil, false},
		{"empty", []Warning{}, false},
		{"unrelated", []Warning{{Args: []string{"something else"}}}, false},
		{"exact", []Warning{{Args: []string{TargetRemovedMessage}}}, true},
		{"embedded", []Warning{
			{Args: []string{"first"}},
			{Args: []string{"note", TargetRemovedMessage + " Please remove this option."}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnTailwind2(tt.warnings))
		})
	}
}

func TestRunFixtures(t *testing.T) {
	root := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}
	write("skew.input.css", "@tailwind utilities;")
	write("skew.output.css", ".skew-10 { transform: skewY(-10deg) }\n.hover\\:skew-10:hover { transform: skewY(-10deg) }")
	write("skew.config.yaml", "theme:\n  screens: {}\n")

	RunFixtures(t, root, Config{"plugins": []any{skewPlugin()}})
}
