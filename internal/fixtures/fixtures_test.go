package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twtest/internal/engine"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func baseConfig() engine.Config {
	return engine.Config{"corePlugins": false}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.input.css", ".a { color: red }")
	writeFile(t, root, "a.output.css", ".a { color: red }")
	writeFile(t, root, "nested/b.input.css", "@tailwind utilities")
	writeFile(t, root, "nested/b.output.css", "")
	writeFile(t, root, "nested/b.config.yaml", "prefix: tw-\n")
	writeFile(t, root, "tmp/c.input.css", "")
	writeFile(t, root, ".gitignore", "tmp/\n")

	set, err := Discover(root, "")
	require.NoError(t, err)

	assert.Equal(t, []Fixture{
		{Name: "a", Input: "a.input.css", Output: "a.output.css"},
		{Name: "nested/b", Input: "nested/b.input.css", Output: "nested/b.output.css", Config: "nested/b.config.yaml"},
	}, set.Fixtures)
	assert.Equal(t, Stats{Discovered: 3, Skipped: 1}, set.Stats)
}

func TestDiscoverMissingOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lonely.input.css", "")

	_, err := Discover(root, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lonely.output.css")
}

func TestDiscoverInvalidPattern(t *testing.T) {
	_, err := Discover(t.TempDir(), "[")
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pass.input.css", ".a{color:red}")
	writeFile(t, root, "pass.output.css", ".a {\n  color: red;\n}\n")
	writeFile(t, root, "fail.input.css", ".a { color: blue }")
	writeFile(t, root, "fail.output.css", ".a { color: red }")
	writeFile(t, root, "broken.input.css", "@tailwind nope;")
	writeFile(t, root, "broken.output.css", "")
	writeFile(t, root, "warn.input.css", ".w { margin: 0 }")
	writeFile(t, root, "warn.output.css", ".w { margin: 0 }")
	writeFile(t, root, "warn.config.yaml", "target: ie11\n")

	set, err := Discover(root, "")
	require.NoError(t, err)

	results, err := Run(context.Background(), set, baseConfig(), logr.Discard())
	require.NoError(t, err)
	require.Len(t, results, 4)

	byName := make(map[string]Result)
	for _, r := range results {
		byName[r.Fixture.Name] = r
	}

	assert.True(t, byName["pass"].Passed())

	fail := byName["fail"]
	assert.False(t, fail.Passed())
	require.NotNil(t, fail.Mismatch)
	assert.Equal(t, ".a{\ncolor:blue\n}", fail.Mismatch.Actual)

	broken := byName["broken"]
	var syntaxErr *engine.SyntaxError
	assert.ErrorAs(t, broken.Err, &syntaxErr)

	warn := byName["warn"]
	assert.True(t, warn.Passed())
	require.Len(t, warn.Warnings, 1)
	assert.Equal(t, engine.TargetRemovedMessage, warn.Warnings[0].Args[0])

	n, err := Update(root, results)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	updated, err := os.ReadFile(filepath.Join(root, "fail.output.css"))
	require.NoError(t, err)
	assert.Equal(t, ".a {\n  color: blue;\n}\n", string(updated))
}

func TestRunCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.input.css", "")
	writeFile(t, root, "a.output.css", "")

	set, err := Discover(root, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, set, baseConfig(), logr.Discard())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
