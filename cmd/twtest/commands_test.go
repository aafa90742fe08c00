package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to a fresh temp dir for the duration of the test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0644))
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t)

	_, err := execute(t, "init")
	require.NoError(t, err)

	data, err := os.ReadFile(".twtest.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "verify:")
	assert.Contains(t, string(data), "build:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t)
	writeFile(t, ".twtest.yaml", "existing")

	_, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t)
	writeFile(t, ".twtest.yaml", "existing")

	_, err := execute(t, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(".twtest.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "verify:")
}

func TestInitExampleThenVerify(t *testing.T) {
	chdir(t)

	_, err := execute(t, "init", "--example")
	require.NoError(t, err)

	out, err := execute(t, "verify")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ok    example")
	assert.Contains(t, out, "1 fixture (1 passed, 0 failed, 0 errored)")

	// Without a subcommand the root command verifies too.
	_, err = execute(t)
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "twtest dev\n", out)
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "twtest")

	_, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestBuildCommand(t *testing.T) {
	chdir(t)
	writeFile(t, "tw.yaml", `
target: ie11
plugins:
  - utilities:
      .skew-10:
        transform: skewY(-10deg)
`)

	out, err := execute(t, "build", "--tw-config", "tw.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, ".skew-10 {\n  transform: skewY(-10deg);\n}\n")
	assert.Contains(t, out, "The `target` feature has been removed")

	_, err = execute(t, "build", "--tw-config", "tw.yaml", "--minify", "-o", "out.css", "--quiet")
	require.NoError(t, err)
	data, err := os.ReadFile("out.css")
	require.NoError(t, err)
	assert.Equal(t, ".skew-10{transform:skewY(-10deg)}", string(data))
}

func TestBuildCommand_Input(t *testing.T) {
	chdir(t)
	writeFile(t, "app.css", ".a { color: theme('colors.red.500') }")

	out, err := execute(t, "build", "app.css")
	require.NoError(t, err)
	assert.Equal(t, ".a {\n  color: #f56565;\n}\n", out)

	_, err = execute(t, "build", "missing.css")
	require.Error(t, err)
}

func TestBuildCommand_EngineError(t *testing.T) {
	chdir(t)
	writeFile(t, "bad.css", "@tailwind nothing;")

	_, err := execute(t, "build", "bad.css")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "`@tailwind nothing` is not a valid at-rule")
}

func TestCompareCommand(t *testing.T) {
	chdir(t)
	writeFile(t, "a.css", ".a{color:red}.b{color:blue}")
	writeFile(t, "b.css", ".a { color: red; }\n.b { color: blue; }\n")
	writeFile(t, "frag.css", ".b { color: blue }")
	writeFile(t, "other.css", ".c { color: green }")

	out, err := execute(t, "compare", "a.css", "b.css")
	require.NoError(t, err)
	assert.Equal(t, "match\n", out)

	out, err = execute(t, "compare", "a.css", "other.css")
	require.Error(t, err)
	assert.Contains(t, out, "line 1:")

	_, err = execute(t, "compare", "a.css", "frag.css", "other.css")
	require.Error(t, err)

	out, err = execute(t, "compare", "--contains", "a.css", "frag.css", "other.css")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing 1 of 2 fragments")
	assert.Contains(t, out, "missing fragment:\n.c{\ncolor:green\n}")

	_, err = execute(t, "compare", "--contains", "a.css", "frag.css")
	require.NoError(t, err)
}

func TestVerifyCommand_FailureAndUpdate(t *testing.T) {
	chdir(t)
	writeFile(t, "testdata/a.input.css", ".a { color: blue }")
	writeFile(t, "testdata/a.output.css", ".a { color: red }")

	out, err := execute(t, "verify", "--diff")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 fixtures failed")
	assert.Contains(t, out, "FAIL  a")

	_, err = execute(t, "verify", "--update")
	require.NoError(t, err)

	_, err = execute(t, "verify")
	require.NoError(t, err)
}

func TestVerifyCommand_StrictWarnings(t *testing.T) {
	chdir(t)
	writeFile(t, "fixtures/w.input.css", "")
	writeFile(t, "fixtures/w.output.css", "")
	writeFile(t, "fixtures/w.config.yaml", "target: ie11\n")
	writeFile(t, ".twtest.yaml", "verify:\n  root: fixtures\n")

	_, err := execute(t, "verify")
	require.NoError(t, err)

	_, err = execute(t, "verify", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
}

func TestVerifyCommand_NoFixtures(t *testing.T) {
	chdir(t)
	require.NoError(t, os.Mkdir("testdata", 0755))

	_, err := execute(t, "verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fixtures")
}

func TestVerifyCommand_JSON(t *testing.T) {
	chdir(t)
	writeFile(t, "testdata/a.input.css", ".a { color: red }")
	writeFile(t, "testdata/a.output.css", ".a{color:red}")

	out, err := execute(t, "verify", "--output-format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "pass"`)
	assert.Contains(t, out, `"passed": 1`)
}
