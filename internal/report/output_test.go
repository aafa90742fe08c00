package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twtest/internal/fixtures"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		flag string
		want OutputFormat
	}{
		{"", OutputText},
		{"text", OutputText},
		{"summary", OutputSummary},
		{"json", OutputJSON},
		{"yaml", OutputText},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetermineOutputFormat(tt.flag), tt.flag)
	}
}

func TestWriteJSON(t *testing.T) {
	set := &fixtures.Set{Root: "testdata", Stats: fixtures.Stats{Discovered: 3}}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, set, sampleResults()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, JSONSummary{Total: 3, Passed: 1, Failed: 1, Errored: 1, Discovered: 3}, out.Summary)
	require.Len(t, out.Fixtures, 3)
	assert.Equal(t, "pass", out.Fixtures[0].Status)
	assert.Equal(t, "fail", out.Fixtures[1].Status)
	assert.Contains(t, out.Fixtures[1].Diff, "color:red")
	assert.Equal(t, [][]string{{"careful", "details here"}}, out.Fixtures[1].Warnings)
	assert.Equal(t, "error", out.Fixtures[2].Status)
	assert.Equal(t, "line 1: boom", out.Fixtures[2].Error)
}

func TestWriteOutputSummary(t *testing.T) {
	set := &fixtures.Set{Root: "testdata"}
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, set, sampleResults(), OutputSummary, Options{}, false))

	assert.NotContains(t, buf.String(), "FAIL")
	assert.Contains(t, buf.String(), "Fixture Statistics")
}
