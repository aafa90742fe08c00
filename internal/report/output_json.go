package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/twtest/internal/fixtures"
)

// JSONOutput is the JSON export schema for verify results.
type JSONOutput struct {
	Timestamp string        `json:"timestamp"`
	Root      string        `json:"root"`
	Summary   JSONSummary   `json:"summary"`
	Fixtures  []JSONFixture `json:"fixtures"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	Total      int `json:"total"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Errored    int `json:"errored"`
	Discovered int `json:"discovered"`
	Ignored    int `json:"ignored"`
}

// JSONFixture is the outcome of a single fixture.
type JSONFixture struct {
	Name     string     `json:"name"`
	Input    string     `json:"input"`
	Output   string     `json:"output"`
	Config   string     `json:"config,omitempty"`
	Status   string     `json:"status"` // pass | fail | error
	Error    string     `json:"error,omitempty"`
	Diff     string     `json:"diff,omitempty"`
	Warnings [][]string `json:"warnings,omitempty"`
}

// WriteJSON writes verify results as indented JSON.
func WriteJSON(w io.Writer, set *fixtures.Set, results []fixtures.Result) error {
	output := buildJSONOutput(set, results)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildJSONOutput(set *fixtures.Set, results []fixtures.Result) JSONOutput {
	out := JSONOutput{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Root:      set.Root,
		Summary: JSONSummary{
			Total:      len(results),
			Discovered: set.Stats.Discovered,
			Ignored:    set.Stats.Skipped,
		},
		Fixtures: make([]JSONFixture, 0, len(results)),
	}

	for _, r := range results {
		fx := JSONFixture{
			Name:   r.Fixture.Name,
			Input:  r.Fixture.Input,
			Output: r.Fixture.Output,
			Config: r.Fixture.Config,
			Status: "pass",
		}
		switch {
		case r.Err != nil:
			fx.Status = "error"
			fx.Error = r.Err.Error()
			out.Summary.Errored++
		case r.Mismatch != nil:
			fx.Status = "fail"
			fx.Diff = r.Mismatch.Diff()
			out.Summary.Failed++
		default:
			out.Summary.Passed++
		}
		for _, w := range r.Warnings {
			fx.Warnings = append(fx.Warnings, w.Args)
		}
		out.Fixtures = append(out.Fixtures, fx)
	}
	return out
}
