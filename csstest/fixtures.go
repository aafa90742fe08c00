package csstest

import (
	"context"
	"testing"

	"github.com/go-logr/logr"

	"github.com/yacobolo/twtest/internal/engine"
	"github.com/yacobolo/twtest/internal/fixtures"
)

// RunFixtures runs every golden fixture under root as a subtest. Each
// <name>.input.css is processed with config merged onto BaseConfig (and
// <name>.config.yaml when present) and compared with <name>.output.css.
func RunFixtures(t *testing.T, root string, config Config) {
	t.Helper()

	set, err := fixtures.Discover(root, fixtures.DefaultPattern)
	if err != nil {
		t.Fatalf("discover fixtures: %v", err)
	}
	if len(set.Fixtures) == 0 {
		t.Fatalf("no fixtures found under %s", root)
	}

	results, err := fixtures.Run(context.Background(), set, engine.Merge(BaseConfig(), config), logr.Discard())
	if err != nil {
		t.Fatalf("run fixtures: %v", err)
	}

	for _, r := range results {
		r := r
		t.Run(r.Fixture.Name, func(t *testing.T) {
			if r.Err != nil {
				t.Fatalf("%s: %v", r.Fixture.Input, r.Err)
			}
			if r.Mismatch != nil {
				t.Errorf("%s does not match %s (-expected +actual):\n%s",
					r.Fixture.Input, r.Fixture.Output, r.Mismatch.Diff())
			}
		})
	}
}
