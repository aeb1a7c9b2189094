package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario, checks its inline expectations,
// and compares every step carrying a golden name against its golden
// file under testdata/golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result := Run(scenario)
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for i, step := range scenario.Steps {
		if step.Golden == "" {
			continue
		}
		g.Assert(t, step.Golden, []byte(result.Steps[i].Stdout))
	}

	return result
}
