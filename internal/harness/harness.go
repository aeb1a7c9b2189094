package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/latsq/internal/cli"
)

// StepResult records one executed step.
type StepResult struct {
	Name     string `json:"name,omitempty"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool `json:"pass"`

	// Steps contains the captured output of every step in order.
	Steps []StepResult `json:"steps"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes every step of a scenario against a fresh root command
// and checks its expectations. Golden comparisons are not performed
// here; see RunWithGolden.
func Run(scenario *Scenario) *Result {
	result := &Result{Pass: true}

	for i, step := range scenario.Steps {
		label := step.Name
		if label == "" {
			label = fmt.Sprintf("steps[%d]", i)
		}

		sr := ExecuteStep(step)
		result.Steps = append(result.Steps, sr)

		switch {
		case step.WantError && sr.ExitCode == 0:
			result.AddError("%s: expected failure, command succeeded", label)
		case !step.WantError && sr.ExitCode != 0:
			result.AddError("%s: command failed with exit %d: %s", label, sr.ExitCode, sr.Stderr)
		case step.WantError && step.WantExit != sr.ExitCode:
			result.AddError("%s: exit code %d, want %d", label, sr.ExitCode, step.WantExit)
		}

		if step.WantStdout != "" && sr.Stdout != step.WantStdout {
			result.AddError("%s: stdout %q, want %q", label, sr.Stdout, step.WantStdout)
		}
	}

	return result
}

// ExecuteStep runs a single CLI invocation and captures its output.
func ExecuteStep(step Step) StepResult {
	cmd := cli.NewRootCommand()
	cmd.SetArgs(step.Args)
	cmd.SetIn(strings.NewReader(step.Stdin))

	var out, errOut strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	exit := 0
	if err := cmd.Execute(); err != nil {
		exit = cli.GetExitCode(err)
		fmt.Fprintln(&errOut, err)
	}

	return StepResult{
		Name:     step.Name,
		Stdout:   out.String(),
		Stderr:   errOut.String(),
		ExitCode: exit,
	}
}
