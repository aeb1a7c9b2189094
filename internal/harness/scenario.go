package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a named sequence of
// CLI invocations with expectations on their output.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden files.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are executed in order against fresh root commands.
	Steps []Step `yaml:"steps"`
}

// Step is a single CLI invocation with its expectations.
type Step struct {
	// Name labels the step in failure messages. Optional.
	Name string `yaml:"name,omitempty"`

	// Args is the full argument list passed to the root command.
	Args []string `yaml:"args"`

	// Stdin is fed to the command's standard input.
	Stdin string `yaml:"stdin,omitempty"`

	// WantStdout, when non-empty, must match the step's standard
	// output exactly.
	WantStdout string `yaml:"want_stdout,omitempty"`

	// Golden, when non-empty, compares standard output against the
	// named golden file instead of WantStdout.
	Golden string `yaml:"golden,omitempty"`

	// WantError marks steps whose command must fail.
	WantError bool `yaml:"want_error,omitempty"`

	// WantExit is the expected exit code; zero means success.
	WantExit int `yaml:"want_exit,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if len(step.Args) == 0 {
			return fmt.Errorf("steps[%d]: args is required", i)
		}
		if step.Golden != "" && step.WantStdout != "" {
			return fmt.Errorf("steps[%d]: golden and want_stdout are mutually exclusive", i)
		}
		if step.WantError && step.WantExit == 0 {
			return fmt.Errorf("steps[%d]: want_error requires a nonzero want_exit", i)
		}
		if !step.WantError && step.WantExit != 0 {
			return fmt.Errorf("steps[%d]: want_exit requires want_error", i)
		}
	}

	return nil
}
