package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: sample
description: a sample scenario
steps:
  - name: first
    args: [pretty-print]
    stdin: "012120201"
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, []string{"pretty-print"}, s.Steps[0].Args)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenarioValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps:\n  - args: [testing]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps:\n  - args: [testing]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "step without args",
			content: "name: n\ndescription: d\nsteps:\n  - stdin: x\n",
			wantErr: "args is required",
		},
		{
			name: "golden and want_stdout conflict",
			content: "name: n\ndescription: d\nsteps:\n" +
				"  - args: [testing]\n    golden: g\n    want_stdout: x\n",
			wantErr: "mutually exclusive",
		},
		{
			name: "want_error without exit code",
			content: "name: n\ndescription: d\nsteps:\n" +
				"  - args: [testing]\n    want_error: true\n",
			wantErr: "nonzero want_exit",
		},
		{
			name:    "unknown field",
			content: "name: n\ndescription: d\nassertions: []\nsteps:\n  - args: [testing]\n",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
