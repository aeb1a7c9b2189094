package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "latsq", cmd.Use)
	assert.Contains(t, cmd.Long, "Latin squares")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{
		"pretty-print", "normalize-paratopy", "normalize-mols",
		"generate-latin-squares", "generate-isotopy-classes", "generate-paratopy-classes",
		"find-scs", "find-lcs", "find-mols", "find-all-mols", "find-orthogonal",
		"find-all-cs", "decode-cs", "encode", "decode",
		"solve", "random", "shuffle", "analyse", "testing",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestGenerateParatopyClassesFlags(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"generate-paratopy-classes"})
	require.NoError(t, err)

	threadsFlag := sub.Flags().Lookup("max-threads")
	require.NotNil(t, threadsFlag)
	assert.Equal(t, "1", threadsFlag.DefValue)

	jobFlag := sub.Flags().Lookup("job")
	require.NotNil(t, jobFlag)
	assert.Equal(t, "", jobFlag.DefValue)
}

func TestFindSCSFlags(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"find-scs"})
	require.NoError(t, err)

	reverseFlag := sub.Flags().Lookup("reverse")
	require.NotNil(t, reverseFlag)
	assert.Equal(t, "false", reverseFlag.DefValue)
}

func TestFindAllMOLSFlags(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"find-all-mols"})
	require.NoError(t, err)

	require.NotNil(t, sub.Flags().Lookup("checkpoint"))
	resumeFlag := sub.Flags().Lookup("resume")
	require.NotNil(t, resumeFlag)
	assert.Equal(t, "false", resumeFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "testing"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
