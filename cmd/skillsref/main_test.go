package main

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestUsageErrorClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		usage bool
	}{
		{name: "usagef sentinel", err: usagef("unknown format %q", "bogus"), usage: true},
		{name: "wrapped sentinel", err: errors.Wrap(usagef("bad flag"), "context"), usage: true},
		{name: "unknown command", err: errors.New(`unknown command "bogus" for "skillsref"`), usage: true},
		{name: "argument count", err: errors.New("accepts 1 arg(s), received 0"), usage: true},
		{name: "validation error", err: errors.New("failed to read skills directory ./skills"), usage: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.usage, isUsageError(tt.err))
		})
	}
}

func TestExecuteUnknownCommandIsUsageError(t *testing.T) {
	err := executeCommand(t, "bogus")
	require.Error(t, err)
	assert.True(t, isUsageError(err))
}

func TestExecuteUnknownFlagIsUsageError(t *testing.T) {
	err := executeCommand(t, "list", "--no-such-flag")
	require.Error(t, err)
	assert.True(t, isUsageError(err))
}

func TestValidateUnknownFormatIsUsageError(t *testing.T) {
	err := executeCommand(t, "validate", "--format", "bogus")
	require.Error(t, err)
	assert.True(t, isUsageError(err))
}

func TestRootCmdSilencesCobraErrors(t *testing.T) {
	assert.True(t, rootCmd.SilenceErrors)
}
