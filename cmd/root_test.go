package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFunction(t *testing.T) {
	tests := []struct {
		name     string
		validate func(t *testing.T)
	}{
		{
			name: "verify command setup",
			validate: func(t *testing.T) {
				assert.NotNil(t, RootCmd.Commands())
			},
		},
		{
			name: "verify setup command registration",
			validate: func(t *testing.T) {
				found, _, err := RootCmd.Find([]string{"setup"})
				require.NoError(t, err)
				assert.Equal(t, "setup", found.Name())
			},
		},
		{
			name: "verify doctor command registration",
			validate: func(t *testing.T) {
				found, _, err := RootCmd.Find([]string{"doctor"})
				require.NoError(t, err)
				assert.Equal(t, "doctor", found.Name())
			},
		},
		{
			name: "verify billing list command registration",
			validate: func(t *testing.T) {
				found, _, err := RootCmd.Find([]string{"billing", "list"})
				require.NoError(t, err)
				assert.Equal(t, "list", found.Name())
			},
		},
		{
			name: "verify version command registration",
			validate: func(t *testing.T) {
				found, _, err := RootCmd.Find([]string{"version"})
				require.NoError(t, err)
				assert.Equal(t, "version", found.Name())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t)
		})
	}
}

func TestRootPersistentFlags(t *testing.T) {
	logsLevel := RootCmd.PersistentFlags().Lookup("logs-level")
	require.NotNil(t, logsLevel, "logs-level flag should be defined")
	assert.Equal(t, "Info", logsLevel.DefValue)

	logsFile := RootCmd.PersistentFlags().Lookup("logs-file")
	require.NotNil(t, logsFile, "logs-file flag should be defined")
	assert.Equal(t, "/dev/stderr", logsFile.DefValue)

	configFlag := RootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag, "config flag should be defined")
	assert.Equal(t, "", configFlag.DefValue)

	noColor := RootCmd.PersistentFlags().Lookup("no-color")
	require.NotNil(t, noColor, "no-color flag should be defined")
	assert.Equal(t, "false", noColor.DefValue)
}

func TestVersionFlagParsing(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectValue bool
	}{
		{
			name:        "--version flag is parsed correctly",
			args:        []string{"--version"},
			expectValue: true,
		},
		{
			name:        "no --version flag defaults to false",
			args:        []string{},
			expectValue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag state before each test - both value and Changed state.
			versionFlag := RootCmd.PersistentFlags().Lookup("version")
			require.NotNil(t, versionFlag, "version flag should be defined")
			_ = versionFlag.Value.Set("false")
			versionFlag.Changed = false

			err := RootCmd.ParseFlags(tt.args)
			assert.NoError(t, err, "parsing flags should not error")

			versionSet, err := RootCmd.Flags().GetBool("version")
			assert.NoError(t, err)
			assert.Equal(t, tt.expectValue, versionSet)
		})
	}
}

func TestCleanup(t *testing.T) {
	assert.NotPanics(t, Cleanup, "Cleanup should be safe to call at any log level")
}
