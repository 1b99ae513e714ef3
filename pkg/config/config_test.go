package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/workshoplabs/labctl/errors"
)

// isolateConfigEnv points every config search location at empty temp
// directories so tests never read the developer's real labctl.yaml.
func isolateConfigEnv(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(CliConfigPathEnvVar, "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	t.Chdir(t.TempDir())
}

func TestInitCliConfigDefaults(t *testing.T) {
	isolateConfigEnv(t)

	got, err := InitCliConfig("")
	require.NoError(t, err)

	want := defaultCliConfig
	want.Initialized = true

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InitCliConfig() defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestInitCliConfigFromCurrentDirectory(t *testing.T) {
	isolateConfigEnv(t)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	content := `
billing:
  filter: "Free Trial"
project:
  prefix: "lab-"
`
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "labctl.yaml"), []byte(content), 0o644))

	cfg, err := InitCliConfig("")
	require.NoError(t, err)

	assert.Equal(t, "Free Trial", cfg.Billing.Filter)
	assert.Equal(t, "lab-", cfg.Project.Prefix)
	// Keys the file does not mention keep their defaults.
	assert.Equal(t, "gcloud", cfg.Gcloud.Bin)
	assert.Equal(t, "workshop.env", cfg.Env.File)
	assert.Equal(t, filepath.Join(cwd, "labctl.yaml"), cfg.CliConfigPath)
}

func TestInitCliConfigExplicitPath(t *testing.T) {
	isolateConfigEnv(t)

	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()
		configFile := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("gcloud:\n  bin: /opt/gcloud/bin/gcloud\n"), 0o644))

		cfg, err := InitCliConfig(configFile)
		require.NoError(t, err)
		assert.Equal(t, "/opt/gcloud/bin/gcloud", cfg.Gcloud.Bin)
		assert.Equal(t, configFile, cfg.CliConfigPath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := InitCliConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, NotFound)
	})
}

func TestInitCliConfigEnvDir(t *testing.T) {
	isolateConfigEnv(t)

	t.Run("directory with config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "labctl.yaml"), []byte("logs:\n  level: Debug\n"), 0o644))
		t.Setenv(CliConfigPathEnvVar, dir)

		cfg, err := InitCliConfig("")
		require.NoError(t, err)
		assert.Equal(t, "Debug", cfg.Logs.Level)
	})

	t.Run("directory without config errors", func(t *testing.T) {
		t.Setenv(CliConfigPathEnvVar, t.TempDir())

		_, err := InitCliConfig("")
		assert.ErrorIs(t, err, NotFound)
	})
}

func TestInitCliConfigUserConfigDir(t *testing.T) {
	isolateConfigEnv(t)

	configHome := os.Getenv("XDG_CONFIG_HOME")
	userDir := filepath.Join(configHome, "labctl")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "labctl.yaml"), []byte("env:\n  key: GCP_PROJECT\n"), 0o644))
	xdg.Reload()

	cfg, err := InitCliConfig("")
	require.NoError(t, err)
	assert.Equal(t, "GCP_PROJECT", cfg.Env.Key)
}

func TestInitCliConfigCwdOverridesUserConfig(t *testing.T) {
	isolateConfigEnv(t)

	configHome := os.Getenv("XDG_CONFIG_HOME")
	userDir := filepath.Join(configHome, "labctl")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "labctl.yaml"), []byte("billing:\n  filter: UserDir\n"), 0o644))
	xdg.Reload()

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "labctl.yaml"), []byte("billing:\n  filter: Cwd\n"), 0o644))

	cfg, err := InitCliConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Cwd", cfg.Billing.Filter, "current directory merges after the user config dir")
}

func TestProcessEnvVars(t *testing.T) {
	isolateConfigEnv(t)

	t.Setenv("LABCTL_GCLOUD_BIN", "/usr/local/bin/gcloud-beta")
	t.Setenv("LABCTL_BILLING_FILTER", "Promo")
	t.Setenv("LABCTL_PROJECT_PREFIX", "demo-")
	t.Setenv("LABCTL_ENV_FILE", "lab.env")
	t.Setenv("LABCTL_ENV_KEY", "PROJECT_ID")
	t.Setenv("LABCTL_LOGS_LEVEL", "Warning")

	cfg, err := InitCliConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/gcloud-beta", cfg.Gcloud.Bin)
	assert.Equal(t, "Promo", cfg.Billing.Filter)
	assert.Equal(t, "demo-", cfg.Project.Prefix)
	assert.Equal(t, "lab.env", cfg.Env.File)
	assert.Equal(t, "PROJECT_ID", cfg.Env.Key)
	assert.Equal(t, "Warning", cfg.Logs.Level)
}

func TestNotFoundCarriesHint(t *testing.T) {
	isolateConfigEnv(t)

	_, err := InitCliConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, NotFound)
	assert.Equal(t, 1, errUtils.GetExitCode(err))
}
