package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envKey = "GOOGLE_CLOUD_PROJECT"

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGet(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		value, found, err := Get(filepath.Join(t.TempDir(), "none.env"), envKey)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("plain assignment", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "workshop.env")
		writeFile(t, path, "REGION=us-central1\nGOOGLE_CLOUD_PROJECT=workshop-abc123\n")

		value, found, err := Get(path, envKey)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "workshop-abc123", value)
	})

	t.Run("export prefix and quotes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "workshop.env")
		writeFile(t, path, "export GOOGLE_CLOUD_PROJECT=\"workshop-abc123\"\n")

		value, found, err := Get(path, envKey)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "workshop-abc123", value)
	})

	t.Run("key absent", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "workshop.env")
		writeFile(t, path, "REGION=us-central1\n")

		_, found, err := Get(path, envKey)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("commented assignment does not match", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "workshop.env")
		writeFile(t, path, "# GOOGLE_CLOUD_PROJECT=old-project\n")

		_, found, err := Get(path, envKey)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("prefix of another key does not match", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "workshop.env")
		writeFile(t, path, "GOOGLE_CLOUD_PROJECT_NUMBER=12345\n")

		_, found, err := Get(path, envKey)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSetRewritesInPlace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "workshop.env")
	writeFile(t, path, "# workshop environment\nREGION=us-central1\nGOOGLE_CLOUD_PROJECT=old-project\nZONE=us-central1-a\n")

	require.NoError(t, Set(path, "", envKey, "workshop-new42"))

	assert.Equal(t,
		"# workshop environment\nREGION=us-central1\nGOOGLE_CLOUD_PROJECT=workshop-new42\nZONE=us-central1-a\n",
		readFile(t, path))
}

func TestSetPreservesExportPrefix(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "workshop.env")
	writeFile(t, path, "export GOOGLE_CLOUD_PROJECT=old\n")

	require.NoError(t, Set(path, "", envKey, "workshop-new42"))

	assert.Equal(t, "export GOOGLE_CLOUD_PROJECT=workshop-new42\n", readFile(t, path))
}

func TestSetAppendsWhenKeyAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "workshop.env")
	writeFile(t, path, "REGION=us-central1\n")

	require.NoError(t, Set(path, "", envKey, "workshop-abc123"))

	assert.Equal(t, "REGION=us-central1\nGOOGLE_CLOUD_PROJECT=workshop-abc123\n", readFile(t, path))
}

func TestSetCopiesTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "workshop.env")
	template := filepath.Join(dir, "workshop.env.template")
	templateContent := "# fill these in\nREGION=us-central1\nGOOGLE_CLOUD_PROJECT=\n"
	writeFile(t, template, templateContent)

	require.NoError(t, Set(path, template, envKey, "workshop-abc123"))

	assert.Equal(t, "# fill these in\nREGION=us-central1\nGOOGLE_CLOUD_PROJECT=workshop-abc123\n", readFile(t, path))
	// The template itself is untouched.
	assert.Equal(t, templateContent, readFile(t, template))
}

func TestSetCreatesSingleLineFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "workshop.env")

	require.NoError(t, Set(path, filepath.Join(dir, "no-template"), envKey, "workshop-abc123"))

	assert.Equal(t, "GOOGLE_CLOUD_PROJECT=workshop-abc123\n", readFile(t, path))
}

func TestSetCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config", "env", "workshop.env")

	require.NoError(t, Set(path, "", envKey, "workshop-abc123"))

	assert.Equal(t, "GOOGLE_CLOUD_PROJECT=workshop-abc123\n", readFile(t, path))
}

func TestSetExistingFileWinsOverTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "workshop.env")
	template := filepath.Join(dir, "workshop.env.template")
	writeFile(t, path, "GOOGLE_CLOUD_PROJECT=old\nKEEP=yes\n")
	writeFile(t, template, "TEMPLATE_ONLY=1\n")

	require.NoError(t, Set(path, template, envKey, "new-project1"))

	content := readFile(t, path)
	assert.Equal(t, "GOOGLE_CLOUD_PROJECT=new-project1\nKEEP=yes\n", content)
	assert.NotContains(t, content, "TEMPLATE_ONLY")
}

func TestSetThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "workshop.env")

	require.NoError(t, Set(path, "", envKey, "workshop-0a1b2c3d4e5f"))

	value, found, err := Get(path, envKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "workshop-0a1b2c3d4e5f", value)
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "workshop.env")

	require.NoError(t, Set(path, "", envKey, "workshop-abc123"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	// The env file plus the lock file, nothing else.
	assert.ElementsMatch(t, []string{"workshop.env", "workshop.env.lock"}, names)
}

func TestSetFileWithoutTrailingNewline(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "workshop.env")
	writeFile(t, path, "REGION=us-central1")

	require.NoError(t, Set(path, "", envKey, "workshop-abc123"))

	assert.Equal(t, "REGION=us-central1\nGOOGLE_CLOUD_PROJECT=workshop-abc123\n", readFile(t, path))
}
