package fetcher

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestZIP(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestExtractZIPFile(t *testing.T) {
	zipPath := writeTestZIP(t, map[string]string{
		"languoid.csv": "id,name\nabcd1234,Test",
		"README":       "ignored",
	})

	dest := t.TempDir()
	path, err := ExtractZIPFile(zipPath, "languoid.csv", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name\nabcd1234,Test", string(data))
}

func TestExtractZIPFileMissingEntry(t *testing.T) {
	zipPath := writeTestZIP(t, map[string]string{"other.txt": "x"})

	_, err := ExtractZIPFile(zipPath, "languoid.csv", t.TempDir())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExtractZIPFileSlip(t *testing.T) {
	zipPath := writeTestZIP(t, map[string]string{"../evil.txt": "x"})

	_, err := ExtractZIPFile(zipPath, "../evil.txt", t.TempDir())
	assert.Error(t, err)
}
