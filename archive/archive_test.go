package archive_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ghkit/archive"
)

// buildZip assembles an in-memory archive from name to content.
func buildZip(
	tb testing.TB,
	entries map[string]string,
) []byte {
	tb.Helper()

	var buf bytes.Buffer

	writer := zip.NewWriter(&buf)

	for name, content := range entries {
		entry, err := writer.Create(name)
		require.NoError(tb, err)

		_, err = entry.Write([]byte(content))
		require.NoError(tb, err)
	}

	require.NoError(tb, writer.Close())

	return buf.Bytes()
}

func TestExtractZip_writes_files(t *testing.T) {
	t.Parallel()

	data := buildZip(t, map[string]string{
		"repo-deadbeef/README.md":      "# hello\n",
		"repo-deadbeef/src/main.go":    "package main\n",
		"repo-deadbeef/docs/guide.txt": "read me\n",
	})

	dir := t.TempDir()

	require.NoError(t, archive.ExtractZip(data, dir))

	got, err := os.ReadFile(filepath.Join(
		dir, "repo-deadbeef", "src", "main.go",
	))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(got))

	got, err = os.ReadFile(filepath.Join(
		dir, "repo-deadbeef", "README.md",
	))
	require.NoError(t, err)
	assert.Equal(t, "# hello\n", string(got))
}

func TestExtractZip_empty_archive(t *testing.T) {
	t.Parallel()

	data := buildZip(t, nil)

	require.NoError(t, archive.ExtractZip(data, t.TempDir()))
}

func TestExtractZip_rejects_traversal(t *testing.T) {
	t.Parallel()

	data := buildZip(t, map[string]string{
		"../evil.txt": "pwned",
	})

	err := archive.ExtractZip(data, t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestExtractZip_not_an_archive(t *testing.T) {
	t.Parallel()

	err := archive.ExtractZip(
		[]byte("definitely not a zip"), t.TempDir(),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extracting archive")
}
