package github_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_download_extracts_zipball(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/commits/aaa111",
		http.StatusOK,
		map[string]interface{}{
			"sha": "aaa111",
			"author": map[string]string{
				"date": "2024-03-01T12:00:00Z",
			},
		})

	var buf bytes.Buffer

	writer := zip.NewWriter(&buf)
	entry, err := writer.Create("hello-aaa111/README.md")
	require.NoError(t, err)
	_, err = entry.Write([]byte("# hello\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	fake.handle(
		"GET /repos/octocat/hello/zipball/aaa111",
		func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set(
				"Content-Type", "application/zip",
			)
			w.Write(buf.Bytes()) //nolint:errcheck
		})

	commit, err := repo.Commit(
		context.Background(), "aaa111",
	)
	require.NoError(t, err)

	dir := t.TempDir()

	require.NoError(
		t, commit.Download(context.Background(), dir),
	)

	got, err := os.ReadFile(filepath.Join(
		dir, "hello-aaa111", "README.md",
	))
	require.NoError(t, err)
	assert.Equal(t, "# hello\n", string(got))
}

func TestCommit_fetch_date(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/commits/aaa111",
		http.StatusOK,
		map[string]interface{}{
			"sha": "aaa111",
			"author": map[string]string{
				"date": "2024-03-01T12:00:00Z",
			},
		})

	commit, err := repo.Commit(
		context.Background(), "aaa111",
	)
	require.NoError(t, err)

	date, err := commit.FetchDate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, commit.Date(), date)
	assert.Equal(t, 2024, date.Year())
}
