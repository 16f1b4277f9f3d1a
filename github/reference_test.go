package github_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ghkit/github"
)

// refObject builds the wire shape of a ref pointing at a git
// object.
func refObject(ref, kind, sha string) map[string]interface{} {
	return map[string]interface{}{
		"ref": ref,
		"object": map[string]string{
			"type": kind,
			"sha":  sha,
		},
	}
}

func TestReference_parses_qualified_branch(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/heads/main",
		http.StatusOK,
		refObject("refs/heads/main", "commit", "aaa111"),
	)

	ref, err := repo.Reference(
		context.Background(), "refs/heads/main",
	)

	require.NoError(t, err)
	assert.Equal(t, github.RefBranch, ref.Kind())
	assert.Equal(t, "main", ref.Name())
	assert.True(t, ref.IsBranch())
	assert.Equal(t, "heads/main", ref.String())
}

func TestReference_parses_short_tag(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/tags/v1.0.0",
		http.StatusOK,
		refObject("refs/tags/v1.0.0", "commit", "bbb222"),
	)

	ref, err := repo.Reference(
		context.Background(), "tags/v1.0.0",
	)

	require.NoError(t, err)
	assert.True(t, ref.IsTag())
	assert.Equal(t, "v1.0.0", ref.Name())
}

func TestReference_parses_pull_request(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/pull/42/merge",
		http.StatusOK,
		refObject("refs/pull/42/merge", "commit", "ccc333"),
	)

	ref, err := repo.Reference(
		context.Background(), "refs/pull/42/merge",
	)

	require.NoError(t, err)
	assert.True(t, ref.IsPullRequest())
	assert.Equal(t, 42, ref.Issue())
	assert.Equal(t, "merge", ref.Name())
	assert.Equal(t, "pull/42/merge", ref.String())
}

func TestReference_slashed_branch_name(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/heads/feature/login",
		http.StatusOK,
		refObject(
			"refs/heads/feature/login",
			"commit", "ddd444",
		),
	)

	ref, err := repo.Reference(
		context.Background(), "heads/feature/login",
	)

	require.NoError(t, err)
	assert.Equal(t, "feature/login", ref.Name())
}

func TestReference_rejects_unknown_namespace(t *testing.T) {
	t.Parallel()

	_, repo := userRepo(t)

	_, err := repo.Reference(
		context.Background(), "not/a/valid/ref/kind",
	)

	var invalid *github.InvalidReferenceError

	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "not/a/valid/ref/kind", invalid.Ref)
}

func TestReference_rejects_bare_name(t *testing.T) {
	t.Parallel()

	_, repo := userRepo(t)

	_, err := repo.Reference(context.Background(), "main")

	var invalid *github.InvalidReferenceError

	require.ErrorAs(t, err, &invalid)
}

func TestReference_rejects_non_numeric_pull(t *testing.T) {
	t.Parallel()

	_, repo := userRepo(t)

	_, err := repo.Reference(
		context.Background(), "pull/abc/merge",
	)

	var invalid *github.InvalidReferenceError

	require.ErrorAs(t, err, &invalid)
}

func TestReference_suffix_mismatch(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)

	// Asking for foo must not accept a server answer naming
	// foobar.
	fake.reply(
		"GET /repos/octocat/hello/git/ref/heads/foo",
		http.StatusOK,
		refObject("refs/heads/foobar", "commit", "eee555"),
	)

	_, err := repo.Reference(
		context.Background(), "heads/foo",
	)

	var notFound *github.ReferenceNotFoundError

	require.ErrorAs(t, err, &notFound)
}

func TestReference_absent(t *testing.T) {
	t.Parallel()

	_, repo := userRepo(t)

	_, err := repo.Reference(
		context.Background(), "heads/missing",
	)

	var notFound *github.ReferenceNotFoundError

	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "heads/missing", notFound.Ref)
}

func TestFindReference_absence_is_not_error(t *testing.T) {
	t.Parallel()

	_, repo := userRepo(t)

	_, found, err := repo.FindReference(
		context.Background(), "heads/missing",
	)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestHasBranch(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/heads/main",
		http.StatusOK,
		refObject("refs/heads/main", "commit", "aaa111"),
	)

	found, err := repo.HasBranch(
		context.Background(), "main",
	)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.HasBranch(
		context.Background(), "missing",
	)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBranch_rejects_tag_name(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/tags/v1",
		http.StatusOK,
		refObject("refs/tags/v1", "commit", "bbb222"),
	)

	_, err := repo.Branch(
		context.Background(), "tags/v1",
	)

	var invalid *github.InvalidBranchError

	require.ErrorAs(t, err, &invalid)
}

func TestTag_resolves_short_name(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/tags/v1",
		http.StatusOK,
		refObject("refs/tags/v1", "commit", "bbb222"),
	)

	ref, err := repo.Tag(context.Background(), "v1")

	require.NoError(t, err)
	assert.True(t, ref.IsTag())
}

func TestReference_commit_direct(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/heads/main",
		http.StatusOK,
		refObject("refs/heads/main", "commit", "aaa111"),
	)
	fake.reply(
		"GET /repos/octocat/hello/git/commits/aaa111",
		http.StatusOK,
		map[string]interface{}{
			"sha": "aaa111",
			"author": map[string]string{
				"date": "2024-03-01T12:00:00Z",
			},
		})

	ref, err := repo.Branch(context.Background(), "main")
	require.NoError(t, err)

	commit, err := ref.Commit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, github.Sha("aaa111"), commit.Sha())
	assert.False(t, commit.Date().IsZero())
}

func TestReference_commit_follows_annotated_tags(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/tags/v1",
		http.StatusOK,
		refObject("refs/tags/v1", "tag", "tag-a"),
	)
	fake.reply(
		"GET /repos/octocat/hello/git/tags/tag-a",
		http.StatusOK,
		map[string]interface{}{
			"object": map[string]string{
				"type": "tag",
				"sha":  "tag-b",
			},
		})
	fake.reply(
		"GET /repos/octocat/hello/git/tags/tag-b",
		http.StatusOK,
		map[string]interface{}{
			"object": map[string]string{
				"type": "commit",
				"sha":  "fff666",
			},
		})
	fake.reply(
		"GET /repos/octocat/hello/git/commits/fff666",
		http.StatusOK,
		map[string]interface{}{
			"sha": "fff666",
			"author": map[string]string{
				"date": "2024-03-01T12:00:00Z",
			},
		})

	ref, err := repo.Tag(context.Background(), "v1")
	require.NoError(t, err)

	commit, err := ref.Commit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, github.Sha("fff666"), commit.Sha())
}

func TestReference_commit_circular_tag_chain(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/tags/loop",
		http.StatusOK,
		refObject("refs/tags/loop", "tag", "tag-a"),
	)
	fake.reply(
		"GET /repos/octocat/hello/git/tags/tag-a",
		http.StatusOK,
		map[string]interface{}{
			"object": map[string]string{
				"type": "tag",
				"sha":  "tag-b",
			},
		})
	fake.reply(
		"GET /repos/octocat/hello/git/tags/tag-b",
		http.StatusOK,
		map[string]interface{}{
			"object": map[string]string{
				"type": "tag",
				"sha":  "tag-a",
			},
		})

	ref, err := repo.Tag(context.Background(), "loop")
	require.NoError(t, err)

	_, err = ref.Commit(context.Background())

	var circular *github.CircularReferenceError

	require.ErrorAs(t, err, &circular)
}

func TestCreateBranch(t *testing.T) {
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

	var payload struct {
		Ref string `json:"ref"`
		Sha string `json:"sha"`
	}

	fake.handle(
		"POST /repos/octocat/hello/git/refs",
		func(w http.ResponseWriter, r *http.Request) {
			decodeBody(t, r, &payload)
			w.WriteHeader(http.StatusCreated)
			writeJSON(t, w, refObject(
				payload.Ref, "commit", payload.Sha,
			))
		})

	commit, err := repo.Commit(
		context.Background(), "aaa111",
	)
	require.NoError(t, err)

	ref, err := repo.CreateBranch(
		context.Background(), "release", commit,
	)

	require.NoError(t, err)
	assert.True(t, ref.IsBranch())
	assert.Equal(t, "refs/heads/release", payload.Ref)
	assert.Equal(t, "aaa111", payload.Sha)
}

func TestDeleteBranch_rejects_tag(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/tags/v1",
		http.StatusOK,
		refObject("refs/tags/v1", "commit", "bbb222"),
	)

	ref, err := repo.Tag(context.Background(), "v1")
	require.NoError(t, err)

	err = repo.DeleteBranch(context.Background(), ref)

	var invalid *github.InvalidBranchError

	require.ErrorAs(t, err, &invalid)
}

func TestSetCommit_sends_force_flag(t *testing.T) {
	t.Parallel()

	fake, repo := userRepo(t)
	fake.reply(
		"GET /repos/octocat/hello/git/ref/heads/main",
		http.StatusOK,
		refObject("refs/heads/main", "commit", "aaa111"),
	)

	var payload struct {
		Sha   string `json:"sha"`
		Force bool   `json:"force"`
	}

	fake.handle(
		"PATCH /repos/octocat/hello/git/refs/heads/main",
		func(w http.ResponseWriter, r *http.Request) {
			decodeBody(t, r, &payload)
			writeJSON(t, w, refObject(
				"refs/heads/main", "commit",
				payload.Sha,
			))
		})

	ref, err := repo.Branch(context.Background(), "main")
	require.NoError(t, err)

	err = ref.SetCommit(
		context.Background(), "bbb222", true,
	)

	require.NoError(t, err)
	assert.Equal(t, "bbb222", payload.Sha)
	assert.True(t, payload.Force)
}
