package github_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ghkit/github"
)

type allowedPayload struct {
	GitHubOwned bool     `json:"github_owned_allowed"`
	Verified    bool     `json:"verified_allowed"`
	Patterns    []string `json:"patterns_allowed"`
}

// actionsFixture wires an organization whose selected-actions
// object starts as initial and records every PUT.
func actionsFixture(
	tb testing.TB,
	initial allowedPayload,
) (*github.Actions, *allowedPayload) {
	tb.Helper()

	fake, client := newFake(tb)
	fake.org("acme", 7)

	var written allowedPayload

	fake.reply(
		"GET /orgs/acme/actions/permissions/selected-actions",
		http.StatusOK, initial,
	)
	fake.handle(
		"PUT /orgs/acme/actions/permissions/selected-actions",
		func(w http.ResponseWriter, r *http.Request) {
			decodeBody(tb, r, &written)
			w.WriteHeader(http.StatusNoContent)
		})

	org, err := client.Organization(
		context.Background(), "acme",
	)
	require.NoError(tb, err)

	return org.Actions(), &written
}

func TestActions_allow_list(t *testing.T) {
	t.Parallel()

	actions, _ := actionsFixture(t, allowedPayload{
		Patterns: []string{"octo/*", "acme/*"},
	})

	patterns, err := actions.AllowList(
		context.Background(),
	)

	require.NoError(t, err)
	assert.Equal(
		t, []string{"octo/*", "acme/*"}, patterns,
	)
}

func TestActions_add_sorts_and_dedupes(t *testing.T) {
	t.Parallel()

	actions, written := actionsFixture(t, allowedPayload{
		GitHubOwned: true,
		Patterns:    []string{"b/*", "a/*", "b/*"},
	})

	err := actions.AddAllowList(
		context.Background(),
		[]string{"c/*", "a/*"},
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{"a/*", "b/*", "c/*"},
		written.Patterns,
	)
	assert.True(t, written.GitHubOwned)
}

func TestActions_set_does_not_mutate_argument(t *testing.T) {
	t.Parallel()

	actions, written := actionsFixture(t, allowedPayload{})

	patterns := []string{"c/*", "a/*", "b/*", "a/*"}

	err := actions.SetAllowList(
		context.Background(), patterns,
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{"a/*", "b/*", "c/*"},
		written.Patterns,
	)
	assert.Equal(
		t,
		[]string{"c/*", "a/*", "b/*", "a/*"},
		patterns,
	)
}

func TestActions_remove_ignores_absent(t *testing.T) {
	t.Parallel()

	actions, written := actionsFixture(t, allowedPayload{
		Patterns: []string{"a/*", "b/*"},
	})

	err := actions.RemoveAllowList(
		context.Background(),
		[]string{"b/*", "zzz/*"},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"a/*"}, written.Patterns)
}

func TestActions_set_allow_list_replaces(t *testing.T) {
	t.Parallel()

	actions, written := actionsFixture(t, allowedPayload{
		Verified: true,
		Patterns: []string{"old/*"},
	})

	err := actions.SetAllowList(
		context.Background(),
		[]string{"new/*"},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"new/*"}, written.Patterns)
	assert.True(t, written.Verified)
}

func TestActions_toggle_github_owned(t *testing.T) {
	t.Parallel()

	actions, written := actionsFixture(t, allowedPayload{
		Patterns: []string{"a/*"},
	})

	allowed, err := actions.AllowGitHubOwned(
		context.Background(),
	)
	require.NoError(t, err)
	assert.False(t, allowed)

	err = actions.SetAllowGitHubOwned(
		context.Background(), true,
	)

	require.NoError(t, err)
	assert.True(t, written.GitHubOwned)
	assert.Equal(t, []string{"a/*"}, written.Patterns)
}

func TestActions_toggle_verified(t *testing.T) {
	t.Parallel()

	actions, written := actionsFixture(t, allowedPayload{})

	err := actions.SetAllowVerified(
		context.Background(), true,
	)

	require.NoError(t, err)
	assert.True(t, written.Verified)
}
