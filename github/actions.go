package github

import (
	"context"
	"slices"
	"sort"

	"github.com/byte4ever/ghkit/transport"
)

// Actions is the Actions-permissions sub-resource of an
// organization. Every mutation is read-modify-write against the full
// selected-actions object; there is no optimistic-concurrency check,
// so concurrent writers race and the last write wins.
type Actions struct {
	org *Organization
}

// allowedActions mirrors the selected-actions wire object.
type allowedActions struct {
	GitHubOwned bool     `json:"github_owned_allowed"`
	Verified    bool     `json:"verified_allowed"`
	Patterns    []string `json:"patterns_allowed"`
}

// Organization returns the owning organization.
func (a *Actions) Organization() *Organization {
	return a.org
}

// Client returns the transport able to reach the resource.
func (a *Actions) Client() *transport.Client {
	return a.org.Client()
}

// Endpoint returns the selected-actions API path.
func (a *Actions) Endpoint() string {
	return a.org.Endpoint() +
		"/actions/permissions/selected-actions"
}

func (a *Actions) fetch(
	ctx context.Context,
) (allowedActions, error) {
	return Properties[allowedActions](ctx, a)
}

func (a *Actions) put(
	ctx context.Context,
	payload allowedActions,
) error {
	// The whole object goes back on every write; the API has no
	// partial update for this resource.
	_, err := a.Client().
		Put(a.Endpoint()).
		JSON(payload).
		Send(ctx)

	return err
}

// AllowList returns the allowed action patterns.
func (a *Actions) AllowList(
	ctx context.Context,
) ([]string, error) {
	current, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return current.Patterns, nil
}

// SetAllowList replaces the allowed action patterns.
func (a *Actions) SetAllowList(
	ctx context.Context,
	patterns []string,
) error {
	current, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	current.Patterns = normalize(patterns)

	return a.put(ctx, current)
}

// AddAllowList adds patterns to the allow list.
func (a *Actions) AddAllowList(
	ctx context.Context,
	patterns []string,
) error {
	current, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	current.Patterns = normalize(append(
		current.Patterns, patterns...,
	))

	return a.put(ctx, current)
}

// RemoveAllowList removes patterns from the allow list. Patterns
// not present are ignored.
func (a *Actions) RemoveAllowList(
	ctx context.Context,
	patterns []string,
) error {
	current, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	kept := current.Patterns[:0]
	for _, pattern := range current.Patterns {
		if !slices.Contains(patterns, pattern) {
			kept = append(kept, pattern)
		}
	}

	current.Patterns = normalize(kept)

	return a.put(ctx, current)
}

// AllowGitHubOwned reports whether GitHub-owned actions are allowed.
func (a *Actions) AllowGitHubOwned(
	ctx context.Context,
) (bool, error) {
	current, err := a.fetch(ctx)
	if err != nil {
		return false, err
	}

	return current.GitHubOwned, nil
}

// SetAllowGitHubOwned toggles whether GitHub-owned actions are
// allowed.
func (a *Actions) SetAllowGitHubOwned(
	ctx context.Context,
	allowed bool,
) error {
	current, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	current.GitHubOwned = allowed

	return a.put(ctx, current)
}

// AllowVerified reports whether verified-creator actions are
// allowed.
func (a *Actions) AllowVerified(
	ctx context.Context,
) (bool, error) {
	current, err := a.fetch(ctx)
	if err != nil {
		return false, err
	}

	return current.Verified, nil
}

// SetAllowVerified toggles whether verified-creator actions are
// allowed.
func (a *Actions) SetAllowVerified(
	ctx context.Context,
	allowed bool,
) error {
	current, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	current.Verified = allowed

	return a.put(ctx, current)
}

// normalize sorts and deduplicates a pattern list so every write is
// deterministic. The caller's slice is left untouched.
func normalize(patterns []string) []string {
	out := slices.Clone(patterns)
	sort.Strings(out)

	return slices.Compact(out)
}
