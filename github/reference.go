package github

import (
	"context"
	"strconv"
	"strings"

	"github.com/byte4ever/ghkit/transport"
)

// RefKind discriminates the reference variants. The set is closed:
// the API defines exactly these ref namespaces.
type RefKind int

const (
	// RefBranch is a refs/heads/* reference.
	RefBranch RefKind = iota
	// RefTag is a refs/tags/* reference.
	RefTag
	// RefPullRequest is a refs/pull/N/* reference.
	RefPullRequest
)

// String returns the namespace prefix of the kind.
func (k RefKind) String() string {
	switch k {
	case RefBranch:
		return "heads"
	case RefTag:
		return "tags"
	default:
		return "pull"
	}
}

// Reference is a named pointer to a commit, always scoped to a
// repository: a branch, a tag, or a pull-request head.
type Reference struct {
	repo  *Repository
	kind  RefKind
	name  string
	issue int
}

// parseRef tokenizes a ref string into its variant. Both fully
// qualified ("refs/heads/x") and short ("heads/x") forms are
// accepted; names containing slashes are rejoined.
func parseRef(repo *Repository, raw string) (*Reference, error) {
	tokens := strings.Split(raw, "/")

	if len(tokens) > 1 && tokens[0] == "refs" {
		tokens = tokens[1:]
	}

	switch {
	case len(tokens) >= 2 && tokens[0] == "heads":
		name := strings.Join(tokens[1:], "/")
		if name == "" {
			break
		}

		return &Reference{
			repo: repo,
			kind: RefBranch,
			name: name,
		}, nil

	case len(tokens) >= 2 && tokens[0] == "tags":
		name := strings.Join(tokens[1:], "/")
		if name == "" {
			break
		}

		return &Reference{
			repo: repo,
			kind: RefTag,
			name: name,
		}, nil

	case len(tokens) >= 3 && tokens[0] == "pull":
		issue, err := strconv.Atoi(tokens[1])
		if err != nil {
			break
		}

		name := strings.Join(tokens[2:], "/")
		if name == "" {
			break
		}

		return &Reference{
			repo:  repo,
			kind:  RefPullRequest,
			name:  name,
			issue: issue,
		}, nil
	}

	return nil, &InvalidReferenceError{Ref: raw}
}

// fetchReference parses raw, fetches it, and validates that the
// remote answered with the requested ref: the returned ref name
// must end with the originally supplied string, which defends
// against the API resolving an ambiguous short name to an
// unrelated ref.
func fetchReference(
	ctx context.Context,
	repo *Repository,
	raw string,
) (*Reference, error) {
	parsed, err := parseRef(repo, raw)
	if err != nil {
		return nil, err
	}

	var capsule struct {
		Name string `json:"ref"`
	}

	resp, err := repo.Client().Get(
		repo.Endpoint() + "/git/ref/" + parsed.String(),
	).Send(ctx)
	if err != nil {
		if transport.IsNothing(err) {
			return nil, &ReferenceNotFoundError{
				Ref: raw,
			}
		}

		return nil, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	if !strings.HasSuffix(capsule.Name, raw) {
		return nil, &ReferenceNotFoundError{Ref: raw}
	}

	return parsed, nil
}

// createReference parses raw and creates it pointing at commit,
// with the same suffix validation as fetch.
func createReference(
	ctx context.Context,
	repo *Repository,
	raw string,
	commit *Commit,
) (*Reference, error) {
	parsed, err := parseRef(repo, raw)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"ref": "refs/" + parsed.String(),
		"sha": commit.Sha(),
	}

	var capsule struct {
		Name string `json:"ref"`
	}

	resp, err := repo.Client().
		Post(repo.Endpoint()+"/git/refs").
		JSON(payload).
		Send(ctx)
	if err != nil {
		if transport.IsNothing(err) {
			return nil, &ReferenceNotFoundError{
				Ref: raw,
			}
		}

		return nil, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	if !strings.HasSuffix(capsule.Name, raw) {
		return nil, &ReferenceNotFoundError{Ref: raw}
	}

	return parsed, nil
}

// Kind returns the reference variant.
func (r *Reference) Kind() RefKind {
	return r.kind
}

// Name returns the unqualified reference name (the part after the
// namespace prefix).
func (r *Reference) Name() string {
	return r.name
}

// Issue returns the pull-request number for RefPullRequest
// references, zero otherwise.
func (r *Reference) Issue() int {
	return r.issue
}

// Repository returns the owning repository.
func (r *Reference) Repository() *Repository {
	return r.repo
}

// Client returns the transport able to reach the reference.
func (r *Reference) Client() *transport.Client {
	return r.repo.Client()
}

// Endpoint returns the reference's API path.
func (r *Reference) Endpoint() string {
	return r.repo.Endpoint() + "/git/ref/" + r.String()
}

// IsBranch reports whether the reference is a branch.
func (r *Reference) IsBranch() bool {
	return r.kind == RefBranch
}

// IsTag reports whether the reference is a tag.
func (r *Reference) IsTag() bool {
	return r.kind == RefTag
}

// IsPullRequest reports whether the reference is a pull-request
// head.
func (r *Reference) IsPullRequest() bool {
	return r.kind == RefPullRequest
}

// String returns the short ref form: "heads/x", "tags/x", or
// "pull/N/x".
func (r *Reference) String() string {
	if r.kind == RefPullRequest {
		return "pull/" + strconv.Itoa(r.issue) +
			"/" + r.name
	}

	return r.kind.String() + "/" + r.name
}

// SetCommit force-moves (or fast-forwards, when force is false) the
// reference to the given commit. The update is last-writer-wins
// against concurrent writers.
func (r *Reference) SetCommit(
	ctx context.Context,
	sha Sha,
	force bool,
) error {
	payload := map[string]interface{}{
		"sha":   sha,
		"force": force,
	}

	_, err := r.Client().
		Patch(r.repo.Endpoint()+"/git/refs/"+r.String()).
		JSON(payload).
		Send(ctx)

	return err
}

// Commit resolves the reference down to a concrete commit,
// following chains of annotated tag objects. Revisiting a tag SHA
// already seen is a circular chain and fails; it is never silently
// truncated.
func (r *Reference) Commit(ctx context.Context) (*Commit, error) {
	type target struct {
		Kind string `json:"type"`
		Sha  Sha    `json:"sha"`
	}

	var capsule struct {
		Object target `json:"object"`
	}

	resp, err := r.Client().Get(r.Endpoint()).Send(ctx)
	if err != nil {
		return nil, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	visited := make(map[Sha]struct{})

	for capsule.Object.Kind == "tag" {
		sha := capsule.Object.Sha

		if _, seen := visited[sha]; seen {
			return nil, &CircularReferenceError{
				Ref: r.String(),
			}
		}

		visited[sha] = struct{}{}

		resp, err := r.Client().Get(
			r.repo.Endpoint() + "/git/tags/" +
				sha.String(),
		).Send(ctx)
		if err != nil {
			return nil, err
		}

		if err := resp.JSON(&capsule); err != nil {
			return nil, err
		}
	}

	return r.repo.Commit(ctx, capsule.Object.Sha)
}

// delete removes the reference remotely. The handle itself carries
// no state to invalidate.
func (r *Reference) delete(ctx context.Context) error {
	_, err := r.Client().Delete(
		r.repo.Endpoint() + "/git/refs/" + r.String(),
	).Send(ctx)

	return err
}
