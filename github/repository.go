package github

import (
	"context"
	"errors"
	"strings"

	"github.com/byte4ever/ghkit/endpoint"
	"github.com/byte4ever/ghkit/transport"
)

// Repository is the central aggregate handle. Every git object and
// issue resource hangs off it, addressed as owner/name.
type Repository struct {
	owner Account
	name  string
}

// fetchRepository extracts the short repository name from raw,
// verifies the repository exists, and returns its handle. raw may
// be a bare name ("repo"), an owner-qualified name ("owner/repo"),
// or a longer path copied from a URL ("owner/repo/tree/main/...").
func fetchRepository(
	ctx context.Context,
	owner Account,
	raw string,
) (*Repository, error) {
	repo := &Repository{
		owner: owner,
		name:  shortName(owner.Login(), raw),
	}

	// Existence check; the handle needs no data from the body.
	if _, err := owner.Client().
		Get(repo.Endpoint()).
		Send(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

// shortName extracts the repository short name: the first path
// segment after any leading owner-echo segment.
func shortName(owner, raw string) string {
	parts := strings.Split(raw, "/")

	if len(parts) > 1 && strings.EqualFold(parts[0], owner) {
		return parts[1]
	}

	return parts[0]
}

// fetchAllRepositories lists the owner's repositories page by page.
func fetchAllRepositories(
	ctx context.Context,
	owner Account,
) ([]*Repository, error) {
	type capsule struct {
		Name string `json:"name"`
	}

	listEndpoint := endpoint.MustExpand(
		"users/{owner}/repos",
		endpoint.Vars{"owner": owner.Login()},
	)

	capsules, err := transport.Collect(ctx, func(
		ctx context.Context,
		opts transport.ListOptions,
	) ([]capsule, error) {
		var page []capsule

		resp, err := owner.Client().
			Get(listEndpoint).
			Query(opts).
			Send(ctx)
		if err != nil {
			return nil, err
		}

		if err := resp.JSON(&page); err != nil {
			return nil, err
		}

		return page, nil
	})
	if err != nil {
		return nil, err
	}

	repos := make([]*Repository, 0, len(capsules))
	for _, c := range capsules {
		repos = append(repos, &Repository{
			owner: owner,
			name:  c.Name,
		})
	}

	return repos, nil
}

// Owner returns the owning account.
func (r *Repository) Owner() Account {
	return r.owner
}

// Name returns the repository short name.
func (r *Repository) Name() string {
	return r.name
}

// FullName returns "owner/name".
func (r *Repository) FullName() string {
	return r.owner.Login() + "/" + r.name
}

// Client returns the transport able to reach the repository.
func (r *Repository) Client() *transport.Client {
	return r.owner.Client()
}

// Endpoint returns the repository's API path.
func (r *Repository) Endpoint() string {
	return endpoint.MustExpand(
		"repos/{owner}/{repo}",
		endpoint.Vars{
			"owner": r.owner.Login(),
			"repo":  r.name,
		},
	)
}

// Content fetches the canonical repository representation.
func (r *Repository) Content(
	ctx context.Context,
) (RepositoryProperties, error) {
	return Properties[RepositoryProperties](ctx, r)
}

// RepositoryUpdate accumulates a partial repository update. Only
// the fields touched by a setter go on the wire.
type RepositoryUpdate struct {
	payload map[string]interface{}
}

// NewRepositoryUpdate returns an empty update.
func NewRepositoryUpdate() *RepositoryUpdate {
	return &RepositoryUpdate{
		payload: make(map[string]interface{}),
	}
}

func (u *RepositoryUpdate) set(
	key string, value interface{},
) *RepositoryUpdate {
	u.payload[key] = value

	return u
}

// Description sets the repository description.
func (u *RepositoryUpdate) Description(
	description string,
) *RepositoryUpdate {
	return u.set("description", description)
}

// Homepage sets the repository homepage URL.
func (u *RepositoryUpdate) Homepage(
	homepage string,
) *RepositoryUpdate {
	return u.set("homepage", homepage)
}

// DefaultBranch sets the advertised default branch.
func (u *RepositoryUpdate) DefaultBranch(
	name string,
) *RepositoryUpdate {
	return u.set("default_branch", name)
}

// Visibility sets the repository visibility level.
func (u *RepositoryUpdate) Visibility(
	visibility Visibility,
) *RepositoryUpdate {
	return u.set("visibility", visibility)
}

// Private toggles private visibility.
func (u *RepositoryUpdate) Private(
	private bool,
) *RepositoryUpdate {
	return u.set("private", private)
}

// Template toggles the template flag.
func (u *RepositoryUpdate) Template(
	template bool,
) *RepositoryUpdate {
	return u.set("is_template", template)
}

// HasIssues toggles the issue tracker.
func (u *RepositoryUpdate) HasIssues(
	enabled bool,
) *RepositoryUpdate {
	return u.set("has_issues", enabled)
}

// HasProjects toggles projects.
func (u *RepositoryUpdate) HasProjects(
	enabled bool,
) *RepositoryUpdate {
	return u.set("has_projects", enabled)
}

// HasWiki toggles the wiki.
func (u *RepositoryUpdate) HasWiki(
	enabled bool,
) *RepositoryUpdate {
	return u.set("has_wiki", enabled)
}

// AllowForking toggles forking.
func (u *RepositoryUpdate) AllowForking(
	allowed bool,
) *RepositoryUpdate {
	return u.set("allow_forking", allowed)
}

// Signoff toggles the web commit signoff requirement.
func (u *RepositoryUpdate) Signoff(
	required bool,
) *RepositoryUpdate {
	return u.set("web_commit_signoff_required", required)
}

// Archived toggles the archived flag.
func (u *RepositoryUpdate) Archived(
	archived bool,
) *RepositoryUpdate {
	return u.set("archived", archived)
}

// Update applies a partial repository update.
func (r *Repository) Update(
	ctx context.Context,
	update *RepositoryUpdate,
) error {
	return SetProperties(ctx, r, update.payload)
}

// SubmitDependencySnapshot posts an opaque dependency-graph
// snapshot payload.
func (r *Repository) SubmitDependencySnapshot(
	ctx context.Context,
	payload interface{},
) error {
	_, err := r.Client().
		Post(r.Endpoint() + "/dependency-graph/snapshots").
		JSON(payload).
		Send(ctx)

	return err
}

// ActiveWorkflowRuns returns the number of workflow runs currently
// in progress.
func (r *Repository) ActiveWorkflowRuns(
	ctx context.Context,
) (int, error) {
	type runsOptions struct {
		Status string `url:"status"`
	}

	var capsule struct {
		TotalCount int `json:"total_count"`
	}

	resp, err := r.Client().
		Get(r.Endpoint()+"/actions/runs").
		Query(runsOptions{Status: "in_progress"}).
		Send(ctx)
	if err != nil {
		return 0, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return 0, err
	}

	return capsule.TotalCount, nil
}

// Reference fetches a reference by ref string (fully qualified or
// short form).
func (r *Repository) Reference(
	ctx context.Context,
	ref string,
) (*Reference, error) {
	return fetchReference(ctx, r, ref)
}

// FindReference fetches a reference, converting remote absence into
// found == false. Any other failure still propagates.
func (r *Repository) FindReference(
	ctx context.Context,
	ref string,
) (*Reference, bool, error) {
	resolved, err := fetchReference(ctx, r, ref)
	if err != nil {
		if isRefAbsence(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return resolved, true, nil
}

// HasReference reports whether the reference exists.
func (r *Repository) HasReference(
	ctx context.Context,
	ref string,
) (bool, error) {
	_, found, err := r.FindReference(ctx, ref)

	return found, err
}

// CreateReference creates a reference pointing at the given commit.
func (r *Repository) CreateReference(
	ctx context.Context,
	ref string,
	commit *Commit,
) (*Reference, error) {
	return createReference(ctx, r, ref, commit)
}

// DeleteReference deletes the reference.
func (r *Repository) DeleteReference(
	ctx context.Context,
	ref *Reference,
) error {
	return ref.delete(ctx)
}

// Branch resolves the given name as a branch: first as-is, then
// under the canonical heads/ prefix. A resolution to anything other
// than a branch fails.
func (r *Repository) Branch(
	ctx context.Context,
	name string,
) (*Reference, error) {
	ref, err := r.Reference(
		ctx, branchCandidate(r, name),
	)
	if err != nil {
		return nil, err
	}

	if !ref.IsBranch() {
		return nil, &InvalidBranchError{Name: name}
	}

	return ref, nil
}

// FindBranch resolves the branch, converting remote absence into
// found == false.
func (r *Repository) FindBranch(
	ctx context.Context,
	name string,
) (*Reference, bool, error) {
	ref, found, err := r.FindReference(
		ctx, branchCandidate(r, name),
	)
	if err != nil || !found {
		return nil, false, err
	}

	if !ref.IsBranch() {
		return nil, false, &InvalidBranchError{
			Name: name,
		}
	}

	return ref, true, nil
}

// HasBranch reports whether the branch exists.
func (r *Repository) HasBranch(
	ctx context.Context,
	name string,
) (bool, error) {
	_, found, err := r.FindBranch(ctx, name)

	return found, err
}

// CreateBranch creates a branch pointing at the given commit.
func (r *Repository) CreateBranch(
	ctx context.Context,
	name string,
	commit *Commit,
) (*Reference, error) {
	ref, err := r.CreateReference(
		ctx, "heads/"+name, commit,
	)
	if err != nil {
		return nil, err
	}

	if !ref.IsBranch() {
		return nil, &InvalidBranchError{Name: name}
	}

	return ref, nil
}

// DeleteBranch deletes the reference after asserting it is a
// branch.
func (r *Repository) DeleteBranch(
	ctx context.Context,
	ref *Reference,
) error {
	if !ref.IsBranch() {
		return &InvalidBranchError{Name: ref.String()}
	}

	return ref.delete(ctx)
}

// Tag resolves the given name as a tag: first as-is, then under the
// canonical tags/ prefix. A resolution to anything other than a tag
// fails.
func (r *Repository) Tag(
	ctx context.Context,
	name string,
) (*Reference, error) {
	ref, err := r.Reference(ctx, tagCandidate(r, name))
	if err != nil {
		return nil, err
	}

	if !ref.IsTag() {
		return nil, &InvalidTagError{Name: name}
	}

	return ref, nil
}

// FindTag resolves the tag, converting remote absence into
// found == false.
func (r *Repository) FindTag(
	ctx context.Context,
	name string,
) (*Reference, bool, error) {
	ref, found, err := r.FindReference(
		ctx, tagCandidate(r, name),
	)
	if err != nil || !found {
		return nil, false, err
	}

	if !ref.IsTag() {
		return nil, false, &InvalidTagError{
			Name: name,
		}
	}

	return ref, true, nil
}

// HasTag reports whether the tag exists.
func (r *Repository) HasTag(
	ctx context.Context,
	name string,
) (bool, error) {
	_, found, err := r.FindTag(ctx, name)

	return found, err
}

// CreateTag creates a lightweight tag pointing at the given commit.
func (r *Repository) CreateTag(
	ctx context.Context,
	name string,
	commit *Commit,
) (*Reference, error) {
	ref, err := r.CreateReference(
		ctx, "tags/"+name, commit,
	)
	if err != nil {
		return nil, err
	}

	if !ref.IsTag() {
		return nil, &InvalidTagError{Name: name}
	}

	return ref, nil
}

// DeleteTag deletes the reference after asserting it is a tag.
func (r *Repository) DeleteTag(
	ctx context.Context,
	ref *Reference,
) error {
	if !ref.IsTag() {
		return &InvalidTagError{Name: ref.String()}
	}

	return ref.delete(ctx)
}

// DefaultBranch resolves the repository's advertised default
// branch.
func (r *Repository) DefaultBranch(
	ctx context.Context,
) (*Reference, error) {
	capsule, err := Properties[struct {
		DefaultBranch string `json:"default_branch"`
	}](ctx, r)
	if err != nil {
		return nil, err
	}

	branch, err := r.Branch(ctx, capsule.DefaultBranch)
	if err != nil {
		return nil, &DefaultBranchError{
			Name: capsule.DefaultBranch,
		}
	}

	return branch, nil
}

// Commit fetches a commit by SHA.
func (r *Repository) Commit(
	ctx context.Context,
	sha Sha,
) (*Commit, error) {
	return fetchCommit(ctx, r, sha)
}

// HasCommit reports whether the commit exists, converting only the
// commit-specific absence into false.
func (r *Repository) HasCommit(
	ctx context.Context,
	sha Sha,
) (bool, error) {
	_, err := fetchCommit(ctx, r, sha)
	if err != nil {
		var notFound *CommitNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// CreateCommit creates a commit from the given parents, tree, and
// message.
func (r *Repository) CreateCommit(
	ctx context.Context,
	parents []*Commit,
	tree *Tree,
	message string,
) (*Commit, error) {
	return createCommit(ctx, r, parents, tree, message)
}

// Compare lists the file changes between two commits.
func (r *Repository) Compare(
	ctx context.Context,
	base *Commit,
	head *Commit,
) (*Compare, error) {
	return compareCommits(ctx, r, base, head)
}

// Tree fetches a tree by SHA; recursive expands the full subtree
// listing in one call.
func (r *Repository) Tree(
	ctx context.Context,
	sha Sha,
	recursive bool,
) (*Tree, error) {
	return fetchTree(ctx, r, sha, recursive)
}

// CreateTree creates a tree from a flat entry list.
func (r *Repository) CreateTree(
	ctx context.Context,
	entries []TreeEntry,
) (*Tree, error) {
	return createTree(ctx, r, entries)
}

// CreateTreeWithBase creates a tree on top of the base commit's
// current tree; the server computes the merge.
func (r *Repository) CreateTreeWithBase(
	ctx context.Context,
	base *Commit,
	entries []TreeEntry,
) (*Tree, error) {
	return createTreeWithBase(ctx, r, base, entries)
}

// Blob fetches a blob by SHA.
func (r *Repository) Blob(
	ctx context.Context,
	sha Sha,
) (*Blob, error) {
	return fetchBlob(ctx, r, sha)
}

// CreateTextBlob creates a blob from UTF-8 text.
func (r *Repository) CreateTextBlob(
	ctx context.Context,
	content string,
) (*Blob, error) {
	return createTextBlob(ctx, r, content)
}

// CreateBinaryBlob creates a blob from raw bytes, base64-encoded on
// the wire.
func (r *Repository) CreateBinaryBlob(
	ctx context.Context,
	content []byte,
) (*Blob, error) {
	return createBinaryBlob(ctx, r, content)
}

// Issue fetches a plain issue by number. A number that names a pull
// request fails with *NotAnIssueError.
func (r *Repository) Issue(
	ctx context.Context,
	number int,
) (*Issue, error) {
	return fetchIssue(ctx, r, number)
}

// Issues lists every plain issue; pull requests are filtered out.
func (r *Repository) Issues(
	ctx context.Context,
) ([]*Issue, error) {
	return fetchAllIssues(ctx, r)
}

// branchCandidate returns name if it already parses as a ref,
// otherwise the canonical heads/ form.
func branchCandidate(r *Repository, name string) string {
	if _, err := parseRef(r, name); err == nil {
		return name
	}

	return "heads/" + name
}

// tagCandidate returns name if it already parses as a ref,
// otherwise the canonical tags/ form.
func tagCandidate(r *Repository, name string) string {
	if _, err := parseRef(r, name); err == nil {
		return name
	}

	return "tags/" + name
}
