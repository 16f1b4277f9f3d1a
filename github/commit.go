package github

import (
	"context"
	"time"

	"github.com/byte4ever/ghkit/archive"
	"github.com/byte4ever/ghkit/transport"
)

// Commit is the handle of a git commit object.
type Commit struct {
	repo *Repository
	sha  Sha
	date time.Time
}

// commitCapsule is the narrow projection both fetch and create
// need: the server-assigned SHA and the authorship date.
type commitCapsule struct {
	Sha    Sha `json:"sha"`
	Author struct {
		Date time.Time `json:"date"`
	} `json:"author"`
}

// fetchCommit fetches a commit by SHA. A 404 maps to
// *CommitNotFoundError keyed by the requested SHA so callers can
// tell this exact absence apart from any other.
func fetchCommit(
	ctx context.Context,
	repo *Repository,
	sha Sha,
) (*Commit, error) {
	var capsule commitCapsule

	resp, err := repo.Client().Get(
		repo.Endpoint() + "/git/commits/" + sha.String(),
	).Send(ctx)
	if err != nil {
		if transport.IsNothing(err) {
			return nil, &CommitNotFoundError{Sha: sha}
		}

		return nil, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	return &Commit{
		repo: repo,
		sha:  capsule.Sha,
		date: capsule.Author.Date,
	}, nil
}

// createCommit creates a commit object from parents, a tree, and a
// message.
func createCommit(
	ctx context.Context,
	repo *Repository,
	parents []*Commit,
	tree *Tree,
	message string,
) (*Commit, error) {
	parentShas := make([]Sha, 0, len(parents))
	for _, parent := range parents {
		parentShas = append(parentShas, parent.sha)
	}

	payload := map[string]interface{}{
		"parents": parentShas,
		"message": message,
		"tree":    tree.Sha(),
	}

	var capsule commitCapsule

	resp, err := repo.Client().
		Post(repo.Endpoint()+"/git/commits").
		JSON(payload).
		Send(ctx)
	if err != nil {
		return nil, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	return &Commit{
		repo: repo,
		sha:  capsule.Sha,
		date: capsule.Author.Date,
	}, nil
}

// Sha returns the commit's content hash.
func (c *Commit) Sha() Sha {
	return c.sha
}

// Date returns the authorship date captured when the handle was
// created.
func (c *Commit) Date() time.Time {
	return c.date
}

// Repository returns the owning repository.
func (c *Commit) Repository() *Repository {
	return c.repo
}

// Client returns the transport able to reach the commit.
func (c *Commit) Client() *transport.Client {
	return c.repo.Client()
}

// Endpoint returns the commit's API path.
func (c *Commit) Endpoint() string {
	return c.repo.Endpoint() + "/git/commits/" +
		c.sha.String()
}

// Content fetches the canonical commit object.
func (c *Commit) Content(
	ctx context.Context,
) (CommitContent, error) {
	return Properties[CommitContent](ctx, c)
}

// Parents fetches the commit's parents, each re-fetched by SHA.
// Depth is caller-controlled; nothing here recurses.
func (c *Commit) Parents(
	ctx context.Context,
) ([]*Commit, error) {
	capsule, err := Properties[struct {
		Parents []struct {
			Sha Sha `json:"sha"`
		} `json:"parents"`
	}](ctx, c)
	if err != nil {
		return nil, err
	}

	parents := make([]*Commit, 0, len(capsule.Parents))
	for _, parent := range capsule.Parents {
		fetched, err := fetchCommit(
			ctx, c.repo, parent.Sha,
		)
		if err != nil {
			return nil, err
		}

		parents = append(parents, fetched)
	}

	return parents, nil
}

// Tree fetches the tree the commit points at.
func (c *Commit) Tree(
	ctx context.Context,
	recursive bool,
) (*Tree, error) {
	capsule, err := Properties[struct {
		Tree struct {
			Sha Sha `json:"sha"`
		} `json:"tree"`
	}](ctx, c)
	if err != nil {
		return nil, err
	}

	return fetchTree(ctx, c.repo, capsule.Tree.Sha, recursive)
}

// FetchDate re-reads the authorship date from the remote.
func (c *Commit) FetchDate(
	ctx context.Context,
) (time.Time, error) {
	capsule, err := Properties[commitCapsule](ctx, c)
	if err != nil {
		return time.Time{}, err
	}

	return capsule.Author.Date, nil
}

// Compare lists the file changes from this commit to head.
func (c *Commit) Compare(
	ctx context.Context,
	head *Commit,
) (*Compare, error) {
	return compareCommits(ctx, c.repo, c, head)
}

// Download retrieves the zip archive of the commit's tree and
// extracts it under dir.
func (c *Commit) Download(
	ctx context.Context,
	dir string,
) error {
	resp, err := c.Client().Get(
		c.repo.Endpoint() + "/zipball/" + c.sha.String(),
	).Send(ctx)
	if err != nil {
		return err
	}

	return archive.ExtractZip(resp.Bytes(), dir)
}
