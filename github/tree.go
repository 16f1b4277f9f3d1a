package github

import (
	"context"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/ghkit/transport"
)

// Mode is a git tree-entry file mode. On the wire it travels as a
// zero-padded six-digit octal string and must round-trip exactly.
type Mode uint32

const (
	ModeFile       Mode = 0o100644
	ModeExecutable Mode = 0o100755
	ModeDirectory  Mode = 0o040000
	ModeCommit     Mode = 0o160000
	ModeLink       Mode = 0o120000
)

// MarshalJSON encodes the mode as a six-digit octal string.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%06o", uint32(m)))
}

// UnmarshalJSON decodes a six-digit octal string; anything that is
// not valid octal fails the decode.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var raw string

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := strconv.ParseUint(raw, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid tree entry mode %q: %w",
			raw, err)
	}

	*m = Mode(parsed)

	return nil
}

// EntryKind is the object type a tree entry points at.
type EntryKind string

const (
	EntryBlob   EntryKind = "blob"
	EntryTree   EntryKind = "tree"
	EntryCommit EntryKind = "commit"
)

// TreeEntry is one row of a git tree listing.
type TreeEntry struct {
	Kind EntryKind `json:"type"`
	Path string    `json:"path"`
	Mode Mode      `json:"mode"`
	Sha  Sha       `json:"sha"`
}

// Tree is the handle of a git tree object, carrying the entry
// listing captured when the handle was created.
type Tree struct {
	repo    *Repository
	sha     Sha
	entries []TreeEntry
}

type treeCapsule struct {
	Sha     Sha         `json:"sha"`
	Entries []TreeEntry `json:"tree"`
}

func fetchTree(
	ctx context.Context,
	repo *Repository,
	sha Sha,
	recursive bool,
) (*Tree, error) {
	req := repo.Client().Get(
		repo.Endpoint() + "/git/trees/" + sha.String(),
	)

	if recursive {
		req = req.Query(struct {
			Recursive string `url:"recursive"`
		}{Recursive: "true"})
	}

	resp, err := req.Send(ctx)
	if err != nil {
		return nil, err
	}

	var capsule treeCapsule

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	return &Tree{
		repo:    repo,
		sha:     capsule.Sha,
		entries: capsule.Entries,
	}, nil
}

func createTree(
	ctx context.Context,
	repo *Repository,
	entries []TreeEntry,
) (*Tree, error) {
	return postTree(ctx, repo, map[string]interface{}{
		"tree": entries,
	})
}

// createTreeWithBase stacks entries on top of the base commit's
// tree; the server merges the listings.
func createTreeWithBase(
	ctx context.Context,
	repo *Repository,
	base *Commit,
	entries []TreeEntry,
) (*Tree, error) {
	baseTree, err := base.Tree(ctx, false)
	if err != nil {
		return nil, err
	}

	return postTree(ctx, repo, map[string]interface{}{
		"base_tree": baseTree.Sha(),
		"tree":      entries,
	})
}

func postTree(
	ctx context.Context,
	repo *Repository,
	payload map[string]interface{},
) (*Tree, error) {
	resp, err := repo.Client().
		Post(repo.Endpoint()+"/git/trees").
		JSON(payload).
		Send(ctx)
	if err != nil {
		return nil, err
	}

	var capsule treeCapsule

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	return &Tree{
		repo:    repo,
		sha:     capsule.Sha,
		entries: capsule.Entries,
	}, nil
}

// Sha returns the tree's content hash.
func (t *Tree) Sha() Sha {
	return t.sha
}

// Entries returns the listing captured at fetch or create time.
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Repository returns the owning repository.
func (t *Tree) Repository() *Repository {
	return t.repo
}

// Client returns the transport able to reach the tree.
func (t *Tree) Client() *transport.Client {
	return t.repo.Client()
}

// Endpoint returns the tree's API path.
func (t *Tree) Endpoint() string {
	return t.repo.Endpoint() + "/git/trees/" + t.sha.String()
}
