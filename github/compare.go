package github

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// FileStatus is the per-file change classification of a comparison.
type FileStatus string

const (
	StatusAdded     FileStatus = "added"
	StatusRemoved   FileStatus = "removed"
	StatusModified  FileStatus = "modified"
	StatusRenamed   FileStatus = "renamed"
	StatusCopied    FileStatus = "copied"
	StatusChanged   FileStatus = "changed"
	StatusUnchanged FileStatus = "unchanged"
)

// UnmarshalJSON rejects statuses outside the known set so a new
// server-side value surfaces as a decode failure instead of passing
// through silently.
func (s *FileStatus) UnmarshalJSON(data []byte) error {
	var raw string

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch FileStatus(raw) {
	case StatusAdded,
		StatusRemoved,
		StatusModified,
		StatusRenamed,
		StatusCopied,
		StatusChanged,
		StatusUnchanged:
		*s = FileStatus(raw)
		return nil
	}

	return fmt.Errorf("unknown file status %q", raw)
}

// CompareFile is one changed file in a comparison.
type CompareFile struct {
	Status FileStatus `json:"status"`
	Path   string     `json:"filename"`
	Sha    Sha        `json:"sha"`
}

// Compare is the file-level diff between two commits.
type Compare struct {
	base  *Commit
	head  *Commit
	files []CompareFile
}

func compareCommits(
	ctx context.Context,
	repo *Repository,
	base *Commit,
	head *Commit,
) (*Compare, error) {
	var capsule struct {
		Files []CompareFile `json:"files"`
	}

	resp, err := repo.Client().Get(
		repo.Endpoint() + "/compare/" +
			base.Sha().String() + "..." +
			head.Sha().String(),
	).Send(ctx)
	if err != nil {
		return nil, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	return &Compare{
		base:  base,
		head:  head,
		files: capsule.Files,
	}, nil
}

// Base returns the left side of the comparison.
func (c *Compare) Base() *Commit {
	return c.base
}

// Head returns the right side of the comparison.
func (c *Compare) Head() *Commit {
	return c.head
}

// Files returns the changed files in server order.
func (c *Compare) Files() []CompareFile {
	return c.files
}
