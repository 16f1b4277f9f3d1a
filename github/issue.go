package github

import (
	"context"
	"strconv"

	"github.com/byte4ever/ghkit/transport"
)

// Issue is the handle of a plain issue. Pull requests share the
// issue number space but never get a handle; construction rejects
// them up front.
type Issue struct {
	repo   *Repository
	number int
}

// fetchIssue fetches an issue by number. A number naming a pull
// request fails with *NotAnIssueError.
func fetchIssue(
	ctx context.Context,
	repo *Repository,
	number int,
) (*Issue, error) {
	issue := &Issue{repo: repo, number: number}

	content, err := issue.Content(ctx)
	if err != nil {
		return nil, err
	}

	if content.IsPullRequest() {
		return nil, &NotAnIssueError{Number: number}
	}

	return issue, nil
}

// fetchAllIssues lists plain issues page by page, in the listing
// endpoint's default state filter. The listing mixes pull requests
// in; they are filtered out here.
func fetchAllIssues(
	ctx context.Context,
	repo *Repository,
) ([]*Issue, error) {
	contents, err := transport.Collect(ctx,
		func(
			ctx context.Context,
			page transport.ListOptions,
		) ([]IssueContent, error) {
			var items []IssueContent

			resp, err := repo.Client().
				Get(repo.Endpoint()+"/issues").
				Query(page).
				Send(ctx)
			if err != nil {
				return nil, err
			}

			if err := resp.JSON(&items); err != nil {
				return nil, err
			}

			return items, nil
		})
	if err != nil {
		return nil, err
	}

	issues := make([]*Issue, 0, len(contents))

	for _, content := range contents {
		if content.IsPullRequest() {
			continue
		}

		issues = append(issues, &Issue{
			repo:   repo,
			number: content.Number,
		})
	}

	return issues, nil
}

// Number returns the issue number.
func (i *Issue) Number() int {
	return i.number
}

// Repository returns the owning repository.
func (i *Issue) Repository() *Repository {
	return i.repo
}

// Client returns the transport able to reach the issue.
func (i *Issue) Client() *transport.Client {
	return i.repo.Client()
}

// Endpoint returns the issue's API path.
func (i *Issue) Endpoint() string {
	return i.repo.Endpoint() + "/issues/" +
		strconv.Itoa(i.number)
}

// Content fetches the issue's current state.
func (i *Issue) Content(
	ctx context.Context,
) (IssueContent, error) {
	return Properties[IssueContent](ctx, i)
}

// IssueUpdate accumulates a partial issue update. Only the fields
// touched by a setter go on the wire.
type IssueUpdate struct {
	payload map[string]interface{}
}

// NewIssueUpdate returns an empty update.
func NewIssueUpdate() *IssueUpdate {
	return &IssueUpdate{
		payload: make(map[string]interface{}),
	}
}

func (u *IssueUpdate) set(
	key string, value interface{},
) *IssueUpdate {
	u.payload[key] = value

	return u
}

// Title sets the issue title.
func (u *IssueUpdate) Title(title string) *IssueUpdate {
	return u.set("title", title)
}

// Body sets the issue body.
func (u *IssueUpdate) Body(body string) *IssueUpdate {
	return u.set("body", body)
}

// State sets the lifecycle state.
func (u *IssueUpdate) State(state IssueState) *IssueUpdate {
	return u.set("state", state)
}

// Update applies a partial issue update.
func (i *Issue) Update(
	ctx context.Context,
	update *IssueUpdate,
) error {
	return SetProperties(ctx, i, update.payload)
}

// SetAssignees posts the desired assignee list in one request.
// Server semantics are additive union, not replace; assignees
// already on the issue but absent from logins stay assigned. Logins
// are folded to lowercase before the write.
func (i *Issue) SetAssignees(
	ctx context.Context,
	logins []string,
) error {
	folded := make([]string, 0, len(logins))
	for _, login := range logins {
		folded = append(folded, foldLogin(login))
	}

	_, err := i.Client().
		Post(i.Endpoint()+"/assignees").
		JSON(map[string][]string{"assignees": folded}).
		Send(ctx)

	return err
}

// Comment fetches a comment by identifier, checking that it belongs
// to this issue's repository.
func (i *Issue) Comment(
	ctx context.Context,
	id int64,
) (*Comment, error) {
	return fetchComment(ctx, i, id)
}

// Comments lists every comment on the issue.
func (i *Issue) Comments(
	ctx context.Context,
) ([]*Comment, error) {
	return fetchAllComments(ctx, i)
}

// HasComment reports whether the comment exists.
func (i *Issue) HasComment(
	ctx context.Context,
	id int64,
) (bool, error) {
	_, err := fetchComment(ctx, i, id)
	if err != nil {
		if isCommentAbsence(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// CreateComment posts a new comment and returns its handle.
func (i *Issue) CreateComment(
	ctx context.Context,
	body string,
) (*Comment, error) {
	return createComment(ctx, i, body)
}

// DeleteComment removes a comment by identifier. No prior fetch is
// needed; the delete goes straight at the comment endpoint.
func (i *Issue) DeleteComment(
	ctx context.Context,
	id int64,
) error {
	comment := &Comment{issue: i, id: id}

	return comment.delete(ctx)
}
