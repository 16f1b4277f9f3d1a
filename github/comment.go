package github

import (
	"context"
	"errors"
	"strconv"

	"github.com/byte4ever/ghkit/transport"
)

// Comment is the handle of an issue comment. Comment identifiers
// are repository-wide, so the handle keeps its issue for endpoint
// derivation only.
type Comment struct {
	issue *Issue
	id    int64
}

// fetchComment fetches a comment by identifier. A 404 maps to
// *CommentNotFoundError keyed by the identifier.
func fetchComment(
	ctx context.Context,
	issue *Issue,
	id int64,
) (*Comment, error) {
	comment := &Comment{issue: issue, id: id}

	_, err := comment.Content(ctx)
	if err != nil {
		if transport.IsNothing(err) {
			return nil, &CommentNotFoundError{ID: id}
		}

		return nil, err
	}

	return comment, nil
}

// fetchAllComments lists every comment on the issue. A 404 on the
// listing itself means the issue has no comment thread yet and maps
// to an empty slice.
func fetchAllComments(
	ctx context.Context,
	issue *Issue,
) ([]*Comment, error) {
	contents, err := transport.Collect(ctx,
		func(
			ctx context.Context,
			page transport.ListOptions,
		) ([]CommentContent, error) {
			var items []CommentContent

			resp, err := issue.Client().
				Get(issue.Endpoint()+"/comments").
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
		if transport.IsNothing(err) {
			return nil, nil
		}

		return nil, err
	}

	comments := make([]*Comment, 0, len(contents))
	for _, content := range contents {
		comments = append(comments, &Comment{
			issue: issue,
			id:    content.ID,
		})
	}

	return comments, nil
}

func createComment(
	ctx context.Context,
	issue *Issue,
	body string,
) (*Comment, error) {
	var capsule struct {
		ID int64 `json:"id"`
	}

	resp, err := issue.Client().
		Post(issue.Endpoint()+"/comments").
		JSON(map[string]string{"body": body}).
		Send(ctx)
	if err != nil {
		return nil, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	return &Comment{issue: issue, id: capsule.ID}, nil
}

func isCommentAbsence(err error) bool {
	var notFound *CommentNotFoundError

	return errors.As(err, &notFound)
}

// ID returns the comment's repository-wide identifier.
func (c *Comment) ID() int64 {
	return c.id
}

// Issue returns the owning issue.
func (c *Comment) Issue() *Issue {
	return c.issue
}

// Client returns the transport able to reach the comment.
func (c *Comment) Client() *transport.Client {
	return c.issue.Client()
}

// Endpoint returns the comment's API path. Comments are addressed
// by identifier alone, without the issue number.
func (c *Comment) Endpoint() string {
	return c.issue.Repository().Endpoint() +
		"/issues/comments/" +
		strconv.FormatInt(c.id, 10)
}

// Content fetches the comment's current body and author.
func (c *Comment) Content(
	ctx context.Context,
) (CommentContent, error) {
	return Properties[CommentContent](ctx, c)
}

// SetBody replaces the comment text.
func (c *Comment) SetBody(
	ctx context.Context,
	body string,
) error {
	return SetProperties(ctx, c, map[string]string{
		"body": body,
	})
}

func (c *Comment) delete(ctx context.Context) error {
	_, err := c.Client().Delete(c.Endpoint()).Send(ctx)

	return err
}
