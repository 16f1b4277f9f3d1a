package github

import (
	"errors"
	"fmt"
)

// UnsupportedAccountError reports a login whose account kind is
// neither Organization nor User. The decoded profile is carried for
// diagnostics.
type UnsupportedAccountError struct {
	Account AccountProfile
}

func (e *UnsupportedAccountError) Error() string {
	return fmt.Sprintf(
		"unsupported account kind %q for %q",
		e.Account.Kind, e.Account.Login,
	)
}

// NotOrganizationError reports an account that resolved to a user
// where an organization was required.
type NotOrganizationError struct {
	Account AccountProfile
}

func (e *NotOrganizationError) Error() string {
	return fmt.Sprintf(
		"not an organization: %q", e.Account.Login,
	)
}

// NotUserError reports an account that resolved to an organization
// where a user was required.
type NotUserError struct {
	Account AccountProfile
}

func (e *NotUserError) Error() string {
	return fmt.Sprintf("not a user: %q", e.Account.Login)
}

// InvalidReferenceError reports a ref string that does not parse as
// a branch, tag, or pull-request ref.
type InvalidReferenceError struct {
	Ref string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference: %q", e.Ref)
}

// ReferenceNotFoundError reports a parseable ref that the remote
// does not have, including the case where the remote answered with
// an unrelated ref (suffix mismatch).
type ReferenceNotFoundError struct {
	Ref string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("reference not found: %q", e.Ref)
}

// CircularReferenceError reports an annotated tag chain that loops
// back on itself during commit resolution.
type CircularReferenceError struct {
	Ref string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference: %q", e.Ref)
}

// InvalidBranchError reports a ref that resolved to something other
// than a branch where a branch was required.
type InvalidBranchError struct {
	Name string
}

func (e *InvalidBranchError) Error() string {
	return fmt.Sprintf("invalid branch: %q", e.Name)
}

// InvalidTagError reports a ref that resolved to something other
// than a tag where a tag was required.
type InvalidTagError struct {
	Name string
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid tag: %q", e.Name)
}

// DefaultBranchError reports a repository whose advertised default
// branch could not be resolved.
type DefaultBranchError struct {
	Name string
}

func (e *DefaultBranchError) Error() string {
	return fmt.Sprintf(
		"failed to resolve default branch: %q", e.Name,
	)
}

// CommitNotFoundError reports a commit SHA the repository does not
// have. It is distinct from the transport's generic 404 so callers
// can tell "this exact commit is missing" apart from other absences.
type CommitNotFoundError struct {
	Sha Sha
}

func (e *CommitNotFoundError) Error() string {
	return fmt.Sprintf("commit not found: %q", e.Sha)
}

// NotAnIssueError reports an issue number that is actually a pull
// request.
type NotAnIssueError struct {
	Number int
}

func (e *NotAnIssueError) Error() string {
	return fmt.Sprintf("not an issue: %d", e.Number)
}

// CommentNotFoundError reports a comment id the issue does not have.
type CommentNotFoundError struct {
	ID int64
}

func (e *CommentNotFoundError) Error() string {
	return fmt.Sprintf("comment not found: %d", e.ID)
}

// isRefAbsence reports whether err means the reference does not
// exist remotely, as opposed to being unparseable or the transport
// failing.
func isRefAbsence(err error) bool {
	var notFound *ReferenceNotFoundError

	return errors.As(err, &notFound)
}
