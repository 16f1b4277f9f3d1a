package github

import (
	"context"

	"github.com/byte4ever/ghkit/endpoint"
	"github.com/byte4ever/ghkit/transport"
)

// User is the handle of a user account.
type User struct {
	tr    *transport.Client
	login string
	id    int64
}

// Login returns the case-folded user login.
func (u *User) Login() string {
	return u.login
}

// ID returns the numeric account id.
func (u *User) ID() int64 {
	return u.id
}

// Client returns the transport able to reach the user.
func (u *User) Client() *transport.Client {
	return u.tr
}

// Endpoint returns the user's API path.
func (u *User) Endpoint() string {
	return endpoint.MustExpand(
		"users/{login}",
		endpoint.Vars{"login": u.login},
	)
}

// Content fetches the canonical profile of the user.
func (u *User) Content(
	ctx context.Context,
) (AccountProfile, error) {
	return Properties[AccountProfile](ctx, u)
}

// Repository resolves a repository owned by the user.
func (u *User) Repository(
	ctx context.Context,
	name string,
) (*Repository, error) {
	return fetchRepository(ctx, Account{user: u}, name)
}

// Repositories lists every repository owned by the user.
func (u *User) Repositories(
	ctx context.Context,
) ([]*Repository, error) {
	return fetchAllRepositories(ctx, Account{user: u})
}
