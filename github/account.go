package github

import (
	"context"

	"github.com/byte4ever/ghkit/transport"
)

// Account is the closed sum over the two account variants that can
// own repositories: Organization and User. Exactly one variant is
// set.
type Account struct {
	org  *Organization
	user *User
}

// resolveAccount fetches a login and discriminates it into a
// variant. Mannequin and Bot accounts cannot own the resources this
// graph models and are rejected.
func resolveAccount(
	ctx context.Context,
	c *Client,
	login string,
) (Account, error) {
	profile, err := c.Lookup(ctx, login)
	if err != nil {
		return Account{}, err
	}

	switch profile.Kind {
	case KindOrganization:
		return Account{
			org: &Organization{
				tr:    c.tr,
				login: foldLogin(profile.Login),
				id:    profile.ID,
			},
		}, nil
	case KindUser:
		return Account{
			user: &User{
				tr:    c.tr,
				login: foldLogin(profile.Login),
				id:    profile.ID,
			},
		}, nil
	default:
		return Account{}, &UnsupportedAccountError{
			Account: profile,
		}
	}
}

// Organization returns the organization variant, if that is what
// the account is.
func (a Account) Organization() (*Organization, bool) {
	return a.org, a.org != nil
}

// User returns the user variant, if that is what the account is.
func (a Account) User() (*User, bool) {
	return a.user, a.user != nil
}

// Login returns the case-folded login of the account.
func (a Account) Login() string {
	if a.org != nil {
		return a.org.login
	}

	return a.user.login
}

// ID returns the numeric account id.
func (a Account) ID() int64 {
	if a.org != nil {
		return a.org.id
	}

	return a.user.id
}

// Kind returns the account kind of the variant.
func (a Account) Kind() AccountKind {
	if a.org != nil {
		return KindOrganization
	}

	return KindUser
}

// Profile returns the identity the account carries locally, without
// a remote fetch.
func (a Account) Profile() AccountProfile {
	return AccountProfile{
		Login: a.Login(),
		ID:    a.ID(),
		Kind:  a.Kind(),
	}
}

// Client returns the transport of the underlying variant.
func (a Account) Client() *transport.Client {
	if a.org != nil {
		return a.org.Client()
	}

	return a.user.Client()
}

// Endpoint returns the endpoint of the underlying variant.
func (a Account) Endpoint() string {
	if a.org != nil {
		return a.org.Endpoint()
	}

	return a.user.Endpoint()
}

// Content fetches the canonical profile of the account.
func (a Account) Content(
	ctx context.Context,
) (AccountProfile, error) {
	return Properties[AccountProfile](ctx, a)
}

// Repository resolves a repository owned by the account.
func (a Account) Repository(
	ctx context.Context,
	name string,
) (*Repository, error) {
	return fetchRepository(ctx, a, name)
}

// Repositories lists every repository owned by the account.
func (a Account) Repositories(
	ctx context.Context,
) ([]*Repository, error) {
	return fetchAllRepositories(ctx, a)
}
