package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/byte4ever/ghkit/endpoint"
	"github.com/byte4ever/ghkit/transport"
)

// Client is the entry point of the handle graph.
type Client struct {
	tr *transport.Client
}

// New builds a Client from transport settings.
func New(cfg transport.Config) (*Client, error) {
	const errCtx = "creating github client"

	tr, err := transport.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &Client{tr: tr}, nil
}

// FromTransport wraps an existing transport client.
func FromTransport(tr *transport.Client) *Client {
	return &Client{tr: tr}
}

// Transport returns the underlying transport client.
func (c *Client) Transport() *transport.Client {
	return c.tr
}

// Lookup fetches the raw profile of a login without gating on the
// account kind. All four kinds, Bot and Mannequin included, resolve.
func (c *Client) Lookup(
	ctx context.Context,
	login string,
) (AccountProfile, error) {
	var profile AccountProfile

	resp, err := c.tr.Get(endpoint.MustExpand(
		"users/{login}",
		endpoint.Vars{"login": foldLogin(login)},
	)).Send(ctx)
	if err != nil {
		return profile, err
	}

	if err := resp.JSON(&profile); err != nil {
		return profile, err
	}

	return profile, nil
}

// Account resolves a login into an Organization or User handle.
// name may carry extra path segments ("owner/repo/..."); only the
// first segment is used.
func (c *Client) Account(
	ctx context.Context,
	name string,
) (Account, error) {
	login, _, _ := strings.Cut(name, "/")

	return resolveAccount(ctx, c, login)
}

// Organization resolves a login and asserts it names an
// organization.
func (c *Client) Organization(
	ctx context.Context,
	name string,
) (*Organization, error) {
	account, err := c.Account(ctx, name)
	if err != nil {
		return nil, err
	}

	org, ok := account.Organization()
	if !ok {
		return nil, &NotOrganizationError{
			Account: account.Profile(),
		}
	}

	return org, nil
}

// User resolves a login and asserts it names a user.
func (c *Client) User(
	ctx context.Context,
	name string,
) (*User, error) {
	account, err := c.Account(ctx, name)
	if err != nil {
		return nil, err
	}

	user, ok := account.User()
	if !ok {
		return nil, &NotUserError{
			Account: account.Profile(),
		}
	}

	return user, nil
}

// Repository resolves "owner/repo" into a repository handle.
func (c *Client) Repository(
	ctx context.Context,
	name string,
) (*Repository, error) {
	account, err := c.Account(ctx, name)
	if err != nil {
		return nil, err
	}

	return account.Repository(ctx, name)
}

// foldLogin applies the single case rule: hosting-provider logins
// are case-insensitive, so every login is lowercased before any
// endpoint is built.
func foldLogin(login string) string {
	return strings.ToLower(login)
}
