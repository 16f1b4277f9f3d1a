package github

import (
	"context"

	"github.com/byte4ever/ghkit/endpoint"
	"github.com/byte4ever/ghkit/transport"
)

// Organization is the handle of an organization account.
type Organization struct {
	tr    *transport.Client
	login string
	id    int64
}

// Login returns the case-folded organization login.
func (o *Organization) Login() string {
	return o.login
}

// ID returns the numeric account id.
func (o *Organization) ID() int64 {
	return o.id
}

// Client returns the transport able to reach the organization.
func (o *Organization) Client() *transport.Client {
	return o.tr
}

// Endpoint returns the organization's API path.
func (o *Organization) Endpoint() string {
	return endpoint.MustExpand(
		"orgs/{org}",
		endpoint.Vars{"org": o.login},
	)
}

// Content fetches the canonical profile of the organization.
func (o *Organization) Content(
	ctx context.Context,
) (AccountProfile, error) {
	return Properties[AccountProfile](ctx, o)
}

// IsVerified reports whether the organization's domain is verified.
func (o *Organization) IsVerified(
	ctx context.Context,
) (bool, error) {
	capsule, err := Properties[struct {
		IsVerified bool `json:"is_verified"`
	}](ctx, o)
	if err != nil {
		return false, err
	}

	return capsule.IsVerified, nil
}

// Team resolves a team of the organization by slug.
func (o *Organization) Team(
	ctx context.Context,
	slug string,
) (*Team, error) {
	return fetchTeam(ctx, o, slug)
}

// Teams lists every team of the organization.
func (o *Organization) Teams(
	ctx context.Context,
) ([]*Team, error) {
	return fetchAllTeams(ctx, o)
}

// Repository resolves a repository owned by the organization.
func (o *Organization) Repository(
	ctx context.Context,
	name string,
) (*Repository, error) {
	return fetchRepository(ctx, Account{org: o}, name)
}

// Repositories lists every repository owned by the organization.
func (o *Organization) Repositories(
	ctx context.Context,
) ([]*Repository, error) {
	return fetchAllRepositories(ctx, Account{org: o})
}

// Actions returns the Actions-permissions sub-resource.
func (o *Organization) Actions() *Actions {
	return &Actions{org: o}
}
