package github

import (
	"context"

	"github.com/byte4ever/ghkit/endpoint"
	"github.com/byte4ever/ghkit/transport"
)

// Team is the handle of an organization team.
type Team struct {
	org  *Organization
	id   int64
	slug string
}

// fetchTeam resolves a team by slug.
func fetchTeam(
	ctx context.Context,
	org *Organization,
	slug string,
) (*Team, error) {
	var profile TeamProfile

	resp, err := org.Client().Get(endpoint.MustExpand(
		"orgs/{org}/teams/{slug}",
		endpoint.Vars{"org": org.login, "slug": slug},
	)).Send(ctx)
	if err != nil {
		return nil, err
	}

	if err := resp.JSON(&profile); err != nil {
		return nil, err
	}

	return &Team{
		org:  org,
		id:   profile.ID,
		slug: profile.Slug,
	}, nil
}

// fetchAllTeams lists the organization's teams page by page.
func fetchAllTeams(
	ctx context.Context,
	org *Organization,
) ([]*Team, error) {
	profiles, err := transport.Collect(ctx, func(
		ctx context.Context,
		opts transport.ListOptions,
	) ([]TeamProfile, error) {
		var page []TeamProfile

		resp, err := org.Client().
			Get(endpoint.MustExpand(
				"orgs/{org}/teams",
				endpoint.Vars{"org": org.login},
			)).
			Query(opts).
			Send(ctx)
		if err != nil {
			return nil, err
		}

		if err := resp.JSON(&page); err != nil {
			return nil, err
		}

		return page, nil
	})
	if err != nil {
		return nil, err
	}

	teams := make([]*Team, 0, len(profiles))
	for _, profile := range profiles {
		teams = append(teams, &Team{
			org:  org,
			id:   profile.ID,
			slug: profile.Slug,
		})
	}

	return teams, nil
}

// Slug returns the team slug.
func (t *Team) Slug() string {
	return t.slug
}

// ID returns the numeric team id.
func (t *Team) ID() int64 {
	return t.id
}

// Organization returns the owning organization.
func (t *Team) Organization() *Organization {
	return t.org
}

// Client returns the transport able to reach the team.
func (t *Team) Client() *transport.Client {
	return t.org.Client()
}

// Endpoint returns the team's API path.
func (t *Team) Endpoint() string {
	return endpoint.MustExpand(
		"orgs/{org}/teams/{slug}",
		endpoint.Vars{
			"org":  t.org.login,
			"slug": t.slug,
		},
	)
}

// Content fetches the canonical profile of the team.
func (t *Team) Content(
	ctx context.Context,
) (TeamProfile, error) {
	return Properties[TeamProfile](ctx, t)
}

// TeamMembers lists the team's members decoded into a caller-chosen
// member shape, so callers model exactly the fields they need.
func TeamMembers[T any](
	ctx context.Context,
	t *Team,
) ([]T, error) {
	var members []T

	resp, err := t.Client().Get(
		t.Endpoint() + "/members",
	).Send(ctx)
	if err != nil {
		return nil, err
	}

	if err := resp.JSON(&members); err != nil {
		return nil, err
	}

	return members, nil
}

// TeamHasMember reports whether the member list contains the given
// member, compared in the caller-chosen shape.
func TeamHasMember[T comparable](
	ctx context.Context,
	t *Team,
	member T,
) (bool, error) {
	members, err := TeamMembers[T](ctx, t)
	if err != nil {
		return false, err
	}

	for _, candidate := range members {
		if candidate == member {
			return true, nil
		}
	}

	return false, nil
}
