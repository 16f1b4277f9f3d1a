package github

import (
	"context"

	"github.com/byte4ever/ghkit/transport"
)

// Handle is the capability every resource implements: it can name
// the client able to reach it and the endpoint path derived from its
// ownership chain. Adding a resource type to the graph means
// implementing this one capability, not writing a bespoke client.
type Handle interface {
	// Client returns the transport able to reach the resource.
	Client() *transport.Client

	// Endpoint returns the resource's API path, relative to the
	// API base.
	Endpoint() string
}

// Properties fetches the handle's endpoint and decodes it into an
// arbitrary caller-chosen projection. Narrow projections keep
// deserialization from tripping over fields the caller never reads.
func Properties[T any](
	ctx context.Context,
	h Handle,
) (T, error) {
	var out T

	resp, err := h.Client().Get(h.Endpoint()).Send(ctx)
	if err != nil {
		return out, err
	}

	if err := resp.JSON(&out); err != nil {
		return out, err
	}

	return out, nil
}

// SetProperties issues a partial update (PATCH) of the handle's
// resource with the given payload. The response body is not re-read
// into the handle; the handle itself remains valid for chaining, at
// the price of possibly stale local identity.
func SetProperties(
	ctx context.Context,
	h Handle,
	payload interface{},
) error {
	_, err := h.Client().
		Patch(h.Endpoint()).
		JSON(payload).
		Send(ctx)

	return err
}
