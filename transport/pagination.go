package transport

import "context"

// pageSize is the page size used by every listing endpoint.
const pageSize = 100

// ListOptions carries the pagination query parameters shared by all
// listing endpoints.
type ListOptions struct {
	PerPage int `url:"per_page"`
	Page    int `url:"page"`
}

// Collect drives the pagination protocol: starting at page 1 it
// requests pages of 100 items and appends the results until a short
// page signals the end. The loop is bounded only by the server's
// honesty about page sizes; a server forever returning exact
// multiples of 100 would never terminate.
func Collect[T any](
	ctx context.Context,
	fetch func(context.Context, ListOptions) ([]T, error),
) ([]T, error) {
	var collection []T

	for page := 1; ; page++ {
		items, err := fetch(ctx, ListOptions{
			PerPage: pageSize,
			Page:    page,
		})
		if err != nil {
			return nil, err
		}

		collection = append(collection, items...)

		if len(items) < pageSize {
			return collection, nil
		}
	}
}
