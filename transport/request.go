package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-retryablehttp"
)

// Request accumulates a single API call. Configure it with Query,
// JSON and Header, then issue it with Send. A Request is single-use.
type Request struct {
	client   *Client
	method   string
	endpoint string
	values   url.Values
	body     []byte
	header   http.Header
	err      error
}

// Query encodes opts into the query string. opts is either a
// url.Values or a struct with `url` tags.
func (r *Request) Query(opts interface{}) *Request {
	if r.err != nil {
		return r
	}

	switch v := opts.(type) {
	case url.Values:
		r.values = v
	default:
		values, err := query.Values(opts)
		if err != nil {
			r.err = &RequestError{
				Op:  "encode query",
				Err: err,
			}

			return r
		}

		r.values = values
	}

	return r
}

// JSON sets the request body to the JSON encoding of payload.
func (r *Request) JSON(payload interface{}) *Request {
	if r.err != nil {
		return r
	}

	body, err := json.Marshal(payload)
	if err != nil {
		r.err = &RequestError{
			Op:  "marshal body",
			Err: err,
		}

		return r
	}

	r.body = body
	r.header.Set(
		"Content-Type",
		"application/json; charset=utf-8",
	)

	return r
}

// Header adds a header to the request.
func (r *Request) Header(key, value string) *Request {
	r.header.Set(key, value)

	return r
}

// Send issues the request. Transient failures are retried per the
// client's RetryPolicy; a non-2xx response is classified and
// returned as a *ResponseError.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	const errCtx = "sending request"

	if r.err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, r.err)
	}

	target, err := r.client.base.Parse(r.endpoint)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, &RequestError{
				Op:  "build url",
				Err: err,
			},
		)
	}

	if len(r.values) > 0 {
		target.RawQuery = r.values.Encode()
	}

	var body interface{}
	if r.body != nil {
		body = r.body
	}

	req, err := retryablehttp.NewRequestWithContext(
		ctx, r.method, target.String(), body,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, &RequestError{
				Op:  "build request",
				Err: err,
			},
		)
	}

	for key, values := range r.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", r.client.agent)

	if r.client.token != "" {
		req.Header.Set(
			"Authorization",
			"Bearer "+r.client.token,
		)
	}

	resp, err := r.client.inner.Do(req)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, &RequestError{
				Op:  "send request",
				Err: err,
			},
		)
	}

	response, err := read(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if response.Success() {
		return response, nil
	}

	return nil, response.asError()
}
