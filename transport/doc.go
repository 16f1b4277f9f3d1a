// Package transport issues authenticated requests against the GitHub
// REST API and classifies the outcome.
//
// A Client is immutable after construction and cheap to share: it
// carries the credentials, the fixed protocol headers, and a pooled
// connection transport. Transient connection failures are retried
// with exponential backoff according to an injectable RetryPolicy;
// HTTP error responses are never retried, they are classified into a
// small taxonomy (Unauthorized, Validation, Nothing, Unhandled) and
// returned as typed errors the caller can match with errors.As.
//
// Collect implements the pagination protocol shared by every listing
// endpoint: pages of 100 are requested until a short page is
// returned.
package transport
