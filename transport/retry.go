package transport

import "time"

// RetryPolicy bounds the transient-failure retry loop. Only
// connection-level failures and 429/5xx responses are retried;
// classified client errors (4xx) return immediately.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, first attempt
	// included. Values below 1 are treated as 1.
	MaxAttempts int
	// MinWait is the backoff floor.
	MinWait time.Duration
	// MaxWait is the backoff ceiling.
	MaxWait time.Duration
}

// DefaultRetryPolicy mirrors the production defaults: four attempts
// with exponential backoff between one and thirty seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		MinWait:     1 * time.Second,
		MaxWait:     30 * time.Second,
	}
}

// NoRetryPolicy disables retries entirely. Tests use it to keep
// request counts deterministic.
func NoRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1}
}

// retries returns the retry count retryablehttp expects (attempts
// after the first).
func (p RetryPolicy) retries() int {
	if p.MaxAttempts < 1 {
		return 0
	}

	return p.MaxAttempts - 1
}
