package transport

import (
	"errors"
	"fmt"
)

// RequestError reports a failure before any HTTP response was
// received: the server was unreachable after all retries, or the
// request could not be built.
type RequestError struct {
	// Op is the failing operation ("build request",
	// "send request").
	Op string
	// Err is the underlying cause.
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a non-2xx HTTP response.
type ErrorKind int

const (
	// Unauthorized covers 401 and 403.
	Unauthorized ErrorKind = iota
	// Nothing covers 404.
	Nothing
	// Validation covers 422.
	Validation
	// Unhandled covers every other non-2xx status.
	Unhandled
)

// String returns the taxonomy name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Nothing:
		return "nothing"
	case Validation:
		return "validation"
	default:
		return "unhandled"
	}
}

// classify maps an HTTP status code to its taxonomy kind.
func classify(code int) ErrorKind {
	switch code {
	case 401, 403:
		return Unauthorized
	case 404:
		return Nothing
	case 422:
		return Validation
	default:
		return Unhandled
	}
}

// ResponseError reports a non-2xx HTTP response.
type ResponseError struct {
	// Kind is the taxonomy bucket for the status code.
	Kind ErrorKind
	// Code is the numeric HTTP status.
	Code int
	// Message is the server-provided message, when the error
	// body carried one.
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf(
			"%s (%d): %s", e.Kind, e.Code, e.Message,
		)
	}

	return fmt.Sprintf("%s (%d)", e.Kind, e.Code)
}

// MalformedError reports a 2xx response whose body did not decode
// into the expected JSON shape.
type MalformedError struct {
	// Reason is the decoder's explanation.
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed response: " + e.Reason
}

// EncodingError reports a response body that could not be read.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// IsNothing reports whether err is a ResponseError classified as
// Nothing (HTTP 404).
func IsNothing(err error) bool {
	var re *ResponseError

	return errors.As(err, &re) && re.Kind == Nothing
}

// IsUnauthorized reports whether err is a ResponseError classified
// as Unauthorized (HTTP 401/403).
func IsUnauthorized(err error) bool {
	var re *ResponseError

	return errors.As(err, &re) && re.Kind == Unauthorized
}

// IsValidation reports whether err is a ResponseError classified as
// Validation (HTTP 422).
func IsValidation(err error) bool {
	var re *ResponseError

	return errors.As(err, &re) && re.Kind == Validation
}
