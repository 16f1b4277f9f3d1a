package transport

import (
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// Response is a fully-read HTTP response.
type Response struct {
	code int
	body []byte
}

// read drains the response body and closes it.
func read(resp *http.Response) (*Response, error) {
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	return &Response{
		code: resp.StatusCode,
		body: body,
	}, nil
}

// Code returns the HTTP status code.
func (r *Response) Code() int {
	return r.code
}

// Success reports whether the status code is in the 2xx range.
func (r *Response) Success() bool {
	return r.code >= 200 && r.code < 300
}

// Bytes returns the raw response body.
func (r *Response) Bytes() []byte {
	return r.body
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.body)
}

// JSON decodes the response body into v. A body that does not match
// the expected shape yields a *MalformedError.
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return &MalformedError{Reason: err.Error()}
	}

	return nil
}

// asError classifies a non-2xx response into a *ResponseError,
// extracting the optional server message from the error body.
func (r *Response) asError() error {
	// Error bodies usually carry a "message" field; anything
	// else is ignored.
	var capsule struct {
		Message string `json:"message"`
	}

	// Best effort only: an unparseable error body still yields
	// a classified error.
	_ = json.Unmarshal(r.body, &capsule)

	return &ResponseError{
		Kind:    classify(r.code),
		Code:    r.code,
		Message: capsule.Message,
	}
}
