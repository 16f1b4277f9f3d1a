// Package endpoint expands REST path templates. Every handle derives
// its API path from its ownership chain by expanding a pattern such
// as "repos/{owner}/{repo}/git/commits/{sha}" with the identity it
// carries.
package endpoint

import (
	"fmt"
	"io"

	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{"
	endTag   = "}"
)

// Vars maps placeholder names to their values.
type Vars map[string]string

// Expand substitutes every {name} placeholder in pattern with its
// value from vars. A placeholder without a value is an error.
func Expand(pattern string, vars Vars) (string, error) {
	const errCtx = "expanding endpoint"

	out, err := fasttemplate.ExecuteFuncStringWithErr(
		pattern, startTag, endTag,
		func(w io.Writer, tag string) (int, error) {
			value, ok := vars[tag]
			if !ok {
				return 0, fmt.Errorf(
					"no value for placeholder %q",
					tag,
				)
			}

			return io.WriteString(w, value)
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// MustExpand is Expand for patterns whose placeholders are known to
// be covered. A missing placeholder is an internal invariant
// violation, not a recoverable condition, so it panics.
func MustExpand(pattern string, vars Vars) string {
	out, err := Expand(pattern, vars)
	if err != nil {
		panic(err)
	}

	return out
}
