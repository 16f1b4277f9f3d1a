package github_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/ghkit/github"
)

func TestSha_string_semantics(t *testing.T) {
	t.Parallel()

	assert.Equal(t, github.NewSha("x"), github.Sha("x"))
	assert.NotEqual(t, github.Sha("x"), github.Sha("y"))
	assert.True(t, github.Sha("a") < github.Sha("b"))
	assert.Equal(t, "deadbeef", github.Sha("deadbeef").String())

	// Usable as a map key.
	seen := map[github.Sha]struct{}{
		github.Sha("a"): {},
	}
	_, ok := seen[github.NewSha("a")]
	assert.True(t, ok)
}
