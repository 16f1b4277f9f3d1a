package github

// Sha is the content hash identifying a git object. It is an opaque
// string: equality and ordering follow string comparison, and no
// format validation is applied. The zero value is the empty hash.
type Sha string

// NewSha wraps a raw hash string.
func NewSha(raw string) Sha {
	return Sha(raw)
}

// String returns the raw hash.
func (s Sha) String() string {
	return string(s)
}
