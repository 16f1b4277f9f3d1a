package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/byte4ever/ghkit/transport"
)

// Blob is the handle of a git blob object with its content decoded
// at fetch time. Text blobs keep the string as served; binary blobs
// keep the decoded bytes.
type Blob struct {
	repo   *Repository
	sha    Sha
	text   string
	data   []byte
	binary bool
}

// fetchBlob fetches a blob and decodes it according to the encoding
// the server declares. Base64 payloads arrive line-wrapped, so
// whitespace is stripped before decoding.
func fetchBlob(
	ctx context.Context,
	repo *Repository,
	sha Sha,
) (*Blob, error) {
	var capsule struct {
		Sha      Sha    `json:"sha"`
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}

	resp, err := repo.Client().Get(
		repo.Endpoint() + "/git/blobs/" + sha.String(),
	).Send(ctx)
	if err != nil {
		return nil, err
	}

	if err := resp.JSON(&capsule); err != nil {
		return nil, err
	}

	switch capsule.Encoding {
	case "utf-8":
		return &Blob{
			repo: repo,
			sha:  capsule.Sha,
			text: capsule.Content,
		}, nil

	case "base64":
		data, err := decodeBase64(capsule.Content)
		if err != nil {
			return nil, err
		}

		return &Blob{
			repo:   repo,
			sha:    capsule.Sha,
			data:   data,
			binary: true,
		}, nil
	}

	return nil, fmt.Errorf("unknown blob encoding %q",
		capsule.Encoding)
}

func decodeBase64(content string) ([]byte, error) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}

		return r
	}, content)

	data, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return nil, fmt.Errorf("invalid blob content: %w",
			err)
	}

	return data, nil
}

func createTextBlob(
	ctx context.Context,
	repo *Repository,
	content string,
) (*Blob, error) {
	sha, err := postBlob(ctx, repo, content, "utf-8")
	if err != nil {
		return nil, err
	}

	return &Blob{
		repo: repo,
		sha:  sha,
		text: content,
	}, nil
}

func createBinaryBlob(
	ctx context.Context,
	repo *Repository,
	content []byte,
) (*Blob, error) {
	encoded := base64.StdEncoding.EncodeToString(content)

	sha, err := postBlob(ctx, repo, encoded, "base64")
	if err != nil {
		return nil, err
	}

	return &Blob{
		repo:   repo,
		sha:    sha,
		data:   content,
		binary: true,
	}, nil
}

func postBlob(
	ctx context.Context,
	repo *Repository,
	content string,
	encoding string,
) (Sha, error) {
	var capsule struct {
		Sha Sha `json:"sha"`
	}

	resp, err := repo.Client().
		Post(repo.Endpoint()+"/git/blobs").
		JSON(map[string]string{
			"content":  content,
			"encoding": encoding,
		}).
		Send(ctx)
	if err != nil {
		return "", err
	}

	if err := resp.JSON(&capsule); err != nil {
		return "", err
	}

	return capsule.Sha, nil
}

// Sha returns the blob's content hash.
func (b *Blob) Sha() Sha {
	return b.sha
}

// IsBinary reports whether the blob was served base64-encoded.
func (b *Blob) IsBinary() bool {
	return b.binary
}

// Text returns the blob content as a string.
func (b *Blob) Text() string {
	if b.binary {
		return string(b.data)
	}

	return b.text
}

// Bytes returns the blob content as raw bytes.
func (b *Blob) Bytes() []byte {
	if b.binary {
		return b.data
	}

	return []byte(b.text)
}

// Repository returns the owning repository.
func (b *Blob) Repository() *Repository {
	return b.repo
}

// Client returns the transport able to reach the blob.
func (b *Blob) Client() *transport.Client {
	return b.repo.Client()
}

// Endpoint returns the blob's API path.
func (b *Blob) Endpoint() string {
	return b.repo.Endpoint() + "/git/blobs/" + b.sha.String()
}
