// Package archive extracts the zip archives served by the zipball
// download endpoint.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
)

// ExtractZip extracts the in-memory zip archive data into dir,
// creating directories as needed. Entries escaping dir via path
// traversal are rejected.
func ExtractZip(data []byte, dir string) error {
	const errCtx = "extracting archive"

	reader, err := zip.NewReader(
		bytes.NewReader(data), int64(len(data)),
	)
	if err != nil {
		return fmt.Errorf(
			"%s: open archive: %w", errCtx, err,
		)
	}

	// Deflate entries decompress through the klauspost
	// implementation.
	reader.RegisterDecompressor(
		zip.Deflate,
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		},
	)

	for _, entry := range reader.File {
		if err := extractEntry(entry, dir); err != nil {
			return fmt.Errorf(
				"%s: %s: %w",
				errCtx, entry.Name, err,
			)
		}
	}

	return nil
}

func extractEntry(entry *zip.File, dir string) error {
	target, err := sanitize(entry.Name, dir)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(
		filepath.Dir(target), 0o755,
	); err != nil {
		return err
	}

	in, err := entry.Open()
	if err != nil {
		return err
	}

	defer in.Close() //nolint:errcheck

	out, err := os.OpenFile(
		target,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		entry.Mode(),
	)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck,gosec

		return err
	}

	return out.Close()
}

// sanitize resolves name under dir and rejects entries that escape
// it.
func sanitize(name, dir string) (string, error) {
	target := filepath.Join(dir, filepath.Clean(name))

	base := filepath.Clean(dir)
	if target != base && !strings.HasPrefix(
		target, base+string(os.PathSeparator),
	) {
		return "", fmt.Errorf(
			"entry escapes destination: %q", name,
		)
	}

	return target, nil
}
