// Package identity computes content digests and derives stable document
// identifiers from them. The same (path, digest) pair always yields the same
// id; changing either the path or the content changes the id.
package identity

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// docNamespace is the fixed UUID namespace for document ids. It must never
// change: ids derived under a different namespace would not match prior scans.
var docNamespace = uuid.MustParse("12345678-1234-5678-1234-567812345678")

// digestChunkSize is the read chunk size for streaming digests. Files are
// never loaded whole into memory.
const digestChunkSize = 8 * 1024

// Digest returns the hex-encoded BLAKE2b-256 digest of the file's content,
// computed by streaming fixed-size chunks. An unreadable file returns a
// wrapped I/O error; callers skip the file and continue.
func Digest(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("init digest: %w", err)
	}

	buf := make([]byte, digestChunkSize)
	if _, err := io.CopyBuffer(hasher, file, buf); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// DeriveID combines a slash-normalized path and a content digest into a
// deterministic name-based UUID. Identical (path, digest) pairs always map
// to the same id, and an id collision implies an identical pair with
// overwhelming probability.
func DeriveID(path, digest string) string {
	name := filepath.ToSlash(path) + "::" + digest
	return uuid.NewSHA1(docNamespace, []byte(name)).String()
}
