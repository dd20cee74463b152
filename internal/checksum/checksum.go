// Package checksum computes content digests of figure scripts. The digest is
// the whole file's hash, so every figure in a script shares one fingerprint.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize is the read buffer size used while streaming a file into the
// hash. Fixed so the digest computation is reproducible run to run.
const chunkSize = 8192

// File returns the lowercase hex SHA-256 digest of the file at path.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
