package filesystem

import (
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
	"io"
	"os"

	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/opencontainers/go-digest"
)

// DefaultBlockSize is the read size used when streaming file content
const DefaultBlockSize = 64 * 1024

// Hasher computes content fingerprints used as dedup keys. Equal digests are
// treated as equal content; there is no byte-for-byte verification.
type Hasher struct {
	algorithm digest.Algorithm
	blockSize int
}

// NewHasher creates a hasher for the named algorithm (sha256, sha384, sha512)
func NewHasher(algorithm string, blockSize int) (*Hasher, error) {
	alg := digest.Algorithm(algorithm)
	if algorithm == "" {
		alg = digest.Canonical
	}
	if !alg.Available() {
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Hasher{algorithm: alg, blockSize: blockSize}, nil
}

// Algorithm returns the digest algorithm name
func (h *Hasher) Algorithm() string {
	return string(h.algorithm)
}

// HashFile streams the file at path through the digest and returns its hex
// encoding. Failures are returned as "ERROR:<reason>" instead of an error.
func (h *Hasher) HashFile(path string) string {
	d, err := h.digestFile(path)
	if err != nil {
		return models.HashErrorPrefix + err.Error()
	}
	return d.Encoded()
}

func (h *Hasher) digestFile(path string) (digest.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digester := h.algorithm.Digester()
	buf := make([]byte, h.blockSize)
	// Hide WriterTo so the copy goes through buf
	if _, err := io.CopyBuffer(digester.Hash(), struct{ io.Reader }{f}, buf); err != nil {
		return "", err
	}
	return digester.Digest(), nil
}
