package tokenmanager

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

const refreshHashInfo = "refresh-token-hash"

// Keyed hash for refresh tokens at rest
// Key is derived from the signing secret
type refreshHasher struct {
	key []byte
}

func newRefreshHasher(secret string) (*refreshHasher, error) {
	key := make([]byte, 32)

	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(refreshHashInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("can't derive refresh hash key. Err: %w", err)
	}

	return &refreshHasher{key: key}, nil
}

func (h *refreshHasher) Hash(token string) string {
	// Error is possible only for keys longer than 64 bytes
	mac, _ := blake2b.New256(h.key)
	_, _ = mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
