package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// Token sizes in bytes before base64url encoding.
const (
	TokenSize256 = 32 // 43 chars
	TokenSize384 = 48 // 64 chars, verification links
)

// ErrTokenSize is returned for a non-positive token size.
var ErrTokenSize = errors.New("cryptox: token size must be positive")

// GenerateToken returns size random bytes as unpadded base64url, so the
// value can be placed in a URL path segment without escaping.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("%w, got %d", ErrTokenSize, size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken is the unpadded base64url SHA-256 of token. Links are
// persisted only as fingerprints.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
