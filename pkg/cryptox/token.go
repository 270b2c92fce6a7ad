package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Secret sizes in bytes before encoding.
const (
	SecretSize256 = 32
	SecretSize512 = 64
)

// GenerateSecret returns size random bytes encoded as base64url without
// padding. Used to mint an HMAC signing secret when none is configured.
func GenerateSecret(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random secret: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
