// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5" //nolint:gosec // gravatar addresses images by md5 of the email
	"encoding/hex"
	"net/url"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// Image options: 800px, PG rated, "mystery person" fallback.
var defaults = url.Values{
	"s": {"800"},
	"r": {"pg"},
	"d": {"mm"},
}

// URL returns the gravatar image URL for email. The address is trimmed and
// lower-cased before hashing, so equivalent spellings share one avatar.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec
	return baseURL + hex.EncodeToString(sum[:]) + "?" + defaults.Encode()
}
