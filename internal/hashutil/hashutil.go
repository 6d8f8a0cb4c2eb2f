package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA256Hex returns a trimmed-input SHA-256 hash encoded in hex.
func SHA256Hex(input string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(input)))
	return hex.EncodeToString(sum[:])
}

// AlertHash returns the dedup key for a service alert. Alerts carrying a
// link hash on the link; the rest hash on title plus summary.
func AlertHash(url, title, summary string) string {
	if strings.TrimSpace(url) != "" {
		return SHA256Hex(url)
	}
	return SHA256Hex(strings.TrimSpace(title) + strings.TrimSpace(summary))
}
