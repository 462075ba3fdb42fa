// Package hash provides the one-way identity hashing used for API key
// authentication, uploader pseudonymization, and synthetic listing ids.
//
// The rendering is compatibility-critical: trusted-source and suppression
// records were provisioned against uppercase hex byte pairs joined by "-"
// (e.g. "9F-86-D0-..."), so the same encoding is kept here.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA256 returns the SHA-256 digest of s rendered as uppercase hex byte
// pairs joined by dashes. The output is deterministic and stable across
// restarts; stored records are keyed by it.
func SHA256(s string) string {
	sum := sha256.Sum256([]byte(s))

	var b strings.Builder
	b.Grow(len(sum)*3 - 1)
	for i, c := range sum {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strings.ToUpper(hex.EncodeToString([]byte{c})))
	}
	return b.String()
}
