package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// Key derives the canonical cache key for a request signature. Parameter
// names are serialized in lexicographic order (url.Values.Encode sorts), so
// logically identical requests with differently ordered parameters collide
// on the same key.
func Key(path string, params url.Values) string {
	canonical := path
	if len(params) > 0 {
		canonical += "?" + params.Encode()
	}
	return ComputeHash(canonical)
}

// ComputeHash computes the SHA-256 hash of a canonical request string.
func ComputeHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
