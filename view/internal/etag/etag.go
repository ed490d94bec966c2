package etag

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Make builds a strong entity tag over the given parts.
func Make(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}

	return `"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`
}

// Split parses an If-None-Match header value into its entity tags.
func Split(header string) ([]string, bool) {
	if strings.TrimSpace(header) == "*" {
		return nil, true
	}

	var tags []string
	for _, f := range strings.Split(header, ",") {
		f = strings.TrimSpace(f)
		f = strings.TrimPrefix(f, "W/")
		if len(f) >= 2 && f[0] == '"' && f[len(f)-1] == '"' {
			tags = append(tags, f)
		}
	}

	return tags, false
}
