package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash for a finding identity. The entity path
// and normalized snippet stand in for line numbers, so the hash survives
// unrelated edits elsewhere in the file.
func Fingerprint(ruleID, entity, normalizedSnippet string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", ruleID, entity, normalizedSnippet)
	return hex.EncodeToString(h.Sum(nil))
}
