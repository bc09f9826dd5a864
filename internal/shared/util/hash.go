package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// OwnerKey returns a filesystem-safe namespace for a caller ID. Empty IDs share
// the "anonymous" namespace.
func OwnerKey(owner string) string {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = "anonymous"
	}
	sum := sha256.Sum256([]byte(owner))
	return hex.EncodeToString(sum[:16])
}
