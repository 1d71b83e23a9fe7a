package datastore

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/aleister1102/urlchecker/internal/models"
)

// DeriveKey maps a resource identifier to its storage key: the full
// lowercase hex SHA-256 of the identifier bytes. The identifier is used
// verbatim, so callers wanting URL normalization must do it first.
func DeriveKey(identifier string) models.ResourceKey {
	sum := sha256.Sum256([]byte(identifier))
	return models.ResourceKey(hex.EncodeToString(sum[:]))
}
