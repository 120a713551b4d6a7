// Package idgen generates identifiers for assets, users and audit entries.
package idgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Prefixes keep identifiers readable in exported documents.
const (
	AssetPrefix = "asset-"
	UserPrefix  = "user-"
	LogPrefix   = "log-"
)

// NewAssetID returns a fresh asset identifier.
func NewAssetID() string {
	return AssetPrefix + uuid.NewString()
}

// NewUserID returns a fresh application user identifier.
func NewUserID() string {
	return UserPrefix + uuid.NewString()
}

// NewLogID returns a fresh audit entry identifier.
func NewLogID() string {
	return LogPrefix + uuid.NewString()
}

// NewAssetTag returns a human-facing tag of the form TAG-NNNN.
// Tags are not guaranteed unique; callers that care must check.
func NewAssetTag() string {
	return fmt.Sprintf("TAG-%d", 1000+rand.IntN(9000))
}
