// Package fallback holds the sample listings served when the estates API
// cannot provide real data.
package fallback

import (
	_ "embed"

	"estates-backend/internal/application/normalizer"
	"estates-backend/internal/domain"
)

//go:embed estates.json
var estatesJSON []byte

// Estates returns a fresh copy of the sample listings on every call.
func Estates() []domain.PropertyListing {
	return normalizer.Normalize(estatesJSON)
}
