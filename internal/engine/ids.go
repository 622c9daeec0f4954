package engine

import "github.com/google/uuid"

// IDGenerator generates unique identifiers for orders and catalog
// entries. Implemented by UUIDv7Generator (production) and the
// sequential generator in internal/testutil (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-ordered UUIDs, so IDs sort by creation
// time the way the persisted order history does.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
