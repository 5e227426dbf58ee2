package store

import (
	"context"

	"github.com/avelling/resman/internal/domain"
)

// ResourceStore is the persistence gateway for credential records.
//
// Implementations must provide per-record atomicity for SetActive and
// Delete; no cross-record transactions are expected.
type ResourceStore interface {
	// Insert persists a new record.
	Insert(ctx context.Context, res domain.Resource) error

	// List returns up to 1000 records in store-native order.
	List(ctx context.Context) ([]domain.Resource, error)

	// SetActive atomically flips the is_active flag on the record with
	// the given id and returns the post-update record.
	// Returns domain.ErrNotFound when no record matches.
	SetActive(ctx context.Context, id string, active bool) (domain.Resource, error)

	// Delete removes the record with the given id.
	// Returns domain.ErrNotFound when no record matches.
	Delete(ctx context.Context, id string) error
}
