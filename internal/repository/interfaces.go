package repository

import (
	"context"

	"github.com/alexanderramin/crux/internal/domain"
)

// KV is the byte store the tracker persists into: a flat namespace of
// fixed keys, standing in for the browser's localStorage.
type KV interface {
	// Get returns the value for key. found is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CircuitRepo loads and saves the full tracked state. The store is
// written through after every mutation, so Save receives the complete
// circuit list each time.
type CircuitRepo interface {
	Load(ctx context.Context) (*domain.Store, error)
	Save(ctx context.Context, store *domain.Store) error
}
