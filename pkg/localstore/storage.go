// Package localstore provides whole-state snapshot storage keyed by store
// name, the server-side analog of the browser storage the storefront persists
// cart state into. Backends share last-write-wins semantics; none of them
// coordinates concurrent writers across processes.
package localstore

import (
	"context"
	"errors"
)

// ErrNotFound marks an absent key. Callers treat it the same as a malformed
// payload: hydrate empty defaults.
var ErrNotFound = errors.New("localstore: key not found")

// Storage is the persistence contract cart and wishlist stores depend on.
// Save is best-effort from the store's perspective; a failed write must not
// interrupt the mutation that triggered it.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}
