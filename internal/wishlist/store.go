package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/jordanveras/threadline-backend/internal/catalog"
	pkgerrors "github.com/jordanveras/threadline-backend/pkg/errors"
	"github.com/jordanveras/threadline-backend/pkg/localstore"
	"github.com/jordanveras/threadline-backend/pkg/logger"
	"github.com/jordanveras/threadline-backend/pkg/metrics"
)

const metricStoreName = "wishlist"

// StoreParams groups dependencies for the wishlist store.
type StoreParams struct {
	Storage localstore.Storage
	Key     string
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// Store keeps the set of favorited products, independent of the cart. Entries
// are full catalog snapshots keyed by product id.
type Store struct {
	mu    sync.Mutex
	items []catalog.Product

	storage localstore.Storage
	key     string
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

type snapshot struct {
	Items []catalog.Product `json:"items"`
}

// NewStore hydrates a wishlist store from the storage adapter. Absent or
// malformed snapshots fall back to an empty set.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage adapter is required")
	}
	if params.Key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store key is required")
	}

	s := &Store{
		items:   []catalog.Product{},
		storage: params.Storage,
		key:     params.Key,
		logg:    params.Logger,
		metrics: params.Metrics,
	}
	s.hydrate(ctx)
	return s, nil
}

func (s *Store) hydrate(ctx context.Context) {
	payload, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "store_key", s.key), "wishlist snapshot load failed, starting empty")
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "store_key", s.key), "wishlist snapshot malformed, starting empty")
		}
		return
	}
	if snap.Items != nil {
		s.items = snap.Items
	}
}

// AddItem inserts the product unless it is already favorited; duplicates are
// a silent no-op.
func (s *Store) AddItem(ctx context.Context, product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == product.ID {
			return
		}
	}
	s.items = append(s.items, product)
	s.persist(ctx, "add_item")
}

// RemoveItem deletes the entry with the given product id; absent ids are a
// no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]catalog.Product, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != productID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.persist(ctx, "remove_item")
}

// IsInWishlist reports membership by product id.
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the favorited products.
func (s *Store) Items() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]catalog.Product, len(s.items))
	copy(copied, s.items)
	return copied
}

// persist snapshots the set under the store key; failures are logged and
// counted but never propagated. Callers must hold the mutex.
func (s *Store) persist(ctx context.Context, op string) {
	if s.metrics != nil {
		s.metrics.IncMutation(metricStoreName, op)
	}

	payload, err := json.Marshal(snapshot{Items: s.items})
	if err != nil {
		s.reportSaveFailure(ctx, op, err)
		return
	}
	if err := s.storage.Save(ctx, s.key, payload); err != nil {
		s.reportSaveFailure(ctx, op, err)
	}
}

func (s *Store) reportSaveFailure(ctx context.Context, op string, err error) {
	if s.metrics != nil {
		s.metrics.IncSaveFailure(metricStoreName)
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"store_key": s.key, "op": op, "error": err.Error()})
		s.logg.Warn(ctx, "wishlist snapshot save failed")
	}
}
