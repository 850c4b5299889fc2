package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	pkgerrors "github.com/jordanveras/threadline-backend/pkg/errors"
	"github.com/jordanveras/threadline-backend/pkg/localstore"
	"github.com/jordanveras/threadline-backend/pkg/logger"
	"github.com/jordanveras/threadline-backend/pkg/metrics"
)

const metricStoreName = "cart"

// StoreParams groups dependencies for the cart store.
type StoreParams struct {
	Storage localstore.Storage
	Key     string
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// Store owns the active line items, the saved-for-later list, the promo code
// and the drawer-open flag. Every mutation snapshots the full state to the
// storage adapter under the store key; snapshot writes are best-effort and
// never fail the mutation.
type Store struct {
	mu           sync.Mutex
	items        []LineItem
	saveForLater []LineItem
	promoCode    *string
	isOpen       bool

	storage localstore.Storage
	key     string
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

// NewStore hydrates a cart store from the storage adapter. Absent or
// malformed snapshots fall back to empty defaults.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage adapter is required")
	}
	if params.Key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store key is required")
	}

	s := &Store{
		items:        []LineItem{},
		saveForLater: []LineItem{},
		storage:      params.Storage,
		key:          params.Key,
		logg:         params.Logger,
		metrics:      params.Metrics,
	}
	s.hydrate(ctx)
	return s, nil
}

func (s *Store) hydrate(ctx context.Context) {
	payload, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "store_key", s.key), "cart snapshot load failed, starting empty")
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "store_key", s.key), "cart snapshot malformed, starting empty")
		}
		return
	}

	if snap.Items != nil {
		s.items = snap.Items
	}
	if snap.SaveForLater != nil {
		s.saveForLater = snap.SaveForLater
	}
	s.promoCode = snap.PromoCode
}

// AddItem appends a fully-formed line item. When a line with the same id
// already exists the quantities are merged and capped at the existing line's
// max; the incoming item's max is not consulted.
func (s *Store) AddItem(ctx context.Context, item LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			merged := s.items[i].Quantity + item.Quantity
			if merged > s.items[i].MaxQuantity {
				merged = s.items[i].MaxQuantity
			}
			s.items[i].Quantity = merged
			s.persist(ctx, "add_item")
			return
		}
	}

	s.items = append(s.items, item)
	s.persist(ctx, "add_item")
}

// RemoveItem deletes the line with the given id; absent ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = removeByID(s.items, id)
	s.persist(ctx, "remove_item")
}

// UpdateQuantity sets the line's quantity, capped at the line's max. No lower
// bound is applied; callers are responsible for keeping quantities >= 1.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			if quantity > s.items[i].MaxQuantity {
				quantity = s.items[i].MaxQuantity
			}
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist(ctx, "update_quantity")
}

// ClearCart empties the active list. Saved-for-later items and the promo code
// survive.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []LineItem{}
	s.persist(ctx, "clear_cart")
}

// ToggleCart flips the drawer visibility flag. Session-only state: nothing is
// persisted.
func (s *Store) ToggleCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isOpen = !s.isOpen
	if s.metrics != nil {
		s.metrics.IncMutation(metricStoreName, "toggle_cart")
	}
	return s.isOpen
}

// SetPromoCode stores the code verbatim. Validation happens upstream; the
// pricing derivation only honors the exact accepted code.
func (s *Store) SetPromoCode(ctx context.Context, code *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.promoCode = copyStringPtr(code)
	s.persist(ctx, "set_promo_code")
}

// MoveToSaveForLater moves the line out of the active cart into the saved
// list unchanged. Absent ids are a no-op.
func (s *Store) MoveToSaveForLater(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.saveForLater = append(s.saveForLater, item)
			s.persist(ctx, "move_to_save_for_later")
			return
		}
	}
}

// MoveToCart moves a saved line back into the active cart. Unlike AddItem it
// appends without merging, so an active line with the same id results in two
// lines sharing that id.
func (s *Store) MoveToCart(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.saveForLater {
		if s.saveForLater[i].ID == id {
			item := s.saveForLater[i]
			s.saveForLater = append(s.saveForLater[:i:i], s.saveForLater[i+1:]...)
			s.items = append(s.items, item)
			s.persist(ctx, "move_to_cart")
			return
		}
	}
}

// Items returns a copy of the active line items.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// SaveForLater returns a copy of the saved-for-later items.
func (s *Store) SaveForLater() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.saveForLater)
}

// PromoCode returns the currently applied promo code, if any.
func (s *Store) PromoCode() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyStringPtr(s.promoCode)
}

// IsOpen reports the drawer visibility flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Totals recomputes the derived pricing from the current items and promo
// code. Nothing is cached between reads.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.items, s.promoCode)
}

// persist snapshots the full state under the store key. Failures are logged
// and counted but never propagated; the in-memory state is authoritative.
// Callers must hold the mutex.
func (s *Store) persist(ctx context.Context, op string) {
	if s.metrics != nil {
		s.metrics.IncMutation(metricStoreName, op)
	}

	payload, err := json.Marshal(snapshot{
		Items:        s.items,
		SaveForLater: s.saveForLater,
		PromoCode:    s.promoCode,
	})
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
		s.logg.Warn(ctx, "cart snapshot save failed")
	}
}

func removeByID(items []LineItem, id string) []LineItem {
	filtered := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func copyItems(items []LineItem) []LineItem {
	copied := make([]LineItem, len(items))
	copy(copied, items)
	return copied
}

func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	val := *src
	return &val
}
