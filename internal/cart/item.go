package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one cart entry: a catalog snapshot taken at add time plus the
// chosen quantity and variant. Display fields are never re-synced to later
// catalog changes.
type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	MaxQuantity int             `json:"max_quantity"`
}

// snapshot is the persisted shape of the store. The drawer flag is
// deliberately absent: it is session-only UI state.
type snapshot struct {
	Items        []LineItem `json:"items"`
	SaveForLater []LineItem `json:"save_for_later"`
	PromoCode    *string    `json:"promo_code"`
}
