package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jordanveras/threadline-backend/api/middleware"
	"github.com/jordanveras/threadline-backend/api/responses"
	"github.com/jordanveras/threadline-backend/api/validators"
	"github.com/jordanveras/threadline-backend/internal/cart"
	"github.com/jordanveras/threadline-backend/internal/catalog"
	pkgerrors "github.com/jordanveras/threadline-backend/pkg/errors"
	"github.com/jordanveras/threadline-backend/pkg/localstore"
	"github.com/jordanveras/threadline-backend/pkg/logger"
	"github.com/jordanveras/threadline-backend/pkg/metrics"
)

// CartDeps bundles everything the cart endpoints need. A store is hydrated
// per request from the session-scoped snapshot key, mutated, and snapshotted
// back by the store itself.
type CartDeps struct {
	Storage localstore.Storage
	CartKey string
	Catalog catalog.Service
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

func (d CartDeps) openStore(ctx context.Context) (*cart.Store, error) {
	sessionID := middleware.SessionID(ctx)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return cart.NewStore(ctx, cart.StoreParams{
		Storage: d.Storage,
		Key:     d.CartKey + ":" + sessionID,
		Logger:  d.Logger,
		Metrics: d.Metrics,
	})
}

type cartViewResponse struct {
	Items        []cart.LineItem `json:"items"`
	SaveForLater []cart.LineItem `json:"save_for_later"`
	PromoCode    *string         `json:"promo_code"`
	Totals       cart.Totals     `json:"totals"`
}

func newCartViewResponse(store *cart.Store) cartViewResponse {
	return cartViewResponse{
		Items:        store.Items(),
		SaveForLater: store.SaveForLater(),
		PromoCode:    store.PromoCode(),
		Totals:       store.Totals(),
	}
}

// CartFetch returns the session's cart with its derived pricing.
func CartFetch(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := deps.openStore(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}
		responses.WriteSuccess(w, newCartViewResponse(store))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartAddItem looks up the product and appends it as a line item. Lines that
// share a product id are merged up to the line's max quantity.
func CartAddItem(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		if deps.Logger != nil {
			ctx = deps.Logger.WithProductID(ctx, payload.ProductID)
		}

		product, err := deps.Catalog.GetProduct(ctx, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store.AddItem(ctx, cart.LineItem{
			ID:          product.ID,
			Name:        product.Name,
			Price:       product.Price,
			Quantity:    payload.Quantity,
			Image:       product.FeaturedImage(),
			Size:        payload.Size,
			Color:       payload.Color,
			MaxQuantity: product.MaxQuantity,
		})

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartViewResponse(store))
	}
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

// CartUpdateQuantity sets the line's quantity. The store caps at the line's
// max; zero is stored as-is rather than removing the line.
func CartUpdateQuantity(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store.UpdateQuantity(ctx, chi.URLParam(r, "itemId"), *payload.Quantity)
		responses.WriteSuccess(w, newCartViewResponse(store))
	}
}

// CartRemoveItem deletes the line with the given id.
func CartRemoveItem(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store.RemoveItem(ctx, chi.URLParam(r, "itemId"))
		responses.WriteSuccess(w, newCartViewResponse(store))
	}
}

// CartClear empties the active list. Saved-for-later items and the promo code
// survive.
func CartClear(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store.ClearCart(ctx)
		responses.WriteSuccess(w, newCartViewResponse(store))
	}
}

type setPromoRequest struct {
	Code *string `json:"code"`
}

// CartSetPromo stores the promo code verbatim; null clears it. Only the
// accepted code affects pricing.
func CartSetPromo(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload setPromoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store.SetPromoCode(ctx, payload.Code)
		responses.WriteSuccess(w, newCartViewResponse(store))
	}
}

// CartSaveForLater moves an active line into the saved list.
func CartSaveForLater(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store.MoveToSaveForLater(ctx, chi.URLParam(r, "itemId"))
		responses.WriteSuccess(w, newCartViewResponse(store))
	}
}

// CartRestore moves a saved line back into the active cart.
func CartRestore(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store.MoveToCart(ctx, chi.URLParam(r, "itemId"))
		responses.WriteSuccess(w, newCartViewResponse(store))
	}
}

// CartToggle flips the drawer visibility flag. The flag is session-only and
// never snapshotted, so each request starts closed.
func CartToggle(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"is_open": store.ToggleCart()})
	}
}
