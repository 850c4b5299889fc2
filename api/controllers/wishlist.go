package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jordanveras/threadline-backend/api/middleware"
	"github.com/jordanveras/threadline-backend/api/responses"
	"github.com/jordanveras/threadline-backend/api/validators"
	"github.com/jordanveras/threadline-backend/internal/catalog"
	"github.com/jordanveras/threadline-backend/internal/wishlist"
	pkgerrors "github.com/jordanveras/threadline-backend/pkg/errors"
	"github.com/jordanveras/threadline-backend/pkg/localstore"
	"github.com/jordanveras/threadline-backend/pkg/logger"
	"github.com/jordanveras/threadline-backend/pkg/metrics"
)

// WishlistDeps bundles everything the wishlist endpoints need.
type WishlistDeps struct {
	Storage localstore.Storage
	Key     string
	Catalog catalog.Service
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

func (d WishlistDeps) openStore(ctx context.Context) (*wishlist.Store, error) {
	sessionID := middleware.SessionID(ctx)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return wishlist.NewStore(ctx, wishlist.StoreParams{
		Storage: d.Storage,
		Key:     d.Key + ":" + sessionID,
		Logger:  d.Logger,
		Metrics: d.Metrics,
	})
}

// WishlistFetch returns the session's favorited products.
func WishlistFetch(deps WishlistDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := deps.openStore(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": store.Items()})
	}
}

type addWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistAdd favorites a product. Adding a product that is already favorited
// is a no-op.
func WishlistAdd(deps WishlistDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload addWishlistItemRequest
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

		store.AddItem(ctx, *product)
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"items": store.Items()})
	}
}

// WishlistRemove unfavorites a product; absent ids are a no-op.
func WishlistRemove(deps WishlistDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		store.RemoveItem(ctx, chi.URLParam(r, "productId"))
		responses.WriteSuccess(w, map[string]any{"items": store.Items()})
	}
}

// WishlistContains reports whether a product is favorited.
func WishlistContains(deps WishlistDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		store, err := deps.openStore(ctx)
		if err != nil {
			responses.WriteError(ctx, deps.Logger, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"in_wishlist": store.IsInWishlist(chi.URLParam(r, "productId"))})
	}
}
