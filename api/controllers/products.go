package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jordanveras/threadline-backend/api/responses"
	"github.com/jordanveras/threadline-backend/internal/catalog"
	pkgerrors "github.com/jordanveras/threadline-backend/pkg/errors"
	"github.com/jordanveras/threadline-backend/pkg/logger"
)

// ProductList serves the catalog, optionally filtered by the category query
// parameter.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// ProductDetail serves a single product by id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		ctx := r.Context()
		productID := chi.URLParam(r, "productId")
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID)
		}

		product, err := svc.GetProduct(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
