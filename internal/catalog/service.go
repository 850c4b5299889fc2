package catalog

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/jordanveras/threadline-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes catalog lookups to the cart and wishlist layers.
type Service interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string) ([]Product, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service backed by the product repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: repo}, nil
}

// GetProduct loads a single product and maps missing rows to not-found.
func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// ListProducts returns the catalog, optionally scoped to a category.
func (s *service) ListProducts(ctx context.Context, category string) ([]Product, error) {
	products, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}
