package catalog

import (
	"context"
	"testing"

	pkgerrors "github.com/jordanveras/threadline-backend/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return conn
}

func newSeededService(t *testing.T) Service {
	t.Helper()

	repo := NewRepository(openTestDB(t))
	require.NoError(t, repo.AutoMigrate())
	require.NoError(t, SeedIfEmpty(context.Background(), repo, nil))

	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc
}

func TestGetProduct(t *testing.T) {
	svc := newSeededService(t)

	product, err := svc.GetProduct(context.Background(), "mens-sneakers")
	require.NoError(t, err)
	require.Equal(t, "Classic Sneakers", product.Name)
	require.Equal(t, 5, product.MaxQuantity)
	require.Equal(t, "79.99", product.Price.StringFixed(2))
	require.Equal(t, "https://picsum.photos/seed/mens-shoes1/800/800", product.FeaturedImage())
}

func TestGetProductNotFound(t *testing.T) {
	svc := newSeededService(t)

	_, err := svc.GetProduct(context.Background(), "discontinued-cape")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetProductRequiresID(t *testing.T) {
	svc := newSeededService(t)

	_, err := svc.GetProduct(context.Background(), "  ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListProductsByCategory(t *testing.T) {
	svc := newSeededService(t)

	all, err := svc.ListProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 6)

	women, err := svc.ListProducts(context.Background(), "women-clothing")
	require.NoError(t, err)
	require.Len(t, women, 1)
	require.Equal(t, "womens-summer-dress", women[0].ID)
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	require.NoError(t, repo.AutoMigrate())

	require.NoError(t, SeedIfEmpty(context.Background(), repo, nil))
	require.NoError(t, SeedIfEmpty(context.Background(), repo, nil))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 6, count)
}
