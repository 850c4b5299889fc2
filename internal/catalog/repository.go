package catalog

import (
	"context"

	"gorm.io/gorm"
)

// Repository owns product reads and seeding writes.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates the products table when missing.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Product{})
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns catalog products, optionally filtered by category slug.
func (r *Repository) List(ctx context.Context, category string) ([]Product, error) {
	query := r.db.WithContext(ctx).Order("id")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// InsertAll writes the given products in one batch; used by seeding only.
func (r *Repository) InsertAll(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}
