package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog record the storefront sells. Slug ids double as the
// cart line-item identity.
type Product struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Images      []string        `gorm:"serializer:json" json:"images"`
	Category    string          `gorm:"index" json:"category"`
	Sizes       []string        `gorm:"serializer:json" json:"sizes"`
	Colors      []string        `gorm:"serializer:json" json:"colors"`
	Brand       string          `json:"brand"`
	MaxQuantity int             `json:"max_quantity"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
}

func (Product) TableName() string {
	return "products"
}

// FeaturedImage returns the primary image for add-time line item copies.
func (p Product) FeaturedImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
