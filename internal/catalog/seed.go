package catalog

import (
	"context"

	"github.com/jordanveras/threadline-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// SeedIfEmpty populates the catalog with the storefront fixture products when
// the table has no rows. Intended for dev and demo environments.
func SeedIfEmpty(ctx context.Context, repo *Repository, logg *logger.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := repo.InsertAll(ctx, seedProducts()); err != nil {
		return err
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "products", len(seedProducts())), "catalog seeded")
	}
	return nil
}

func seedProducts() []Product {
	return []Product{
		{
			ID:          "mens-casual-shirt",
			Name:        "Casual Linen Shirt",
			Description: "Comfortable and stylish linen shirt perfect for casual wear.",
			Price:       decimal.NewFromFloat(49.99),
			Images:      []string{"https://picsum.photos/seed/mens-shirt1/800/800"},
			Category:    "men-clothing",
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"White", "Blue", "Beige"},
			Brand:       "Fashion Brand",
			MaxQuantity: 10,
			Rating:      4.5,
			Reviews:     128,
		},
		{
			ID:          "mens-sneakers",
			Name:        "Classic Sneakers",
			Description: "Versatile and comfortable sneakers for everyday wear.",
			Price:       decimal.NewFromFloat(79.99),
			Images:      []string{"https://picsum.photos/seed/mens-shoes1/800/800"},
			Category:    "men-shoes",
			Sizes:       []string{"7", "8", "9", "10", "11", "12"},
			Colors:      []string{"White", "Black", "Gray"},
			Brand:       "SportFlex",
			MaxQuantity: 5,
			Rating:      4.7,
			Reviews:     95,
		},
		{
			ID:          "womens-summer-dress",
			Name:        "Floral Summer Dress",
			Description: "Light and breezy summer dress with floral print.",
			Price:       decimal.NewFromFloat(69.99),
			Images:      []string{"https://picsum.photos/seed/womens-dress1/800/800"},
			Category:    "women-clothing",
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []string{"Floral", "Navy", "Coral"},
			Brand:       "Style Co",
			MaxQuantity: 8,
			Rating:      4.8,
			Reviews:     156,
		},
		{
			ID:          "womens-handbag",
			Name:        "Leather Tote Bag",
			Description: "Spacious leather tote for work and weekends.",
			Price:       decimal.NewFromFloat(129.99),
			Images:      []string{"https://picsum.photos/seed/womens-bag1/800/800"},
			Category:    "women-accessories",
			Sizes:       []string{},
			Colors:      []string{"Tan", "Black"},
			Brand:       "Luxe Leather",
			MaxQuantity: 3,
			Rating:      4.9,
			Reviews:     82,
		},
		{
			ID:          "kids-tshirt-set",
			Name:        "Kids T-Shirt Set",
			Description: "Soft cotton t-shirt three-pack for kids.",
			Price:       decimal.NewFromFloat(29.99),
			Images:      []string{"https://picsum.photos/seed/kids-tshirt1/800/800"},
			Category:    "kids-boys",
			Sizes:       []string{"4", "6", "8", "10"},
			Colors:      []string{"Mixed"},
			Brand:       "Kids Comfort",
			MaxQuantity: 10,
			Rating:      4.6,
			Reviews:     45,
		},
		{
			ID:          "kids-dress",
			Name:        "Girls Party Dress",
			Description: "Twirl-ready party dress with tulle skirt.",
			Price:       decimal.NewFromFloat(49.99),
			Images:      []string{"https://picsum.photos/seed/kids-dress1/800/800"},
			Category:    "kids-girls",
			Sizes:       []string{"4", "6", "8"},
			Colors:      []string{"Pink", "Lavender"},
			Brand:       "Little Princess",
			MaxQuantity: 5,
			Rating:      4.8,
			Reviews:     67,
		},
	}
}
