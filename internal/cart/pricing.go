package cart

import (
	"github.com/shopspring/decimal"
)

// PromoWelcome10 is the only promo code the storefront honors. Matching is
// exact and case-sensitive.
const PromoWelcome10 = "WELCOME10"

var (
	taxRate             = decimal.NewFromFloat(0.08)
	baseShipping        = decimal.NewFromInt(10)
	freeShippingAbove   = decimal.NewFromInt(100)
	welcomeDiscountRate = decimal.NewFromFloat(0.10)
)

// Totals carries the derived pricing for the active cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax, shipping, promo discount and grand
// total from the given line items. It is a pure function; the store calls it
// on every read instead of caching.
func ComputeTotals(items []LineItem, promoCode *string) Totals {
	subtotal := Subtotal(items)
	tax := subtotal.Mul(taxRate)
	shipping := shippingFor(subtotal)
	discount := discountFor(subtotal, promoCode)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal.Add(tax).Add(shipping).Sub(discount),
	}
}

// Subtotal sums price*quantity over the given items.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// shippingFor is free strictly above the threshold; a subtotal of exactly 100
// still pays the base rate.
func shippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingAbove) {
		return decimal.Zero
	}
	return baseShipping
}

func discountFor(subtotal decimal.Decimal, promoCode *string) decimal.Decimal {
	if promoCode != nil && *promoCode == PromoWelcome10 {
		return subtotal.Mul(welcomeDiscountRate)
	}
	return decimal.Zero
}
