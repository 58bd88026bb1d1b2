package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is the canonical sweet shape shared by every data source and the
// HTTP surface.
type Product struct {
	ID                 uint             `json:"id"`
	Name               string           `json:"name"`
	Category           string           `json:"category"`
	PricePerKg         decimal.Decimal  `json:"price_per_kg"`
	OriginalPricePerKg *decimal.Decimal `json:"original_price_per_kg,omitempty"`
	Description        string           `json:"description"`
	Stock              int              `json:"stock"`
	Featured           bool             `json:"featured"`
	Rating             *decimal.Decimal `json:"rating,omitempty"`
	Reviews            int              `json:"reviews"`
	Ingredients        []string         `json:"ingredients,omitempty"`
	Weight             string           `json:"weight,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// DiscountPercent returns the rounded percentage off the original price, or
// zero when there is no higher original price.
func (p Product) DiscountPercent() int64 {
	if p.OriginalPricePerKg == nil || !p.OriginalPricePerKg.IsPositive() {
		return 0
	}
	orig := *p.OriginalPricePerKg
	if orig.LessThanOrEqual(p.PricePerKg) {
		return 0
	}
	return orig.Sub(p.PricePerKg).Div(orig).Mul(hundred).Round(0).IntPart()
}

// InStock reports whether any stock remains.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Category is a storefront grouping. ID is a stable slug; "all" is reserved
// for the synthetic no-filter entry.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AllCategoryID marks the synthetic "every category" option.
const AllCategoryID = "all"

// DefaultCategories is the option list shown when categories cannot be loaded.
func DefaultCategories() []Category {
	return []Category{
		{ID: AllCategoryID, Name: "All Categories"},
		{ID: "indian", Name: "Indian Sweets"},
		{ID: "chocolates", Name: "Chocolates"},
		{ID: "cupcakes", Name: "Cupcakes"},
		{ID: "gummies", Name: "Gummies"},
		{ID: "candies", Name: "Candies"},
	}
}

func cloneProducts(in []Product) []Product {
	if in == nil {
		return []Product{}
	}
	out := make([]Product, len(in))
	copy(out, in)
	return out
}
