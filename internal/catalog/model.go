package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/sweetshop-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/sweetshop-backend/pkg/db/types"
)

// FromModel maps a persisted sweet onto the canonical Product.
func FromModel(m models.Sweet) Product {
	p := Product{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		PricePerKg:  m.PricePerKg,
		Description: m.Description,
		Stock:       m.Stock,
		Featured:    m.Featured,
		Reviews:     m.Reviews,
		Weight:      m.Weight,
	}
	if m.OriginalPricePerKg.Valid {
		v := m.OriginalPricePerKg.Decimal
		p.OriginalPricePerKg = &v
	}
	if m.Rating.Valid {
		v := m.Rating.Decimal
		p.Rating = &v
	}
	if len(m.Ingredients) > 0 {
		p.Ingredients = append([]string(nil), m.Ingredients...)
	}
	return p
}

// ToModel maps a Product onto a row. Timestamps are left to gorm.
func ToModel(p Product) models.Sweet {
	m := models.Sweet{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		PricePerKg:  p.PricePerKg,
		Description: p.Description,
		Stock:       p.Stock,
		Featured:    p.Featured,
		Reviews:     p.Reviews,
		Ingredients: dbtypes.StringList(p.Ingredients),
		Weight:      p.Weight,
	}
	if p.OriginalPricePerKg != nil {
		m.OriginalPricePerKg = decimal.NewNullDecimal(*p.OriginalPricePerKg)
	}
	if p.Rating != nil {
		m.Rating = decimal.NewNullDecimal(*p.Rating)
	}
	return m
}
