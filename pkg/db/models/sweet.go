package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/angelmondragon/sweetshop-backend/pkg/db/types"
)

// Sweet is a catalog row. Category holds the category name, not a foreign key.
type Sweet struct {
	ID                 uint                `gorm:"column:id;primaryKey;autoIncrement"`
	Name               string              `gorm:"column:name;not null;uniqueIndex:idx_sweets_name_category"`
	Category           string              `gorm:"column:category;not null;index;uniqueIndex:idx_sweets_name_category"`
	PricePerKg         decimal.Decimal     `gorm:"column:price_per_kg;type:numeric(10,2);not null"`
	OriginalPricePerKg decimal.NullDecimal `gorm:"column:original_price_per_kg;type:numeric(10,2)"`
	Description        string              `gorm:"column:description;not null;default:''"`
	Stock              int                 `gorm:"column:stock;not null;default:0"`
	Featured           bool                `gorm:"column:featured;not null;default:false"`
	Rating             decimal.NullDecimal `gorm:"column:rating;type:numeric(2,1)"`
	Reviews            int                 `gorm:"column:reviews;not null;default:0"`
	Ingredients        dbtypes.StringList  `gorm:"column:ingredients;type:text;not null;default:'[]'"`
	Weight             string              `gorm:"column:weight;not null;default:''"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Sweet) TableName() string { return "sweets" }
