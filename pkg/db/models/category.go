package models

import "time"

// Category is a storefront grouping. Sweets reference it by Name.
type Category struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string { return "categories" }
