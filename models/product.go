// models/product.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type SellType string

const (
	SellByWeight SellType = "weight" // quantities in grams, price per kg
	SellByUnit   SellType = "unit"   // quantities in pieces, price per unit
)

type Product struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:180;not null;index" json:"name"`

	CategoryID       uint            `gorm:"not null;index" json:"category_id"`
	Category         Category        `json:"category"`
	SubcategoryID    *uint           `gorm:"index" json:"subcategory_id"`
	Subcategory      *Subcategory    `json:"subcategory,omitempty"`
	SubSubcategoryID *uint           `gorm:"index" json:"sub_subcategory_id"`
	SubSubcategory   *SubSubcategory `json:"sub_subcategory,omitempty"`

	Description string `gorm:"size:500" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	Variants []ProductVariant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductVariant is a sellable configuration of a product (pack size,
// grade), priced and stocked independently.
type ProductVariant struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Label     string `gorm:"size:120;not null" json:"label"`

	SellType SellType `gorm:"size:10;not null" json:"sell_type"`
	Price    float64  `gorm:"not null" json:"price"` // per kg for weight, per unit otherwise

	// Grams for weight variants, units otherwise. Zero disables the
	// low-stock alert.
	ReorderLevel float64 `gorm:"not null;default:0" json:"reorder_level"`

	Attributes datatypes.JSON `json:"attributes,omitempty"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`

	Images []VariantImage `gorm:"foreignKey:VariantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VariantImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VariantID    uint      `gorm:"not null;index" json:"variant_id"`
	URL          string    `gorm:"size:255;not null" json:"url"`
	ObjectName   string    `gorm:"size:120" json:"object_name"`
	UploadedByID uint      `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}
