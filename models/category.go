package models

import "time"

// Three-level product grouping: Category > Subcategory > SubSubcategory.
// Names are unique per parent.

type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"uniqueIndex;size:120;not null" json:"name"`
	Subcategories []Subcategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"subcategories,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Subcategory struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	CategoryID       uint             `gorm:"not null;index;uniqueIndex:uq_subcategory_name" json:"category_id"`
	Name             string           `gorm:"size:120;not null;uniqueIndex:uq_subcategory_name" json:"name"`
	SubSubcategories []SubSubcategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sub_subcategories,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type SubSubcategory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SubcategoryID uint      `gorm:"not null;index;uniqueIndex:uq_subsubcategory_name" json:"subcategory_id"`
	Name          string    `gorm:"size:120;not null;uniqueIndex:uq_subsubcategory_name" json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
