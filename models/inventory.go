// models/inventory.go
package models

import "time"

type MovementType string

const (
	MovementRestock    MovementType = "restock"
	MovementSale       MovementType = "sale"
	MovementReturn     MovementType = "return"
	MovementAdjustment MovementType = "adjustment"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementRestock, MovementSale, MovementReturn, MovementAdjustment:
		return true
	}
	return false
}

// InventoryLevel holds one row per variant. The row is mutated only by
// the remote apply_inventory_movement / confirm_order procedures; this
// app reads it.
type InventoryLevel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VariantID uint      `gorm:"uniqueIndex;not null" json:"variant_id"`
	QtyGrams  float64   `gorm:"not null;default:0" json:"qty_grams"`
	QtyUnits  float64   `gorm:"not null;default:0" json:"qty_units"`
	AvgCost   float64   `gorm:"not null;default:0" json:"avg_cost"` // per gram / per unit
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryMovement is a logged stock change. Rows are written by the
// remote procedures; sale movements carry the order id that forms the
// (order_id, variant_id) key of the profit join.
type InventoryMovement struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	RefCode   string          `gorm:"index;size:40" json:"ref_code"`
	VariantID uint            `gorm:"not null;index" json:"variant_id"`
	Variant   *ProductVariant `json:"variant,omitempty"`

	Type     MovementType `gorm:"size:12;not null;index" json:"type"`
	QtyGrams float64      `gorm:"not null;default:0" json:"qty_grams"`
	QtyUnits float64      `gorm:"not null;default:0" json:"qty_units"`

	CostTotal    float64 `gorm:"not null;default:0" json:"cost_total"` // 0 when cost-free
	SupplierName string  `gorm:"size:180" json:"supplier_name"`
	Note         string  `gorm:"size:255" json:"note"`

	OrderID     *uint     `gorm:"index" json:"order_id"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}
