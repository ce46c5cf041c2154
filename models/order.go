// models/order.go
package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
)

// Order rows are written by the storefront. This app reads them and
// confirms pending ones through the remote confirm_order procedure.
type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OrderCode string `gorm:"uniqueIndex;size:40;not null" json:"order_code"`

	CustomerID   *uint     `gorm:"index" json:"customer_id"`
	Customer     *Customer `json:"customer,omitempty"`
	CustomerName string    `gorm:"size:180" json:"customer_name"`

	Status        OrderStatus `gorm:"size:12;not null;index" json:"status"`
	PaymentMethod string      `gorm:"size:20" json:"payment_method"`
	Total         float64     `gorm:"not null;default:0" json:"total"`
	PlacedAt      time.Time   `gorm:"not null;index" json:"placed_at"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	VariantID uint `gorm:"not null" json:"variant_id"`

	// Snapshots taken when the storefront wrote the line.
	ProductName  string `gorm:"size:180" json:"product_name"`
	VariantLabel string `gorm:"size:120" json:"variant_label"`

	QtyGrams  float64 `gorm:"not null;default:0" json:"qty_grams"`
	QtyUnits  float64 `gorm:"not null;default:0" json:"qty_units"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	LineTotal float64 `gorm:"not null" json:"line_total"`
}
