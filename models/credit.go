// models/credit.go
package models

import "time"

// Status values written by this app. Stored rows may carry anything;
// readers resolve disagreeing signals through service.IsSettled.
const (
	CreditStatusUnpaid  = "unpaid"
	CreditStatusPartial = "partial"
	CreditStatusPaid    = "paid"
)

// Credit is a store-extended balance owed by a customer. Rows are never
// deleted; settling is a state change, not a removal.
type Credit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID *uint     `gorm:"index" json:"customer_id"`
	Customer   *Customer `json:"customer,omitempty"`

	// Snapshots taken at creation. Grouping falls back to these when
	// the customer link is missing.
	CustomerName  string `gorm:"size:180" json:"customer_name"`
	CustomerPhone string `gorm:"size:60" json:"customer_phone"`

	Amount     float64 `gorm:"not null" json:"amount"`
	AmountPaid float64 `gorm:"not null;default:0" json:"amount_paid"`

	Status string     `gorm:"size:20;index;default:unpaid" json:"status"`
	IsPaid bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidAt *time.Time `json:"paid_at"`

	Note        string    `gorm:"size:500" json:"note"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreditPayment is one receipt row per allocation slice of a group
// payment.
type CreditPayment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RefCode  string `gorm:"uniqueIndex;size:40" json:"ref_code"`
	CreditID uint   `gorm:"index;not null" json:"credit_id"`

	Amount     float64   `gorm:"not null" json:"amount"`
	Method     string    `gorm:"size:20;not null" json:"method"` // CASH / BANK
	ReceivedAt time.Time `gorm:"not null" json:"received_at"`

	ReceivedByID uint   `gorm:"index;not null" json:"received_by_id"`
	Note         string `gorm:"size:255" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
