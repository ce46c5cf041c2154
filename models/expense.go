package models

import "time"

type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Label       string    `gorm:"size:180;not null" json:"label"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:60;index" json:"category"`
	IncurredOn  time.Time `gorm:"not null;index" json:"incurred_on"`
	Note        string    `gorm:"size:255" json:"note"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
