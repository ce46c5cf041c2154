package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Name    string `gorm:"size:180;not null" json:"name"`
	Phone   string `gorm:"size:60;index" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	Note    string `gorm:"size:255" json:"note"`
}
