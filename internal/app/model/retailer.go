package model

import (
	"time"
)

// Retailer is a tracked business in the directory.
type Retailer struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Location  string    `gorm:"not null" json:"location"`
	Category  string    `gorm:"not null;index" json:"category"`
	Contact   string    `gorm:"type:text" json:"contact"`
	Note      string    `gorm:"type:text" json:"note"`
	Pros      string    `gorm:"type:text" json:"pros"`
	Cons      string    `gorm:"type:text" json:"cons"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Retailer) TableName() string {
	return "retailers"
}

// RetailerInput is the payload accepted when creating a retailer.
// ProsCons carries both lists in one field, separated by "||".
type RetailerInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Category string `json:"category"`
	Contact  string `json:"contact"`
	Note     string `json:"note"`
	ProsCons string `json:"prosCons"`
}
