package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem is a shop supply (detergent, plastic bags, ...) tracked
// independently of orders. PhotoURL points at a file stored by the server.
type InventoryItem struct {
	ID       string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Stock    int     `gorm:"default:0" json:"stock"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	OwnerID  string  `gorm:"type:uuid;not null;index" json:"ownerId"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory"
}
