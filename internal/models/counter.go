package models

import "time"

// OrderCounter holds the last order number issued for one owner. The row is
// locked FOR UPDATE inside the checkout transaction, so numbers are unique
// and monotonic even under concurrent submissions from multiple devices.
type OrderCounter struct {
	OwnerID    string    `gorm:"primaryKey;type:uuid" json:"ownerId"`
	LastNumber int64     `gorm:"not null;default:0" json:"lastNumber"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for OrderCounter model
func (OrderCounter) TableName() string {
	return "order_counters"
}
