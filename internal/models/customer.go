package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Customer is a directory entry for one laundry customer. TotalOrders is
// incremented on every checkout and never decremented, so it reflects
// lifetime order volume rather than currently existing orders.
type Customer struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Phone       string `gorm:"not null;index" json:"phone"`
	TotalOrders int    `gorm:"default:0" json:"totalOrders"`
	OwnerID     string `gorm:"type:uuid;not null;index" json:"ownerId"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Customer model
func (Customer) TableName() string {
	return "customers"
}

// MatchesSearch reports whether the customer matches a free-text search
// over name (case-insensitive) or phone substring.
func (c *Customer) MatchesSearch(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) ||
		strings.Contains(c.Phone, q)
}

// FilterCustomersByPhone returns the customers whose phone number starts
// with the given prefix. Used by the order form autocomplete; a linear
// scan is fine at single-shop scale.
func FilterCustomersByPhone(customers []Customer, prefix string) []Customer {
	if prefix == "" {
		return customers
	}
	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if strings.HasPrefix(c.Phone, prefix) {
			out = append(out, c)
		}
	}
	return out
}
