package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a manually entered cost line. Expenses are append-only: the
// report screen creates them and nothing ever updates or deletes one.
type Expense struct {
	ID      string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Amount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Note    string          `gorm:"not null" json:"note"`
	Date    time.Time       `gorm:"not null;index" json:"date"`
	OwnerID string          `gorm:"type:uuid;not null;index" json:"ownerId"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Expense model
func (Expense) TableName() string {
	return "expenses"
}
