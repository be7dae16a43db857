package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentMethod defines how (or whether) an order has been paid
type PaymentMethod string

const (
	PaymentUnpaid   PaymentMethod = "unpaid"
	PaymentCash     PaymentMethod = "cash"
	PaymentQris     PaymentMethod = "qris"
	PaymentTransfer PaymentMethod = "transfer"
)

// Valid reports whether p is a known payment method
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentCash, PaymentQris, PaymentTransfer:
		return true
	}
	return false
}

// Paid reports whether the order has been settled by any method
func (p PaymentMethod) Paid() bool {
	return p == PaymentCash || p == PaymentQris || p == PaymentTransfer
}

// DiscountType selects how the discount input is interpreted at checkout
type DiscountType string

const (
	DiscountFlat    DiscountType = "flat"    // absolute amount in rupiah
	DiscountPercent DiscountType = "percent" // percentage of the subtotal
)

// OrderItem is one service line on an order: weight (kg or pcs) times
// unit price, with an optional free-text note.
type OrderItem struct {
	Service string          `json:"service"`
	Weight  decimal.Decimal `json:"weight"`
	Price   decimal.Decimal `json:"price"`
	Note    string          `json:"note,omitempty"`
}

// LineTotal returns weight × unit price for this item
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Weight.Mul(i.Price)
}

// Order is the immutable ledger entry written once at checkout. Only the
// Status and Payment fields are touched afterwards, mirrored from the
// dashboard so the order keeps its final state after the Job is deleted.
type Order struct {
	ID           uint                            `gorm:"primaryKey" json:"id"`
	OrderNumber  int64                           `gorm:"not null;uniqueIndex:idx_orders_owner_number" json:"orderNumber"`
	OwnerID      string                          `gorm:"type:uuid;not null;uniqueIndex:idx_orders_owner_number;index" json:"ownerId"`
	CustomerID   string                          `gorm:"type:uuid;not null;index" json:"customerId"`
	CustomerName string                          `json:"customerName"`
	Phone        string                          `json:"phone"`
	InDate       *time.Time                      `json:"inDate,omitempty"`
	OutDate      *time.Time                      `json:"outDate,omitempty"`
	Items        datatypes.JSONSlice[OrderItem]  `json:"items"`
	Subtotal     decimal.Decimal                 `gorm:"type:numeric(14,2)" json:"subtotal"`
	Discount     decimal.Decimal                 `gorm:"type:numeric(14,2)" json:"discount"`
	Total        decimal.Decimal                 `gorm:"type:numeric(14,2)" json:"total"`
	Payment      PaymentMethod                   `gorm:"type:varchar(20);default:'unpaid';index" json:"payment"`
	Status       JobStatus                       `gorm:"type:varchar(20);default:'processing'" json:"status"`
	CreatedAt    time.Time                       `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time                       `json:"updatedAt"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// ComputeTotals derives subtotal, discount amount and final total from the
// order lines. Subtotal is Σ(weight × price). The discount is either a flat
// amount or a percentage of the subtotal, and is clamped so the final total
// is never negative (a 150% discount yields a free order, not a refund).
func ComputeTotals(items []OrderItem, discountType DiscountType, discountValue decimal.Decimal) (subtotal, discount, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	switch discountType {
	case DiscountPercent:
		discount = subtotal.Mul(discountValue).Div(decimal.NewFromInt(100))
	default:
		discount = discountValue
	}

	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	total = subtotal.Sub(discount)
	return subtotal, discount, total
}
