package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
	MethodUPI  PaymentMethod = "upi"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentPending   PaymentStatus = "pending"
)

// Payment records money against an order. Several payments may reference the
// same order (split payments); their lifecycle is independent of the order's
// line items.
type Payment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	Method    PaymentMethod   `json:"method" gorm:"not null;index"`
	Status    PaymentStatus   `json:"status" gorm:"not null"`
	AmountDue decimal.Decimal `json:"amount_due" gorm:"type:decimal(10,2);not null"`
	TotalPaid decimal.Decimal `json:"total_paid" gorm:"type:decimal(10,2);not null"`
	Tips      decimal.Decimal `json:"tips" gorm:"type:decimal(10,2);default:0"`
	Discount  decimal.Decimal `json:"discount" gorm:"type:decimal(10,2);default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
