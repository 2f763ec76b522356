package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderDate string      `json:"order_date" gorm:"not null"`
	Status    OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	Items     []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments  []Payment   `json:"payments,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TotalAmount is the merchandise total: the sum of line totals over the
// current order items. Recomputed on every call, never stored. Payments
// (tips, discounts) do not feed into it.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].TotalPrice())
	}
	return total
}

type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ItemID    uint            `json:"item_id" gorm:"not null;index"`
	Item      *Item           `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity" gorm:"not null;default:1"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"` // snapshot price at order time
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TotalPrice derives the line total from the frozen unit price. The snapshot
// is never re-read from the live item, so later menu price changes leave
// existing orders untouched.
func (oi *OrderItem) TotalPrice() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
