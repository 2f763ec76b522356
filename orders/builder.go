// Package orders builds order aggregates: the order row plus its line items,
// validated and persisted as a single unit.
package orders

import (
	"errors"
	"fmt"
	"log/slog"

	"pos-order-api/models"
	"pos-order-api/pricing"

	"gorm.io/gorm"
)

// ErrOrderMustHaveItems rejects an order submitted with no line items.
var ErrOrderMustHaveItems = errors.New("order must contain at least one item")

// ItemNotFoundError reports a line referencing a menu item that does not exist.
type ItemNotFoundError struct {
	ItemID uint
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d does not exist", e.ItemID)
}

// InvalidQuantityError reports a line with a non-positive quantity.
type InvalidQuantityError struct {
	ItemID   uint
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity for item %d must be greater than 0", e.ItemID)
}

// Line is one requested order line: which item, at which size, how many.
type Line struct {
	ItemID   uint   `json:"item_id"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Build validates every line against the live menu, then persists the order
// and its lines in one transaction. Each line's unit price is resolved once
// via pricing.Resolve and frozen on the line. Validation runs to completion
// before anything is written: a failure on any line means no order and no
// order items exist afterwards.
func Build(db *gorm.DB, orderDate string, status models.OrderStatus, lines []Line) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrOrderMustHaveItems
	}

	orderItems := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		var item models.Item
		if err := db.First(&item, line.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ItemNotFoundError{ItemID: line.ItemID}
			}
			return nil, err
		}
		if line.Quantity <= 0 {
			return nil, &InvalidQuantityError{ItemID: line.ItemID, Quantity: line.Quantity}
		}
		price, err := pricing.Resolve(&item, line.Size)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, models.OrderItem{
			ItemID:   item.ID,
			Size:     line.Size,
			Quantity: line.Quantity,
			Price:    price,
		})
	}

	order := models.Order{
		OrderDate: orderDate,
		Status:    status,
		Items:     orderItems,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, err
	}
	slog.Info("order created", "order_id", order.ID, "lines", len(order.Items))

	if err := db.Preload("Items.Item").Preload("Payments").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
