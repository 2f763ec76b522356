package models_test

import (
	"testing"

	"pos-order-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderItem_TotalPrice(t *testing.T) {
	line := models.OrderItem{
		Price:    decimal.NewFromFloat(4.0),
		Quantity: 2,
	}
	assert.True(t, line.TotalPrice().Equal(decimal.NewFromFloat(8.0)), "got %s", line.TotalPrice())
}

func TestOrder_TotalAmount(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Price: decimal.NewFromFloat(2.5), Quantity: 2},
			{Price: decimal.NewFromFloat(4.0), Quantity: 1},
		},
	}
	assert.True(t, order.TotalAmount().Equal(decimal.NewFromFloat(9.0)), "got %s", order.TotalAmount())
}

func TestOrder_TotalAmountRecomputedPerCall(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{{Price: decimal.NewFromFloat(2.5), Quantity: 2}},
	}
	first := order.TotalAmount()

	order.Items = append(order.Items, models.OrderItem{Price: decimal.NewFromFloat(4.0), Quantity: 1})
	second := order.TotalAmount()

	assert.True(t, first.Equal(decimal.NewFromFloat(5.0)))
	assert.True(t, second.Equal(decimal.NewFromFloat(9.0)))
}

func TestOrder_TotalAmountEmptyOrderIsZero(t *testing.T) {
	order := models.Order{}
	assert.True(t, order.TotalAmount().IsZero())
}
