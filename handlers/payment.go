package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"pos-order-api/config"
	"pos-order-api/models"
	"pos-order-api/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	OrderID   uint                 `json:"order_id"`
	Method    models.PaymentMethod `json:"method" binding:"required,oneof=cash card upi"`
	Status    models.PaymentStatus `json:"status" binding:"required,oneof=completed refunded pending"`
	AmountDue decimal.Decimal      `json:"amount_due"`
	TotalPaid decimal.Decimal      `json:"total_paid"`
	Tips      decimal.Decimal      `json:"tips"`
	Discount  decimal.Decimal      `json:"discount"`
}

func (r *PaymentRequest) validateAmounts() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"amount_due", r.AmountDue},
		{"total_paid", r.TotalPaid},
		{"tips", r.Tips},
		{"discount", r.Discount},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", f.name)
		}
	}
	return nil
}

func createPayment(c *gin.Context, orderID uint, req PaymentRequest) {
	if err := req.validateAmounts(); err != nil {
		response.Error(c, http.StatusBadRequest, "Payment creation failed", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		response.Error(c, http.StatusBadRequest, "Payment creation failed", "Order does not exist.")
		return
	}

	payment := models.Payment{
		OrderID:   order.ID,
		Method:    req.Method,
		Status:    req.Status,
		AmountDue: req.AmountDue,
		TotalPaid: req.TotalPaid,
		Tips:      req.Tips,
		Discount:  req.Discount,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		slog.Error("payment creation failed", "order_id", order.ID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Payment creation failed", "internal error")
		return
	}

	slog.Info("payment created", "id", payment.ID, "order_id", order.ID, "method", payment.Method)
	response.Success(c, http.StatusCreated, "Payment created successfully", payment)
}

// CreatePayment records a payment against the order named in the body.
// A cached view of that order may omit this payment until it is next
// invalidated or its TTL lapses.
func CreatePayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Payment creation failed", err.Error())
		return
	}
	if req.OrderID == 0 {
		response.Error(c, http.StatusBadRequest, "Payment creation failed", "order_id is required")
		return
	}
	createPayment(c, req.OrderID, req)
}

// CreateOrderPayment records a payment against the order in the path.
func CreateOrderPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, "Order not found", nil)
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Payment creation failed", err.Error())
		return
	}
	createPayment(c, id, req)
}

// ListPayments returns all payments newest-first.
func ListPayments(c *gin.Context) {
	var payments []models.Payment
	paginate(c, config.DB.Order("created_at desc")).Find(&payments)
	response.Success(c, http.StatusOK, "Payments retrieved successfully", payments)
}

// ListOrderPayments returns the payments of one order newest-first.
func ListOrderPayments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, "Order not found", nil)
		return
	}
	var payments []models.Payment
	paginate(c, config.DB.Where("order_id = ?", id).Order("created_at desc")).Find(&payments)
	response.Success(c, http.StatusOK, "Payments retrieved successfully", payments)
}

// GetPayment returns a single payment.
func GetPayment(c *gin.Context) {
	var payment models.Payment
	if err := config.DB.First(&payment, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Payment not found", nil)
		return
	}
	response.Success(c, http.StatusOK, "Payment retrieved successfully", payment)
}

type UpdatePaymentRequest struct {
	Method    *models.PaymentMethod `json:"method" binding:"omitempty,oneof=cash card upi"`
	Status    *models.PaymentStatus `json:"status" binding:"omitempty,oneof=completed refunded pending"`
	Tips      *decimal.Decimal      `json:"tips"`
	Discount  *decimal.Decimal      `json:"discount"`
	TotalPaid *decimal.Decimal      `json:"total_paid"`
	AmountDue *decimal.Decimal      `json:"amount_due"`
}

// UpdatePayment changes a payment's method, status or amounts.
func UpdatePayment(c *gin.Context) {
	var payment models.Payment
	if err := config.DB.First(&payment, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Payment not found", nil)
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Payment update failed", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Method != nil {
		updates["method"] = *req.Method
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	amounts := map[string]*decimal.Decimal{
		"tips":       req.Tips,
		"discount":   req.Discount,
		"total_paid": req.TotalPaid,
		"amount_due": req.AmountDue,
	}
	for column, value := range amounts {
		if value == nil {
			continue
		}
		if value.IsNegative() {
			response.Error(c, http.StatusBadRequest, "Payment update failed", fmt.Sprintf("%s cannot be negative", column))
			return
		}
		updates[column] = *value
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&payment).Updates(updates).Error; err != nil {
			slog.Error("payment update failed", "id", payment.ID, "error", err)
			response.Error(c, http.StatusInternalServerError, "Payment update failed", "internal error")
			return
		}
	}

	response.Success(c, http.StatusOK, "Payment updated successfully", payment)
}

// DeletePayment removes a payment record.
func DeletePayment(c *gin.Context) {
	var payment models.Payment
	if err := config.DB.First(&payment, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Payment not found", nil)
		return
	}
	if err := config.DB.Delete(&payment).Error; err != nil {
		slog.Error("payment deletion failed", "id", payment.ID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Payment deletion failed", "internal error")
		return
	}
	response.Success(c, http.StatusOK, "Payment deleted successfully", nil)
}
