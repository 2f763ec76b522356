package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pos-order-api/cache"
	"pos-order-api/config"
	"pos-order-api/models"
	"pos-order-api/orders"
	"pos-order-api/pricing"
	"pos-order-api/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	OrderDate string             `json:"order_date" binding:"required,datetime=2006-01-02"`
	Status    models.OrderStatus `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	Items     []orders.Line      `json:"items"`
}

// orderView is the rendered order shape: line items flattened with the item
// name, plus the derived total.
type orderView struct {
	ID          uint               `json:"id"`
	OrderDate   string             `json:"order_date"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []orderItemView    `json:"items"`
	Payments    []models.Payment   `json:"payments"`
	CreatedAt   time.Time          `json:"created_at"`
}

type orderItemView struct {
	ID         uint            `json:"id"`
	ItemID     uint            `json:"item_id"`
	Name       string          `json:"name"`
	Size       string          `json:"size"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func makeOrderView(o *models.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for i := range o.Items {
		line := &o.Items[i]
		name := ""
		if line.Item != nil {
			name = line.Item.Name
		}
		items = append(items, orderItemView{
			ID:         line.ID,
			ItemID:     line.ItemID,
			Name:       name,
			Size:       line.Size,
			Quantity:   line.Quantity,
			Price:      line.Price,
			TotalPrice: line.TotalPrice(),
		})
	}
	payments := o.Payments
	if payments == nil {
		payments = []models.Payment{}
	}
	return orderView{
		ID:          o.ID,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		TotalAmount: o.TotalAmount(),
		Items:       items,
		Payments:    payments,
		CreatedAt:   o.CreatedAt,
	}
}

// CreateOrder builds the order aggregate: every line is validated before
// anything is persisted, and the whole submission succeeds or fails as one.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Order creation failed", err.Error())
		return
	}
	status := req.Status
	if status == "" {
		status = models.OrderPending
	}

	order, err := orders.Build(config.DB, req.OrderDate, status, req.Items)
	if err != nil {
		code, detail := mapBuildError(err)
		response.Error(c, code, "Order creation failed", detail)
		return
	}
	response.Success(c, http.StatusCreated, "Order created successfully", makeOrderView(order))
}

func mapBuildError(err error) (int, interface{}) {
	var sizeErr *pricing.InvalidSizeError
	var notFound *orders.ItemNotFoundError
	var badQty *orders.InvalidQuantityError
	switch {
	case errors.Is(err, orders.ErrOrderMustHaveItems):
		return http.StatusBadRequest, "Order must contain at least one item."
	case errors.As(err, &sizeErr), errors.As(err, &notFound), errors.As(err, &badQty):
		return http.StatusBadRequest, err.Error()
	default:
		slog.Error("order creation failed", "error", err)
		return http.StatusInternalServerError, "internal error"
	}
}

// ListOrders returns orders newest-first with nested lines and payments.
func ListOrders(c *gin.Context) {
	var all []models.Order
	paginate(c, config.DB.Preload("Items.Item").Preload("Payments").Order("created_at desc")).Find(&all)

	views := make([]orderView, 0, len(all))
	for i := range all {
		views = append(views, makeOrderView(&all[i]))
	}
	response.Success(c, http.StatusOK, "Orders retrieved successfully", views)
}

// GetOrder serves a single order through the read-through cache: hit serves
// the cached view, miss loads from the database and populates the entry.
func GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, "Order not found", nil)
		return
	}

	key := cache.OrderKey(id)
	if cached, found := config.Cache.Get(key); found {
		slog.Debug("cache hit", "key", key)
		response.Success(c, http.StatusOK, "Order retrieved from cache", cached)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items.Item").Preload("Payments").First(&order, id).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Order not found", nil)
		return
	}

	view := makeOrderView(&order)
	config.Cache.Set(key, view, cache.OrderTTL)
	slog.Debug("cache miss", "key", key)
	response.Success(c, http.StatusOK, "Order retrieved successfully", view)
}

type UpdateOrderRequest struct {
	OrderDate *string             `json:"order_date" binding:"omitempty,datetime=2006-01-02"`
	Status    *models.OrderStatus `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
}

// UpdateOrder changes order-level fields (date, status). Line items are
// frozen at creation and not editable here. The order's cache entry is
// invalidated so the next read sees the update.
func UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, "Order not found", nil)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, id).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Order not found", nil)
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Order update failed", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.OrderDate != nil {
		updates["order_date"] = *req.OrderDate
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
			slog.Error("order update failed", "id", order.ID, "error", err)
			response.Error(c, http.StatusInternalServerError, "Order update failed", "internal error")
			return
		}
	}

	config.Cache.Delete(cache.OrderKey(id))
	slog.Info("order updated, cache invalidated", "order_id", id)

	config.DB.Preload("Items.Item").Preload("Payments").First(&order, id)
	response.Success(c, http.StatusOK, "Order updated successfully", makeOrderView(&order))
}

// DeleteOrder removes the order with its lines and payments, and drops the
// order's cache entry.
func DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, "Order not found", nil)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, id).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Order not found", nil)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		slog.Error("order deletion failed", "id", order.ID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Order deletion failed", "internal error")
		return
	}

	config.Cache.Delete(cache.OrderKey(id))
	slog.Info("order deleted, cache invalidated", "order_id", id)
	response.Success(c, http.StatusOK, "Order deleted successfully", nil)
}
