package handlers

import (
	"log/slog"
	"net/http"

	"pos-order-api/cache"
	"pos-order-api/config"
	"pos-order-api/models"
	"pos-order-api/response"

	"github.com/gin-gonic/gin"
)

type ItemRequest struct {
	Name       string            `json:"name" binding:"required,max=100"`
	CategoryID uint              `json:"category_id" binding:"required"`
	Pricing    models.PricingMap `json:"pricing" binding:"required"`
}

// CreateItem adds a menu item with its size/price map.
func CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Item creation failed", err.Error())
		return
	}
	if err := req.Pricing.Validate(); err != nil {
		response.Error(c, http.StatusBadRequest, "Item creation failed", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		response.Error(c, http.StatusBadRequest, "Item creation failed", "Invalid category_id — Category does not exist.")
		return
	}

	item := models.Item{Name: req.Name, CategoryID: req.CategoryID, Pricing: req.Pricing}
	if err := config.DB.Create(&item).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Item creation failed", "could not persist item")
		return
	}
	config.DB.Preload("Category.MenuGroup").First(&item, item.ID)

	config.Cache.Delete(cache.ItemListKey)
	slog.Info("item created", "id", item.ID, "name", item.Name)
	response.Success(c, http.StatusCreated, "Item created successfully", item)
}

// ListItems serves the full item listing through a single aggregate cache
// entry. The listing nests category and menu group, so any write anywhere in
// the menu hierarchy has already invalidated this key.
func ListItems(c *gin.Context) {
	if cached, ok := config.Cache.Get(cache.ItemListKey); ok {
		slog.Debug("cache hit", "key", cache.ItemListKey)
		response.Success(c, http.StatusOK, "Items retrieved from cache", cached)
		return
	}

	var items []models.Item
	if err := config.DB.Preload("Category.MenuGroup").Order("id").Find(&items).Error; err != nil {
		slog.Error("item listing failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "Item listing failed", "internal error")
		return
	}

	config.Cache.Set(cache.ItemListKey, items, cache.ItemListTTL)
	slog.Debug("cache miss", "key", cache.ItemListKey)
	response.Success(c, http.StatusOK, "Items retrieved successfully", items)
}

// GetItem returns a single item.
func GetItem(c *gin.Context) {
	var item models.Item
	if err := config.DB.Preload("Category.MenuGroup").First(&item, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Item not found", nil)
		return
	}
	response.Success(c, http.StatusOK, "Item retrieved successfully", item)
}

type UpdateItemRequest struct {
	Name       *string            `json:"name" binding:"omitempty,max=100"`
	CategoryID *uint              `json:"category_id"`
	Pricing    *models.PricingMap `json:"pricing"`
}

// UpdateItem changes an item. A pricing change only affects orders created
// after this point; existing order lines keep their snapshot price.
func UpdateItem(c *gin.Context) {
	var item models.Item
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Item not found", nil)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Item update failed", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			response.Error(c, http.StatusBadRequest, "Item update failed", "Invalid category_id — Category does not exist.")
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Pricing != nil {
		if err := req.Pricing.Validate(); err != nil {
			response.Error(c, http.StatusBadRequest, "Item update failed", err.Error())
			return
		}
		updates["pricing"] = *req.Pricing
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
			slog.Error("item update failed", "id", item.ID, "error", err)
			response.Error(c, http.StatusInternalServerError, "Item update failed", "internal error")
			return
		}
	}
	config.DB.Preload("Category.MenuGroup").First(&item, item.ID)

	config.Cache.Delete(cache.ItemListKey)
	slog.Info("item updated", "id", item.ID)
	response.Success(c, http.StatusOK, "Item updated successfully", item)
}

// DeleteItem removes a menu item. Deletion is blocked while any order line
// references the item; historical orders keep their lines intact.
func DeleteItem(c *gin.Context) {
	var item models.Item
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Item not found", nil)
		return
	}

	var refs int64
	config.DB.Model(&models.OrderItem{}).Where("item_id = ?", item.ID).Count(&refs)
	if refs > 0 {
		response.Error(c, http.StatusConflict, "Item deletion failed", models.ErrItemReferenced.Error())
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		slog.Error("item deletion failed", "id", item.ID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Item deletion failed", "internal error")
		return
	}

	config.Cache.Delete(cache.ItemListKey)
	slog.Info("item deleted", "id", item.ID)
	response.Success(c, http.StatusOK, "Item deleted successfully", nil)
}
