package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"pos-order-api/cache"
	"pos-order-api/config"
	"pos-order-api/models"
	"pos-order-api/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	MenuGroupID uint   `json:"menu_group_id" binding:"required"`
}

// CreateCategory adds a category under a menu group. Names are unique within
// their group.
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Category creation failed", err.Error())
		return
	}

	var group models.MenuGroup
	if err := config.DB.First(&group, req.MenuGroupID).Error; err != nil {
		response.Error(c, http.StatusBadRequest, "Category creation failed", "Invalid menu_group_id — Menu group does not exist.")
		return
	}

	var count int64
	config.DB.Model(&models.Category{}).
		Where("name = ? AND menu_group_id = ?", req.Name, req.MenuGroupID).
		Count(&count)
	if count > 0 {
		response.Error(c, http.StatusBadRequest, "Category creation failed", "Category already exists in this menu group.")
		return
	}

	category := models.Category{Name: req.Name, MenuGroupID: req.MenuGroupID}
	if err := config.DB.Create(&category).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Category creation failed", "could not persist category")
		return
	}
	config.DB.Preload("MenuGroup").First(&category, category.ID)

	config.Cache.Delete(cache.ItemListKey)
	slog.Info("category created", "id", category.ID, "name", category.Name)
	response.Success(c, http.StatusCreated, "Category created successfully", category)
}

// ListCategories returns all categories with their menu group.
func ListCategories(c *gin.Context) {
	var categories []models.Category
	paginate(c, config.DB.Preload("MenuGroup").Order("id")).Find(&categories)
	response.Success(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// GetCategory returns a single category.
func GetCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.Preload("MenuGroup").First(&category, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Category not found", nil)
		return
	}
	response.Success(c, http.StatusOK, "Category retrieved successfully", category)
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	MenuGroupID *uint   `json:"menu_group_id"`
}

// UpdateCategory renames or re-parents a category and invalidates the item
// listing, which nests category names.
func UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Category not found", nil)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Category update failed", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.MenuGroupID != nil {
		var group models.MenuGroup
		if err := config.DB.First(&group, *req.MenuGroupID).Error; err != nil {
			response.Error(c, http.StatusBadRequest, "Category update failed", "Invalid menu_group_id — Menu group does not exist.")
			return
		}
		updates["menu_group_id"] = *req.MenuGroupID
	}
	if req.Name != nil {
		groupID := category.MenuGroupID
		if req.MenuGroupID != nil {
			groupID = *req.MenuGroupID
		}
		var count int64
		config.DB.Model(&models.Category{}).
			Where("name = ? AND menu_group_id = ? AND id <> ?", *req.Name, groupID, category.ID).
			Count(&count)
		if count > 0 {
			response.Error(c, http.StatusBadRequest, "Category update failed", "Category already exists in this menu group.")
			return
		}
		updates["name"] = *req.Name
	}

	if len(updates) > 0 {
		config.DB.Model(&category).Updates(updates)
	}
	config.DB.Preload("MenuGroup").First(&category, category.ID)

	config.Cache.Delete(cache.ItemListKey)
	slog.Info("category updated", "id", category.ID)
	response.Success(c, http.StatusOK, "Category updated successfully", category)
}

// DeleteCategory removes the category and cascades onto its items, unless one
// of them is still referenced by an order line.
func DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Category not found", nil)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&models.Item{}).Select("id").Where("category_id = ?", category.ID)
		var refs int64
		if err := tx.Model(&models.OrderItem{}).Where("item_id IN (?)", itemIDs).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return models.ErrItemReferenced
		}
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if errors.Is(err, models.ErrItemReferenced) {
		response.Error(c, http.StatusConflict, "Category deletion failed", err.Error())
		return
	}
	if err != nil {
		slog.Error("category deletion failed", "id", category.ID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Category deletion failed", "internal error")
		return
	}

	config.Cache.Delete(cache.ItemListKey)
	slog.Info("category deleted", "id", category.ID)
	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}
