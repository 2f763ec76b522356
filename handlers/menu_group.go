package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"pos-order-api/cache"
	"pos-order-api/config"
	"pos-order-api/models"
	"pos-order-api/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuGroupRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CreateMenuGroup adds a top-level menu group. Names are unique
// case-insensitively across all groups.
func CreateMenuGroup(c *gin.Context) {
	var req MenuGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Menu group creation failed", err.Error())
		return
	}

	var count int64
	config.DB.Model(&models.MenuGroup{}).
		Where("LOWER(name) = ?", strings.ToLower(req.Name)).
		Count(&count)
	if count > 0 {
		response.Error(c, http.StatusBadRequest, "Menu group creation failed", "Menu group already exists.")
		return
	}

	group := models.MenuGroup{Name: req.Name}
	if err := config.DB.Create(&group).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Menu group creation failed", "could not persist menu group")
		return
	}

	config.Cache.Delete(cache.ItemListKey)
	slog.Info("menu group created", "id", group.ID, "name", group.Name)
	response.Success(c, http.StatusCreated, "Menu group created successfully", group)
}

// ListMenuGroups returns all menu groups sorted by name.
func ListMenuGroups(c *gin.Context) {
	var groups []models.MenuGroup
	paginate(c, config.DB.Order("name")).Find(&groups)
	response.Success(c, http.StatusOK, "Menu groups retrieved successfully", groups)
}

// GetMenuGroup returns a single menu group.
func GetMenuGroup(c *gin.Context) {
	var group models.MenuGroup
	if err := config.DB.First(&group, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Menu group not found", nil)
		return
	}
	response.Success(c, http.StatusOK, "Menu group retrieved successfully", group)
}

// UpdateMenuGroup renames a group. The name shows up in the nested item
// listing, so the listing cache is invalidated.
func UpdateMenuGroup(c *gin.Context) {
	var group models.MenuGroup
	if err := config.DB.First(&group, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Menu group not found", nil)
		return
	}

	var req MenuGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Menu group update failed", err.Error())
		return
	}

	var count int64
	config.DB.Model(&models.MenuGroup{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(req.Name), group.ID).
		Count(&count)
	if count > 0 {
		response.Error(c, http.StatusBadRequest, "Menu group update failed", "Menu group already exists.")
		return
	}

	config.DB.Model(&group).Update("name", req.Name)
	config.Cache.Delete(cache.ItemListKey)
	slog.Info("menu group updated", "id", group.ID)
	response.Success(c, http.StatusOK, "Menu group updated successfully", group)
}

// DeleteMenuGroup removes the group and everything under it: its categories
// and their items cascade. The cascade is blocked when any contained item is
// still referenced by an order line.
func DeleteMenuGroup(c *gin.Context) {
	var group models.MenuGroup
	if err := config.DB.First(&group, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Menu group not found", nil)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var categoryIDs []uint
		if err := tx.Model(&models.Category{}).Where("menu_group_id = ?", group.ID).Pluck("id", &categoryIDs).Error; err != nil {
			return err
		}
		if len(categoryIDs) > 0 {
			itemIDs := tx.Model(&models.Item{}).Select("id").Where("category_id IN ?", categoryIDs)
			var refs int64
			if err := tx.Model(&models.OrderItem{}).Where("item_id IN (?)", itemIDs).Count(&refs).Error; err != nil {
				return err
			}
			if refs > 0 {
				return models.ErrItemReferenced
			}
			if err := tx.Where("category_id IN ?", categoryIDs).Delete(&models.Item{}).Error; err != nil {
				return err
			}
			if err := tx.Where("menu_group_id = ?", group.ID).Delete(&models.Category{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&group).Error
	})
	if errors.Is(err, models.ErrItemReferenced) {
		response.Error(c, http.StatusConflict, "Menu group deletion failed", err.Error())
		return
	}
	if err != nil {
		slog.Error("menu group deletion failed", "id", group.ID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Menu group deletion failed", "internal error")
		return
	}

	config.Cache.Delete(cache.ItemListKey)
	slog.Info("menu group deleted", "id", group.ID)
	response.Success(c, http.StatusOK, "Menu group deleted successfully", nil)
}
