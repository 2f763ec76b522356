package handlers_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemResp struct {
	ID       uint                       `json:"id"`
	Name     string                     `json:"name"`
	Pricing  map[string]decimal.Decimal `json:"pricing"`
	Category struct {
		ID        uint   `json:"id"`
		Name      string `json:"name"`
		MenuGroup struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"menu_group"`
	} `json:"category"`
}

func listItems(t *testing.T, r *gin.Engine) (string, []itemResp) {
	t.Helper()
	w, env := do(t, r, "GET", "/api/items", nil)
	require.Equal(t, 200, w.Code, "body: %s", w.Body.String())
	var items []itemResp
	require.NoError(t, json.Unmarshal(env.Data, &items))
	return env.Message, items
}

func TestListItems_ReadThroughCache(t *testing.T) {
	r := setupServer(t)
	seedMenu(t, r)

	msg, items := listItems(t, r)
	assert.Equal(t, "Items retrieved successfully", msg)
	require.Len(t, items, 1)
	assert.Equal(t, "Latte", items[0].Name)
	assert.Equal(t, "Coffee", items[0].Category.Name)
	assert.Equal(t, "Beverages", items[0].Category.MenuGroup.Name)

	msg, _ = listItems(t, r)
	assert.Equal(t, "Items retrieved from cache", msg)
}

func TestListItems_InvalidatedByItemUpdate(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)
	listItems(t, r) // warm the cache

	w, _ := do(t, r, "PUT", fmt.Sprintf("/api/items/%d", menu.ItemID), gin.H{"name": "Flat White"})
	require.Equal(t, 200, w.Code)

	msg, items := listItems(t, r)
	assert.Equal(t, "Items retrieved successfully", msg, "item write must evict the listing")
	require.Len(t, items, 1)
	assert.Equal(t, "Flat White", items[0].Name)
}

func TestListItems_InvalidatedByGroupRename(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)
	listItems(t, r) // warm the cache

	w, _ := do(t, r, "PUT", fmt.Sprintf("/api/menu-groups/%d", menu.GroupID), gin.H{"name": "Drinks"})
	require.Equal(t, 200, w.Code)

	_, items := listItems(t, r)
	require.Len(t, items, 1)
	assert.Equal(t, "Drinks", items[0].Category.MenuGroup.Name, "rename must show in the nested listing")
}

func TestListItems_InvalidatedByCategoryCreate(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)
	listItems(t, r) // warm the cache

	w, _ := do(t, r, "POST", "/api/categories", gin.H{"name": "Tea", "menu_group_id": menu.GroupID})
	require.Equal(t, 201, w.Code)

	msg, _ := listItems(t, r)
	assert.Equal(t, "Items retrieved successfully", msg)
}

func TestCreateItem_RejectsBadPricing(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)

	w, _ := do(t, r, "POST", "/api/items", gin.H{
		"name":        "Espresso",
		"category_id": menu.CategoryID,
		"pricing":     gin.H{},
	})
	assert.Equal(t, 400, w.Code)

	w, env := do(t, r, "POST", "/api/items", gin.H{
		"name":        "Espresso",
		"category_id": menu.CategoryID,
		"pricing":     gin.H{"Single": -1.5},
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, fmt.Sprintf("%v", env.Error), "positive")
}

func TestCreateItem_UnknownCategory(t *testing.T) {
	r := setupServer(t)
	seedMenu(t, r)

	w, _ := do(t, r, "POST", "/api/items", gin.H{
		"name":        "Espresso",
		"category_id": 999,
		"pricing":     gin.H{"Single": 2.0},
	})
	assert.Equal(t, 400, w.Code)
}

func TestDeleteItem_BlockedWhileReferenced(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)
	createLatteOrder(t, r, menu.ItemID)

	w, env := do(t, r, "DELETE", fmt.Sprintf("/api/items/%d", menu.ItemID), nil)
	assert.Equal(t, 409, w.Code)
	assert.Contains(t, fmt.Sprintf("%v", env.Error), "referenced")

	// both the item and the order line survive
	w, _ = do(t, r, "GET", fmt.Sprintf("/api/items/%d", menu.ItemID), nil)
	assert.Equal(t, 200, w.Code)
}

func TestDeleteCategory_BlockedWhileItemReferenced(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)
	createLatteOrder(t, r, menu.ItemID)

	w, _ := do(t, r, "DELETE", fmt.Sprintf("/api/categories/%d", menu.CategoryID), nil)
	assert.Equal(t, 409, w.Code)

	w, _ = do(t, r, "DELETE", fmt.Sprintf("/api/menu-groups/%d", menu.GroupID), nil)
	assert.Equal(t, 409, w.Code)
}

func TestDeleteItem_AllowedAfterOrderDeleted(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)
	order := createLatteOrder(t, r, menu.ItemID)

	w, _ := do(t, r, "DELETE", fmt.Sprintf("/api/orders/%d", order.ID), nil)
	require.Equal(t, 200, w.Code)

	w, _ = do(t, r, "DELETE", fmt.Sprintf("/api/items/%d", menu.ItemID), nil)
	assert.Equal(t, 200, w.Code)
}

func TestDeleteMenuGroup_CascadesToItems(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)

	w, _ := do(t, r, "DELETE", fmt.Sprintf("/api/menu-groups/%d", menu.GroupID), nil)
	require.Equal(t, 200, w.Code)

	w, _ = do(t, r, "GET", fmt.Sprintf("/api/categories/%d", menu.CategoryID), nil)
	assert.Equal(t, 404, w.Code)
	w, _ = do(t, r, "GET", fmt.Sprintf("/api/items/%d", menu.ItemID), nil)
	assert.Equal(t, 404, w.Code)

	_, items := listItems(t, r)
	assert.Empty(t, items)
}

func TestMenuGroupName_CaseInsensitiveUnique(t *testing.T) {
	r := setupServer(t)
	seedMenu(t, r)

	w, env := do(t, r, "POST", "/api/menu-groups", gin.H{"name": "beverages"})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, fmt.Sprintf("%v", env.Error), "already exists")
}

func TestCategoryName_UniquePerGroupOnly(t *testing.T) {
	r := setupServer(t)
	menu := seedMenu(t, r)

	w, _ := do(t, r, "POST", "/api/categories", gin.H{"name": "Coffee", "menu_group_id": menu.GroupID})
	assert.Equal(t, 400, w.Code)

	w, env := do(t, r, "POST", "/api/menu-groups", gin.H{"name": "Food"})
	require.Equal(t, 201, w.Code)
	var other idHolder
	require.NoError(t, json.Unmarshal(env.Data, &other))

	w, _ = do(t, r, "POST", "/api/categories", gin.H{"name": "Coffee", "menu_group_id": other.ID})
	assert.Equal(t, 201, w.Code, "same name under another group is allowed")
}
