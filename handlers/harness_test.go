package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"pos-order-api/cache"
	"pos-order-api/config"
	"pos-order-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   interface{}     `json:"error"`
}

// setupServer wires a fresh in-memory database and cache behind the full
// route table. Globals are swapped per test; tests run sequentially.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.InitDBAt(":memory:")
	sqlDB, err := config.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	config.Cache = cache.NewMemory()

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

type seededMenu struct {
	GroupID    uint
	CategoryID uint
	ItemID     uint
}

type idHolder struct {
	ID uint `json:"id"`
}

// seedMenu creates Beverages → Coffee → Latte {"Small": 2.5, "Large": 4.0}
// through the API.
func seedMenu(t *testing.T, r *gin.Engine) seededMenu {
	t.Helper()
	var menu seededMenu

	w, env := do(t, r, "POST", "/api/menu-groups", gin.H{"name": "Beverages"})
	require.Equal(t, 201, w.Code, "body: %s", w.Body.String())
	var group idHolder
	require.NoError(t, json.Unmarshal(env.Data, &group))
	menu.GroupID = group.ID

	w, env = do(t, r, "POST", "/api/categories", gin.H{"name": "Coffee", "menu_group_id": menu.GroupID})
	require.Equal(t, 201, w.Code, "body: %s", w.Body.String())
	var category idHolder
	require.NoError(t, json.Unmarshal(env.Data, &category))
	menu.CategoryID = category.ID

	w, env = do(t, r, "POST", "/api/items", gin.H{
		"name":        "Latte",
		"category_id": menu.CategoryID,
		"pricing":     gin.H{"Small": 2.5, "Large": 4.0},
	})
	require.Equal(t, 201, w.Code, "body: %s", w.Body.String())
	var item idHolder
	require.NoError(t, json.Unmarshal(env.Data, &item))
	menu.ItemID = item.ID

	return menu
}
