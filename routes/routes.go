package routes

import (
	"pos-order-api/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// ── Menu groups ────────────────────────────────────────────────
		api.POST("/menu-groups", handlers.CreateMenuGroup)
		api.GET("/menu-groups", handlers.ListMenuGroups)
		api.GET("/menu-groups/:id", handlers.GetMenuGroup)
		api.PUT("/menu-groups/:id", handlers.UpdateMenuGroup)
		api.DELETE("/menu-groups/:id", handlers.DeleteMenuGroup)

		// ── Categories ─────────────────────────────────────────────────
		api.POST("/categories", handlers.CreateCategory)
		api.GET("/categories", handlers.ListCategories)
		api.GET("/categories/:id", handlers.GetCategory)
		api.PUT("/categories/:id", handlers.UpdateCategory)
		api.DELETE("/categories/:id", handlers.DeleteCategory)

		// ── Items ──────────────────────────────────────────────────────
		api.POST("/items", handlers.CreateItem)
		api.GET("/items", handlers.ListItems)
		api.GET("/items/:id", handlers.GetItem)
		api.PUT("/items/:id", handlers.UpdateItem)
		api.DELETE("/items/:id", handlers.DeleteItem)

		// ── Orders ─────────────────────────────────────────────────────
		api.POST("/orders", handlers.CreateOrder)
		api.GET("/orders", handlers.ListOrders)
		api.GET("/orders/:id", handlers.GetOrder)
		api.PUT("/orders/:id", handlers.UpdateOrder)
		api.DELETE("/orders/:id", handlers.DeleteOrder)

		// ── Payments ───────────────────────────────────────────────────
		api.POST("/payments", handlers.CreatePayment)
		api.GET("/payments", handlers.ListPayments)
		api.GET("/payments/:id", handlers.GetPayment)
		api.PUT("/payments/:id", handlers.UpdatePayment)
		api.DELETE("/payments/:id", handlers.DeletePayment)
		api.GET("/orders/:id/payments", handlers.ListOrderPayments)
		api.POST("/orders/:id/payments", handlers.CreateOrderPayment)
	}
}
