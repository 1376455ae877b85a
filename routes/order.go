package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/shoplane-dev/storefront-api/controllers/order"
	"github.com/shoplane-dev/storefront-api/mailer"
	"github.com/shoplane-dev/storefront-api/middleware"
	"github.com/shoplane-dev/storefront-api/models"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, notify mailer.Notifier) {
	// Checkout entry point: payment method in the path, settled gateway
	// fields in the body.
	r.POST("/order/users/payments/:paymentMethod",
		middleware.ValidateToken, orderControllers.PlaceOrderHandler(db, notify))

	orders := r.Group("/orders")
	{
		// Fetch a single order (?orderId=), scoped to the caller
		orders.GET("", middleware.ValidateToken, orderControllers.GetOrderHandler(db))

		// Cancel an accepted order
		orders.POST("/:orderId/cancel", middleware.ValidateToken, orderControllers.CancelOrderHandler(db, notify))
		orders.PUT("/:orderId/cancel", middleware.ValidateToken, orderControllers.CancelOrderHandler(db, notify))

		// Lifecycle transitions
		orders.PUT("/:orderId/ship", middleware.ValidateToken, orderControllers.ShipOrderHandler(db, notify))
		orders.PUT("/:orderId/deliver", middleware.ValidateToken, orderControllers.DeliverOrderHandler(db, notify))

		// Live order-event feed
		orders.GET("/ws", orderControllers.OrderFeedHandler)

		// Admin export
		orders.GET("/export", middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin), orderControllers.ExportOrdersToExcel(db))
	}
}
