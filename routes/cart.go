package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/shoplane-dev/storefront-api/controllers/cart"
	"github.com/shoplane-dev/storefront-api/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart", middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetCartHandler(db))
		cart.POST("/items", cartControllers.AddCartItemHandler(db))
		cart.PUT("/items/:productId", cartControllers.UpdateCartItemHandler(db))
		cart.DELETE("/items/:productId", cartControllers.DeleteCartItemHandler(db))
	}
}
