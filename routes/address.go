package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/shoplane-dev/storefront-api/controllers/address"
	"github.com/shoplane-dev/storefront-api/middleware"
)

func SetupAddressRoutes(r *gin.Engine, db *gorm.DB) {
	addresses := r.Group("/addresses", middleware.ValidateToken)
	{
		addresses.POST("", addressControllers.CreateAddressHandler(db))
		addresses.GET("", addressControllers.ListAddressesHandler(db))
		addresses.GET("/:addressId", addressControllers.GetAddressHandler(db))
		addresses.PUT("/:addressId", addressControllers.UpdateAddressHandler(db))
		addresses.DELETE("/:addressId", addressControllers.DeleteAddressHandler(db))
	}
}
