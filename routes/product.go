package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cache"
	productControllers "github.com/shoplane-dev/storefront-api/controllers/product"
	"github.com/shoplane-dev/storefront-api/middleware"
	"github.com/shoplane-dev/storefront-api/models"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB, store *cache.Cache) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.ListProductsHandler(db, store))

		products.POST("", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			productControllers.AddProductHandler(db, store))
		products.PUT("/:productId", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			productControllers.UpdateProductHandler(db, store))
		products.PUT("/:productId/quantity", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			productControllers.UpdateProductQuantityHandler(db, store))
		products.DELETE("/:productId", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			productControllers.DeleteProductHandler(db, store))

		products.GET("/export", middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin),
			productControllers.ExportProductsToExcel(db))
	}

	categories := r.Group("/categories")
	{
		categories.GET("", productControllers.ListCategoriesHandler(db))

		categories.POST("", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
			productControllers.CreateCategoryHandler(db, store))
		categories.PUT("/:categoryId", middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin),
			productControllers.UpdateCategoryHandler(db, store))
		categories.DELETE("/:categoryId", middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin),
			productControllers.DeleteCategoryHandler(db, store))
	}
}
