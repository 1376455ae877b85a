package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/auth"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	group := r.Group("/auth")
	{
		group.POST("/signup", auth.SignupHandler(db))
		group.POST("/login", auth.LoginHandler(db))
	}
}
