package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cache"
	"github.com/shoplane-dev/storefront-api/mailer"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, notify mailer.Notifier, store *cache.Cache) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Catalog routes (listing public, mutations role-gated)
	SetupProductRoutes(r, db, store)

	// Cart routes (JWT-protected)
	SetupCartRoutes(r, db)

	// Address routes (JWT-protected)
	SetupAddressRoutes(r, db)

	// Order routes (JWT-protected; the workflow core)
	SetupOrderRoutes(r, db, notify)
}
