package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// getOrCreateCart resolves the caller's cart, creating an empty one for users
// who predate cart-on-signup.
func getOrCreateCart(db *gorm.DB, email string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_email = ?", email).
		FirstOrCreate(&cart, models.Cart{UserEmail: email}).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// recomputeTotal refreshes the cart's cached total from its item snapshots.
func recomputeTotal(tx *gorm.DB, cartID uint) error {
	var total float64
	err := tx.Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(product_price * quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Cart{}).Where("cart_id = ?", cartID).
		Update("total_price", total).Error
}

// GET /cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		var cart models.Cart
		if err := db.Preload("Items").Where("user_email = ?", email).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /cart/items — adds the product or replaces the quantity of an existing
// item. Price and discount are snapshotted from the product at this moment.
func AddCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}
		if product.Quantity < input.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock for product: " + product.ProductName})
			return
		}

		cart, err := getOrCreateCart(db, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve cart"})
			return
		}

		var item models.CartItem
		created := false
		err = db.Transaction(func(tx *gorm.DB) error {
			findErr := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).
				First(&item).Error
			switch {
			case errors.Is(findErr, gorm.ErrRecordNotFound):
				item = models.CartItem{
					CartID:       cart.CartID,
					ProductID:    product.ID,
					ProductName:  product.ProductName,
					Quantity:     input.Quantity,
					Discount:     product.Discount,
					ProductPrice: product.SpecialPrice,
					AddedAt:      time.Now(),
				}
				created = true
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			case findErr != nil:
				return findErr
			default:
				item.Quantity = input.Quantity
				item.AddedAt = time.Now()
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}
			return recomputeTotal(tx, cart.CartID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, item)
	}
}

// PUT /cart/items/:productId — sets the quantity of an existing item.
func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
			return
		}

		var body struct {
			Quantity int `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Where("user_email = ?", email).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		var item models.CartItem
		if err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
			First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			item.Quantity = body.Quantity
			item.AddedAt = time.Now()
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
			return recomputeTotal(tx, cart.CartID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/items/:productId
func DeleteCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_email = ?", email).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		var deleted int64
		err = db.Transaction(func(tx *gorm.DB) error {
			result := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
				Delete(&models.CartItem{})
			if result.Error != nil {
				return result.Error
			}
			deleted = result.RowsAffected
			if deleted == 0 {
				return nil
			}
			return recomputeTotal(tx, cart.CartID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if deleted == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}
