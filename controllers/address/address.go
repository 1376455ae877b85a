package addressControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/models"
)

type AddressInput struct {
	Street       string `json:"street" binding:"required"`
	BuildingName string `json:"building_name"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state"`
	Country      string `json:"country" binding:"required"`
	Pincode      string `json:"pincode"`
}

func currentUser(db *gorm.DB, c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := db.Where("email = ?", c.GetString("email")).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return nil, false
	}
	return &user, true
}

// POST /addresses
func CreateAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(db, c)
		if !ok {
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		address := models.Address{
			UserID:       user.ID,
			Street:       input.Street,
			BuildingName: input.BuildingName,
			City:         input.City,
			State:        input.State,
			Country:      input.Country,
			Pincode:      input.Pincode,
		}
		if err := db.Create(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// GET /addresses — the caller's addresses.
func ListAddressesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(db, c)
		if !ok {
			return
		}

		var addresses []models.Address
		if err := db.Where("user_id = ?", user.ID).Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// GET /addresses/:addressId
func GetAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(db, c)
		if !ok {
			return
		}

		var address models.Address
		if err := db.First(&address, "id = ?", c.Param("addressId")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}
		if address.UserID != user.ID && user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Address belongs to another user"})
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// PUT /addresses/:addressId
func UpdateAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(db, c)
		if !ok {
			return
		}

		var address models.Address
		if err := db.First(&address, "id = ?", c.Param("addressId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		if address.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Address belongs to another user"})
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		address.Street = input.Street
		address.BuildingName = input.BuildingName
		address.City = input.City
		address.State = input.State
		address.Country = input.Country
		address.Pincode = input.Pincode

		if err := db.Save(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// DELETE /addresses/:addressId
func DeleteAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(db, c)
		if !ok {
			return
		}

		var address models.Address
		if err := db.First(&address, "id = ?", c.Param("addressId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		if address.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Address belongs to another user"})
			return
		}

		if err := db.Delete(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
