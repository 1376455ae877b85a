package productControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cache"
	"github.com/shoplane-dev/storefront-api/models"
)

const productCachePrefix = "products:"

type ProductInput struct {
	ProductName string  `json:"product_name" binding:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Discount    float64 `json:"discount" binding:"min=0,max=100"`
	CategoryID  uint    `json:"category_id" binding:"required"`
}

// ProductPage mirrors the paged listing response shape.
type ProductPage struct {
	Content       []models.Product `json:"content"`
	PageNumber    int              `json:"page_number"`
	PageSize      int              `json:"page_size"`
	TotalElements int64            `json:"total_elements"`
	TotalPages    int              `json:"total_pages"`
	LastPage      bool             `json:"last_page"`
}

var sortableColumns = map[string]bool{
	"id": true, "product_name": true, "price": true,
	"quantity": true, "created_at": true,
}

func currentSeller(db *gorm.DB, c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := db.Where("email = ?", c.GetString("email")).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return nil, false
	}
	return &user, true
}

// GET /products — paged listing with keyword and category filters, served
// through the cache when one is configured.
func ListProductsHandler(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageNumber, _ := strconv.Atoi(c.DefaultQuery("pageNumber", "0"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
		sortBy := c.DefaultQuery("sortBy", "id")
		sortOrder := c.DefaultQuery("sortOrder", "asc")
		keyword := c.Query("keyword")
		categoryID := c.Query("categoryId")

		if pageNumber < 0 {
			pageNumber = 0
		}
		if pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}
		if !sortableColumns[sortBy] {
			sortBy = "id"
		}
		if sortOrder != "desc" {
			sortOrder = "asc"
		}

		cacheKey := fmt.Sprintf("%s%d:%d:%s:%s:%s:%s",
			productCachePrefix, pageNumber, pageSize, sortBy, sortOrder, keyword, categoryID)
		var page ProductPage
		if store.Get(c.Request.Context(), cacheKey, &page) {
			c.JSON(http.StatusOK, page)
			return
		}

		query := db.Model(&models.Product{})
		if keyword != "" {
			query = query.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
		}
		if categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}

		var products []models.Product
		if err := query.Preload("Category").
			Order(sortBy + " " + sortOrder).
			Offset(pageNumber * pageSize).
			Limit(pageSize).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
		page = ProductPage{
			Content:       products,
			PageNumber:    pageNumber,
			PageSize:      pageSize,
			TotalElements: total,
			TotalPages:    totalPages,
			LastPage:      pageNumber >= totalPages-1,
		}
		store.Set(c.Request.Context(), cacheKey, page, cache.ProductCacheTTL)

		c.JSON(http.StatusOK, page)
	}
}

// POST /products (seller)
func AddProductHandler(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller, ok := currentSeller(db, c)
		if !ok {
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", input.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var existing int64
		db.Model(&models.Product{}).
			Where("category_id = ? AND LOWER(product_name) = ?", category.ID, strings.ToLower(input.ProductName)).
			Count(&existing)
		if existing > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product already exists"})
			return
		}

		product := models.Product{
			ProductName: input.ProductName,
			Description: input.Description,
			Image:       input.Image,
			Quantity:    input.Quantity,
			Price:       input.Price,
			Discount:    input.Discount,
			CategoryID:  category.ID,
			SellerID:    seller.ID,
		}
		if product.Image == "" {
			product.Image = "default.png"
		}
		product.ApplyDiscount()

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), productCachePrefix)
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /products/:productId (seller; owner only)
func UpdateProductHandler(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller, ok := currentSeller(db, c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("productId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.SellerID != seller.ID && seller.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Product belongs to another seller"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product.ProductName = input.ProductName
		product.Description = input.Description
		if input.Image != "" {
			product.Image = input.Image
		}
		product.Price = input.Price
		product.Discount = input.Discount
		product.CategoryID = input.CategoryID
		product.ApplyDiscount()

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), productCachePrefix)
		c.JSON(http.StatusOK, product)
	}
}

// PUT /products/:productId/quantity (seller; owner only) — seller-initiated
// inventory updates, serialized externally; the order workflow is the only
// other writer of this field.
func UpdateProductQuantityHandler(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller, ok := currentSeller(db, c)
		if !ok {
			return
		}

		var body struct {
			Quantity int `json:"quantity" binding:"min=0"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("productId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.SellerID != seller.ID && seller.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Product belongs to another seller"})
			return
		}

		if err := db.Model(&product).Update("quantity", body.Quantity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), productCachePrefix)
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /products/:productId (seller; owner only)
func DeleteProductHandler(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller, ok := currentSeller(db, c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("productId")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		if product.SellerID != seller.ID && seller.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Product belongs to another seller"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), productCachePrefix)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
