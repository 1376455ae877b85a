package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/models"
	"github.com/shoplane-dev/storefront-api/testutil"
)

const testEmail = "shopper@example.com"

// newCartRouter wires the cart handlers behind a stub auth middleware that
// injects the test user's email.
func newCartRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("email", testEmail)
		c.Next()
	})
	r.GET("/cart", GetCartHandler(db))
	r.POST("/cart/items", AddCartItemHandler(db))
	r.PUT("/cart/items/:productId", UpdateCartItemHandler(db))
	r.DELETE("/cart/items/:productId", DeleteCartItemHandler(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartTotal(t *testing.T, db *gorm.DB) float64 {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.First(&cart, "user_email = ?", testEmail).Error)
	return cart.TotalPrice
}

func TestAddCartItem(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newCartRouter(db)

	product := models.Product{ProductName: "Mug", Quantity: 20, Price: 8, Discount: 25, SpecialPrice: 6}
	testutil.MustCreate(t, db, &product)

	w := doJSON(r, http.MethodPost, "/cart/items", CartItemInput{ProductID: product.ID, Quantity: 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 6.0, item.ProductPrice) // snapshots the discounted price
	assert.Equal(t, 25.0, item.Discount)
	assert.Equal(t, 18.0, cartTotal(t, db))

	// Adding the same product again replaces the quantity, it does not stack.
	w = doJSON(r, http.MethodPost, "/cart/items", CartItemInput{ProductID: product.ID, Quantity: 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.CartItem{}))
	assert.Equal(t, 30.0, cartTotal(t, db))
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newCartRouter(db)

	w := doJSON(r, http.MethodPost, "/cart/items", CartItemInput{ProductID: 999, Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product does not exist")
}

func TestAddCartItem_InsufficientStock(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newCartRouter(db)

	product := models.Product{ProductName: "Rare Print", Quantity: 2, Price: 100, SpecialPrice: 100}
	testutil.MustCreate(t, db, &product)

	w := doJSON(r, http.MethodPost, "/cart/items", CartItemInput{ProductID: product.ID, Quantity: 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough stock")
	assert.Zero(t, testutil.Count(t, db, &models.CartItem{}))
}

func TestGetCart(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newCartRouter(db)

	t.Run("missing cart is 404", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/cart", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	product := models.Product{ProductName: "Notebook", Quantity: 10, Price: 4, SpecialPrice: 4}
	testutil.MustCreate(t, db, &product)
	doJSON(r, http.MethodPost, "/cart/items", CartItemInput{ProductID: product.ID, Quantity: 2})

	w := doJSON(r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, testEmail, cart.UserEmail)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Notebook", cart.Items[0].ProductName)
	assert.Equal(t, 8.0, cart.TotalPrice)
}

func TestUpdateCartItem(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newCartRouter(db)

	product := models.Product{ProductName: "Chair", Quantity: 10, Price: 50, SpecialPrice: 50}
	testutil.MustCreate(t, db, &product)
	doJSON(r, http.MethodPost, "/cart/items", CartItemInput{ProductID: product.ID, Quantity: 1})

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/cart/items/%d", product.ID), gin.H{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 200.0, cartTotal(t, db))

	t.Run("unknown item is 404", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/cart/items/999", gin.H{"quantity": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteCartItem(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newCartRouter(db)

	product := models.Product{ProductName: "Poster", Quantity: 10, Price: 12, SpecialPrice: 12}
	testutil.MustCreate(t, db, &product)
	doJSON(r, http.MethodPost, "/cart/items", CartItemInput{ProductID: product.ID, Quantity: 2})

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/cart/items/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, testutil.Count(t, db, &models.CartItem{}))
	assert.Equal(t, 0.0, cartTotal(t, db))

	// Deleting again is 404.
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/cart/items/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
