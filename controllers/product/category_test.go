package productControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cache"
	"github.com/shoplane-dev/storefront-api/models"
	"github.com/shoplane-dev/storefront-api/testutil"
)

func newCategoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := cache.New(zap.NewNop())

	r := gin.New()
	r.GET("/categories", ListCategoriesHandler(db))
	r.POST("/categories", CreateCategoryHandler(db, store))
	r.PUT("/categories/:categoryId", UpdateCategoryHandler(db, store))
	r.DELETE("/categories/:categoryId", DeleteCategoryHandler(db, store))
	return r
}

func TestCategoryCRUD(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newCategoryRouter(db)

	w := doJSON(r, http.MethodPost, "/categories", CategoryInput{CategoryName: "Kitchen"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("duplicate name rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/categories", CategoryInput{CategoryName: "Kitchen"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
	})

	t.Run("listing is name-ordered", func(t *testing.T) {
		doJSON(r, http.MethodPost, "/categories", CategoryInput{CategoryName: "Bathroom"})
		w := doJSON(r, http.MethodGet, "/categories", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var categories []models.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
		require.Len(t, categories, 2)
		assert.Equal(t, "Bathroom", categories[0].CategoryName)
	})

	t.Run("rename", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, fmt.Sprintf("/categories/%d", created.ID),
			CategoryInput{CategoryName: "Kitchenware"})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete blocked while products remain", func(t *testing.T) {
		testutil.MustCreate(t, db, &models.Product{
			ProductName: "Kettle", Quantity: 1, Price: 30, SpecialPrice: 30, CategoryID: created.ID,
		})
		w := doJSON(r, http.MethodDelete, fmt.Sprintf("/categories/%d", created.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "still has products")
	})

	t.Run("delete empty category", func(t *testing.T) {
		empty := models.Category{CategoryName: "Seasonal"}
		testutil.MustCreate(t, db, &empty)
		w := doJSON(r, http.MethodDelete, fmt.Sprintf("/categories/%d", empty.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
