package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductPhoto{},
		&models.CartItem{},
	))
	return db
}

func seedUserAndProduct(t *testing.T, db *gorm.DB) (models.User, models.Product) {
	t.Helper()
	user := models.User{UID: "uid-1", Email: "buyer@example.com", Name: "Buyer"}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{Name: "Bikini Top", Price: 49.99, Stock: 10, Category: "bikinis"}
	require.NoError(t, db.Create(&product).Error)
	return user, product
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, uid string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/cart", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("firebase_uid", uid)

	handler(c)
	return w
}

func TestAddProductToCartCreatesLine(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	w := performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 2, Size: "M", Color: "Black",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 49.99, items[0].Price)
	assert.Equal(t, "Bikini Top", items[0].ProductName)
}

func TestAddProductToCartAccumulatesSameSelection(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	first := performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 2, Size: "M", Color: "Black",
	})
	assert.Equal(t, http.StatusCreated, first.Code)

	second := performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 3, Size: "M", Color: "Black",
	})
	assert.Equal(t, http.StatusOK, second.Code)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddProductToCartDifferentSizeIsNewLine(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 1, Size: "M", Color: "Black",
	})
	performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 1, Size: "L", Color: "Black",
	})

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAddProductToCartUsesDiscountPrice(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedUserAndProduct(t, db)

	discount := 29.99
	product := models.Product{Name: "Sale Bottom", Price: 39.99, DiscountPrice: &discount}
	require.NoError(t, db.Create(&product).Error)

	w := performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var item models.CartItem
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&item).Error)
	assert.Equal(t, discount, item.Price)
}

func TestAddProductToCartUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	_, product := seedUserAndProduct(t, db)

	w := performJSON(t, AddProductToCart(db), http.MethodPost, "no-such-uid", AddToCartInput{
		ProductID: product.ID, Quantity: 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddProductToCartUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedUserAndProduct(t, db)

	w := performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: 9999, Quantity: 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductQuantitySetsAbsoluteValue(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 2, Size: "S",
	})
	w := performJSON(t, UpdateProductQuantity(db), http.MethodPut, user.UID, UpdateQuantityInput{
		ProductID: product.ID, Quantity: 7, Size: "S",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, 7, item.Quantity)
}

func TestUpdateProductQuantityMissingLine(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	w := performJSON(t, UpdateProductQuantity(db), http.MethodPut, user.UID, UpdateQuantityInput{
		ProductID: product.ID, Quantity: 3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveProductFromCart(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 1, Size: "M",
	})
	w := performJSON(t, RemoveProductFromCart(db), http.MethodDelete, user.UID, RemoveFromCartInput{
		ProductID: product.ID, Size: "M",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRemoveProductFromCartMissingLine(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	w := performJSON(t, RemoveProductFromCart(db), http.MethodDelete, user.UID, RemoveFromCartInput{
		ProductID: product.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCartDeletesAllLines(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 1, Size: "S",
	})
	performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 1, Size: "M",
	})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/cart/clear", nil)
	c.Set("firebase_uid", user.UID)
	ClearCart(db)(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetUserCartSendsNoStore(t *testing.T) {
	db := setupTestDB(t)
	user, product := seedUserAndProduct(t, db)

	performJSON(t, AddProductToCart(db), http.MethodPost, user.UID, AddToCartInput{
		ProductID: product.ID, Quantity: 1,
	})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	c.Set("firebase_uid", user.UID)
	GetUserCart(db)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
}
