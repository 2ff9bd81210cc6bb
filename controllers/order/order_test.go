package ordercontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-Test-User"); v != "" {
			id, _ := strconv.Atoi(v)
			c.Set("user_id", uint(id))
		}
		c.Next()
	})
	r.GET("/api/orders", ListOrdersHandler(db))
	r.POST("/api/orders/from-cart", CreateFromCartHandler(db))
	r.GET("/api/orders/:id", GetOrderHandler(db))
	r.PUT("/api/orders/:id/pay", MarkPaidHandler(db))
	r.DELETE("/api/orders/:id", CancelOrderHandler(db))
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.FormatUint(uint64(userID), 10))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, available bool) models.Product {
	t.Helper()
	product := models.Product{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Available: available,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCartItem(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) models.CartItem {
	t.Helper()
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestCreateFromCartEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	user := seedUser(t, db, "a@x.com")

	w := doRequest(t, r, http.MethodPost, "/api/orders/from-cart", nil, user.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateFromCartSnapshotsPrices(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	user := seedUser(t, db, "a@x.com")
	product := seedProduct(t, db, "widget", "199.99", true)
	seedCartItem(t, db, user.ID, product.ID, 2)

	w := doRequest(t, r, http.MethodPost, "/api/orders/from-cart", nil, user.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, decimal.RequireFromString("399.98").Equal(created.TotalPrice),
		"total should be 399.98, got %s", created.TotalPrice)
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)
	assert.NotEmpty(t, created.OrderRef)
	require.Len(t, created.Items, 1)
	assert.Equal(t, 2, created.Items[0].Quantity)

	// Cart is cleared on success
	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Zero(t, cartCount)

	// A later price change must not touch the snapshot
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("999.99")).Error)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, created.ID).Error)
	assert.True(t, decimal.RequireFromString("399.98").Equal(stored.TotalPrice))
	assert.True(t, decimal.RequireFromString("199.99").Equal(stored.Items[0].Price))
}

func TestCreateFromCartProductUnavailable(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	user := seedUser(t, db, "a@x.com")
	ok := seedProduct(t, db, "widget", "10.00", true)
	gone := seedProduct(t, db, "retired", "5.00", false)
	seedCartItem(t, db, user.ID, ok.ID, 1)
	seedCartItem(t, db, user.ID, gone.ID, 1)

	w := doRequest(t, r, http.MethodPost, "/api/orders/from-cart", nil, user.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "product "+strconv.FormatUint(uint64(gone.ID), 10)+" not available")

	// All-or-nothing: no order persisted, cart untouched
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.EqualValues(t, 2, cartCount)
}

func TestCreateFromCartDeletedProduct(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	user := seedUser(t, db, "a@x.com")
	product := seedProduct(t, db, "widget", "10.00", true)
	seedCartItem(t, db, user.ID, product.ID, 1)
	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	w := doRequest(t, r, http.MethodPost, "/api/orders/from-cart", nil, user.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderOwnership(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	owner := seedUser(t, db, "owner@x.com")
	other := seedUser(t, db, "other@x.com")
	product := seedProduct(t, db, "widget", "10.00", true)
	seedCartItem(t, db, owner.ID, product.ID, 1)

	order, err := CreateOrderFromCart(db, owner.ID, true)
	require.NoError(t, err)
	path := "/api/orders/" + strconv.FormatUint(uint64(order.ID), 10)

	w := doRequest(t, r, http.MethodGet, path, nil, owner.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, path, nil, other.ID)
	assert.Equal(t, http.StatusNotFound, w.Code, "someone else's order reads as missing")

	w = doRequest(t, r, http.MethodGet, "/api/orders/424242", nil, owner.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkPaid(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	user := seedUser(t, db, "a@x.com")
	product := seedProduct(t, db, "widget", "10.00", true)
	seedCartItem(t, db, user.ID, product.ID, 3)

	order, err := CreateOrderFromCart(db, user.ID, true)
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPut, "/api/orders/"+strconv.FormatUint(uint64(order.ID), 10)+"/pay", nil, user.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, models.PaymentStatusPaid, stored.Items[0].PaymentStatus)
}

func TestCancelOrder(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	user := seedUser(t, db, "a@x.com")
	product := seedProduct(t, db, "widget", "10.00", true)

	seedCartItem(t, db, user.ID, product.ID, 1)
	pending, err := CreateOrderFromCart(db, user.ID, true)
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodDelete, "/api/orders/"+strconv.FormatUint(uint64(pending.ID), 10), nil, user.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", pending.ID).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", pending.ID).Count(&itemCount).Error)
	assert.Zero(t, orderCount, "canceled order is deleted")
	assert.Zero(t, itemCount, "items cascade")
}

func TestCancelPaidOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	user := seedUser(t, db, "a@x.com")
	product := seedProduct(t, db, "widget", "10.00", true)

	seedCartItem(t, db, user.ID, product.ID, 1)
	order, err := CreateOrderFromCart(db, user.ID, true)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("payment_status", models.PaymentStatusPaid).Error)

	w := doRequest(t, r, http.MethodDelete, "/api/orders/"+strconv.FormatUint(uint64(order.ID), 10), nil, user.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "only pending orders can be canceled")

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "paid order survives")
}

func TestListOrders(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)
	user := seedUser(t, db, "a@x.com")
	product := seedProduct(t, db, "widget", "10.00", true)

	seedCartItem(t, db, user.ID, product.ID, 1)
	_, err := CreateOrderFromCart(db, user.ID, true)
	require.NoError(t, err)
	seedCartItem(t, db, user.ID, product.ID, 2)
	_, err = CreateOrderFromCart(db, user.ID, true)
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodGet, "/api/orders", nil, user.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)
}

func TestListOrdersUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)

	w := doRequest(t, r, http.MethodGet, "/api/orders", nil, 999)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderFromCartDeferredClear(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@x.com")
	product := seedProduct(t, db, "widget", "10.00", true)
	seedCartItem(t, db, user.ID, product.ID, 2)

	order, err := CreateOrderFromCart(db, user.ID, false)
	require.NoError(t, err)
	require.NotNil(t, order)

	// Deferred mode leaves the cart behind for the caller to clear
	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.EqualValues(t, 1, cartCount)

	require.NoError(t, ClearCart(db, user.ID))
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Zero(t, cartCount)
}
