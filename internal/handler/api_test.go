package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bizflow-backend/internal/middleware"
	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/internal/service"
	"bizflow-backend/pkg/password"
	"bizflow-backend/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the auth, user and inventory surface against an in-memory
// database, mirroring the production route layout.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.InventoryItem{},
		&model.InventoryTransaction{},
	))

	userRepo := repository.NewUserRepo(db)
	itemRepo := repository.NewInventoryItemRepo(db)
	txRepo := repository.NewInventoryTransactionRepo(db)

	hasher := password.NewHasher()
	hasher.SetCost(bcrypt.MinCost)
	tokens := token.New([]byte("test-secret"), 30*time.Minute)

	authHandler := NewAuthHandler(service.NewAuthService(userRepo, hasher, tokens))
	userHandler := NewUserHandler(service.NewUserService(userRepo, hasher))
	invHandler := NewInventoryHandler(service.NewInventoryService(itemRepo, txRepo, db, nil))

	app := fiber.New()
	app.Post("/auth/login", authHandler.Login)
	app.Post("/users", userHandler.Register)

	protected := app.Group("", middleware.RequireAuth(tokens, userRepo))
	protected.Get("/users/me", userHandler.Me)

	inv := protected.Group("/inventory")
	inv.Post("/transactions", invHandler.CreateTransaction)
	inv.Get("/transactions", invHandler.ListTransactions)
	inv.Get("/transactions/:item_id", invHandler.ListItemTransactions)
	inv.Get("/low-stock", invHandler.LowStock)
	inv.Post("/", invHandler.CreateItem)
	inv.Get("/", invHandler.ListItems)
	inv.Get("/:id", invHandler.GetItem)
	inv.Put("/:id/quantity", middleware.RequireRole(model.RoleAdmin), invHandler.OverrideQuantity)
	inv.Put("/:id", invHandler.UpdateItem)
	inv.Delete("/:id", invHandler.DeleteItem)

	return app
}

func jsonRequest(t *testing.T, method, path, bearer string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerAndLogin(t *testing.T, app *fiber.App, email, pw, role string) string {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", "", fiber.Map{
		"email": email, "password": pw, "role": role,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": email, "password": pw,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	decodeBody(t, resp, &tokenResp)
	require.NotEmpty(t, tokenResp.AccessToken)
	require.Equal(t, "bearer", tokenResp.TokenType)
	return tokenResp.AccessToken
}

func TestLoginFailuresReturnChallenge(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "worker@example.com", "Passw0rd", "")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": "worker@example.com", "password": "wrong-Passw0rd",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
}

func TestLoginAcceptsFormEncoding(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "worker@example.com", "Passw0rd", "")

	form := "username=worker%40example.com&password=Passw0rd"
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/inventory/", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInventoryAdjustmentFlow(t *testing.T) {
	app := newTestApp(t)
	bearer := registerAndLogin(t, app, "clerk@example.com", "Passw0rd", "")

	// Create an item.
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/inventory/", bearer, fiber.Map{
		"sku": "WID-001", "name": "Widget", "quantity": 10, "low_stock_threshold": 3,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var item model.InventoryItem
	decodeBody(t, resp, &item)

	// Withdraw three.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/inventory/transactions", bearer, fiber.Map{
		"item_id": item.ID, "quantity_change": -3, "type": "Subtraction", "note": "order 42",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var record model.InventoryTransaction
	decodeBody(t, resp, &record)
	assert.Equal(t, -3, record.QuantityChange)
	require.NotNil(t, record.PerformedBy)

	// Overdraw is rejected and leaves the quantity alone.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/inventory/transactions", bearer, fiber.Map{
		"item_id": item.ID, "quantity_change": -100, "type": "Subtraction",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/inventory/"+item.ID.String(), bearer, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored model.InventoryItem
	decodeBody(t, resp, &stored)
	assert.Equal(t, 7, stored.Quantity)

	// One ledger entry for the item.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/inventory/transactions/"+item.ID.String(), bearer, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var ledger []model.InventoryTransaction
	decodeBody(t, resp, &ledger)
	assert.Len(t, ledger, 1)
}

func TestQuantityOverrideIsAdminOnly(t *testing.T) {
	app := newTestApp(t)
	userBearer := registerAndLogin(t, app, "clerk@example.com", "Passw0rd", "")
	adminBearer := registerAndLogin(t, app, "boss@example.com", "Passw0rd", "admin")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/inventory/", userBearer, fiber.Map{
		"sku": "WID-001", "name": "Widget", "quantity": 10,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var item model.InventoryItem
	decodeBody(t, resp, &item)

	// A regular user cannot set quantities directly.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/inventory/"+item.ID.String()+"/quantity", userBearer, fiber.Map{
		"quantity": 4,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// An admin can, and the delta lands in the ledger.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/inventory/"+item.ID.String()+"/quantity", adminBearer, fiber.Map{
		"quantity": 4, "note": "stocktake",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Item        model.InventoryItem         `json:"item"`
		Transaction *model.InventoryTransaction `json:"transaction"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, 4, result.Item.Quantity)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, -6, result.Transaction.QuantityChange)
	assert.Equal(t, model.TxAdjustment, result.Transaction.Type)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	// Weak password.
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", "", fiber.Map{
		"email": "worker@example.com", "password": "weak",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Duplicate email.
	registerAndLogin(t, app, "worker@example.com", "Passw0rd", "")
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/users", "", fiber.Map{
		"email": "worker@example.com", "password": "Passw0rd",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMeReturnsProfileWithoutHash(t *testing.T) {
	app := newTestApp(t)
	bearer := registerAndLogin(t, app, "worker@example.com", "Passw0rd", "")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/users/me", bearer, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "worker@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")
}
