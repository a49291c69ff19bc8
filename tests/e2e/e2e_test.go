//go:build integration

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bizpos/internal/config"
	"bizpos/internal/infra"
	"bizpos/internal/model"
	"bizpos/internal/repository"
	"bizpos/internal/router"
)

type env struct {
	server *httptest.Server
	db     *gorm.DB
	token  string
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("bizpos_test"),
		tcpostgres.WithUsername("bizpos"),
		tcpostgres.WithPassword("bizpos"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	redisC, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	redisURL, err := redisC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "development",
		JWTSecret:          "e2e-test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
		BusinessName:       "E2E Shop",
	}

	db, err := infra.NewDatabase(dsn, cfg.Env)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(redisURL)
	require.NoError(t, err)

	engine, _ := router.New(cfg, db, rdb, zerolog.Nop())
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	e := &env{server: server, db: db}
	e.seedOwner(t)
	e.token = e.login(t, "owner", "owner-pass-123")
	return e
}

func (e *env) seedOwner(t *testing.T) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("owner-pass-123"), bcrypt.MinCost)
	require.NoError(t, err)
	email := "owner@e2e.test"
	u := &model.User{Username: "owner", Name: "Owner", Email: &email, PasswordHash: string(hash), IsActive: true}
	p := &model.EmployeeProfile{Role: model.RoleOwner, IsActiveEmployee: true}
	users := repository.NewUserRepository(e.db)
	require.NoError(t, e.db.Transaction(func(tx *gorm.DB) error {
		return users.CreateWithProfileTx(tx, u, p)
	}))
}

func (e *env) login(t *testing.T, username, password string) string {
	t.Helper()
	body := e.request(t, http.MethodPost, "/v1/auth/login", "",
		map[string]string{"username": username, "password": password}, http.StatusOK)
	return body["access_token"].(string)
}

// request runs one call and decodes the JSON body; nil bodies and
// non-JSON responses return nil.
func (e *env) request(t *testing.T, method, path, token string, payload interface{}, wantStatus int) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode, "%s %s", method, path)

	var body map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return body
}

func TestSaleFlow(t *testing.T) {
	e := setup(t)

	product := e.request(t, http.MethodPost, "/v1/products", e.token, map[string]interface{}{
		"name":           "Television",
		"price":          "1000",
		"stock_quantity": 10,
		"reorder_level":  2,
	}, http.StatusCreated)
	productID := product["id"].(string)

	// Sell 3: total 3000, stock drops to 7.
	sale := e.request(t, http.MethodPost, "/v1/sales", e.token, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": productID, "quantity": 3}},
	}, http.StatusCreated)
	assert.Equal(t, "3000", fmt.Sprint(sale["total_amount"]))

	after := e.request(t, http.MethodGet, "/v1/products/"+productID, e.token, nil, http.StatusOK)
	assert.EqualValues(t, 7, after["stock_quantity"])

	// Selling 8 exceeds the remaining 7 and must not change stock.
	fail := e.request(t, http.MethodPost, "/v1/sales", e.token, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": productID, "quantity": 8}},
	}, http.StatusBadRequest)
	assert.Contains(t, fail["detail"], "insufficient stock")

	after = e.request(t, http.MethodGet, "/v1/products/"+productID, e.token, nil, http.StatusOK)
	assert.EqualValues(t, 7, after["stock_quantity"])

	// Voiding the sale restores the stock.
	saleID := sale["id"].(string)
	e.request(t, http.MethodDelete, "/v1/sales/"+saleID, e.token, nil, http.StatusNoContent)
	after = e.request(t, http.MethodGet, "/v1/products/"+productID, e.token, nil, http.StatusOK)
	assert.EqualValues(t, 10, after["stock_quantity"])
}

func TestReceiveIsIdempotent(t *testing.T) {
	e := setup(t)

	product := e.request(t, http.MethodPost, "/v1/products", e.token, map[string]interface{}{
		"name":           "Rice Bag",
		"price":          "12.50",
		"stock_quantity": 1,
	}, http.StatusCreated)
	productID := product["id"].(string)

	supplier := e.request(t, http.MethodPost, "/v1/suppliers", e.token, map[string]interface{}{
		"name": "Acme Wholesale",
	}, http.StatusCreated)

	po := e.request(t, http.MethodPost, "/v1/purchase-orders", e.token, map[string]interface{}{
		"supplier_id": supplier["id"],
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": 9, "unit_cost": "8.00"},
		},
	}, http.StatusCreated)
	poID := po["id"].(string)

	first := e.request(t, http.MethodPost, "/v1/purchase-orders/"+poID+"/receive", e.token, nil, http.StatusOK)
	assert.Equal(t, "received", first["status"])

	second := e.request(t, http.MethodPost, "/v1/purchase-orders/"+poID+"/receive", e.token, nil, http.StatusOK)
	assert.Equal(t, "already_received", second["status"])

	after := e.request(t, http.MethodGet, "/v1/products/"+productID, e.token, nil, http.StatusOK)
	assert.EqualValues(t, 10, after["stock_quantity"])
}

func TestRoleGating(t *testing.T) {
	e := setup(t)

	// A cashier cannot reach the owner surface; the 401 points back to
	// login.
	e.request(t, http.MethodPost, "/v1/users", e.token, map[string]interface{}{
		"username": "cash",
		"name":     "Cash Ier",
		"password": "cashier-pass",
		"role":     "cashier",
	}, http.StatusCreated)
	cashierToken := e.login(t, "cash", "cashier-pass")

	denied := e.request(t, http.MethodGet, "/v1/reports/sales", cashierToken, nil, http.StatusUnauthorized)
	assert.Equal(t, "/v1/auth/login", denied["login"])

	// But the POS surface works.
	e.request(t, http.MethodGet, "/v1/sales/mine", cashierToken, nil, http.StatusOK)

	// No token at all.
	e.request(t, http.MethodGet, "/v1/products", "", nil, http.StatusUnauthorized)
}
