//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/config"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/infra"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func detail(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, resp, &body)
	return body.Detail
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx,
		"postgres:16-alpine",
		tcPostgres.WithDatabase("inventory_test"),
		tcPostgres.WithUsername("inventory"),
		tcPostgres.WithPassword("inventory"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase(pgURL, false)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(ctx, rdURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	// The UI calls back into the same server, so its address must be known
	// before the router is built.
	srv := httptest.NewUnstartedServer(nil)
	cfg := &config.Config{
		Port:                    8000,
		Env:                     "test",
		DatabaseURL:             pgURL,
		RedisURL:                rdURL,
		JWTSecret:               "test-secret-key",
		JWTExpirationHours:      1,
		BcryptCost:              4,
		LoginRateLimit:          100,
		APIBaseURL:              "http://" + srv.Listener.Addr().String(),
		UIRequestTimeoutSeconds: 5,
	}
	srv.Config.Handler = router.New(cfg, db, rdb)
	srv.Start()
	t.Cleanup(srv.Close)

	creds := map[string]string{"username": "alice", "password": "s3cret"}
	resp := do(t, srv, http.MethodPost, "/auth/register", jsonBody(t, creds), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodPost, "/auth/login", jsonBody(t, creds), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeJSON(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)
	require.Equal(t, "bearer", login.TokenType)

	return &testEnv{server: srv, token: login.AccessToken}
}

type product struct {
	ID         uint    `json:"id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	CategoryID uint    `json:"category_id"`
	SupplierID uint    `json:"supplier_id"`
}

func (env *testEnv) createWidget(t *testing.T, sku string, qty int) product {
	t.Helper()
	suffix := strings.ToLower(sku)

	var cat, sup struct {
		ID uint `json:"id"`
	}
	resp := do(t, env.server, http.MethodPost, "/api/categories", jsonBody(t, map[string]any{"name": "Tools " + suffix}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &cat)

	resp = do(t, env.server, http.MethodPost, "/api/suppliers", jsonBody(t, map[string]any{"name": "Acme " + suffix}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &sup)

	resp = do(t, env.server, http.MethodPost, "/api/products", jsonBody(t, map[string]any{
		"name": "Widget", "sku": sku, "price": 100, "quantity": qty,
		"category_id": cat.ID, "supplier_id": sup.ID,
	}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p product
	decodeJSON(t, resp, &p)
	return p
}

func (env *testEnv) quantity(t *testing.T, id uint) int {
	t.Helper()
	resp := do(t, env.server, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p product
	decodeJSON(t, resp, &p)
	return p.Quantity
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_Auth(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/auth/login",
		jsonBody(t, map[string]string{"username": "alice", "password": "wrong"}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/api/categories", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/auth/me", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me struct {
		Username string `json:"username"`
	}
	decodeJSON(t, resp, &me)
	assert.Equal(t, "alice", me.Username)

	resp = do(t, env.server, http.MethodPost, "/auth/register",
		jsonBody(t, map[string]string{"username": "alice", "password": "other"}), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", detail(t, resp))
}

func TestE2E_SaleLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	p := env.createWidget(t, "W-1", 10)

	resp := do(t, env.server, http.MethodPost, "/api/sales",
		jsonBody(t, map[string]any{"product_id": p.ID, "quantity_sold": 3}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sale struct {
		ID          uint   `json:"id"`
		ProductName string `json:"product_name"`
	}
	decodeJSON(t, resp, &sale)
	assert.Equal(t, "Widget", sale.ProductName)
	assert.Equal(t, 7, env.quantity(t, p.ID))

	resp = do(t, env.server, http.MethodPost, "/api/sales",
		jsonBody(t, map[string]any{"product_id": p.ID, "quantity_sold": 20}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Insufficient stock", detail(t, resp))
	assert.Equal(t, 7, env.quantity(t, p.ID))

	// update: restore 3 then take 5
	resp = do(t, env.server, http.MethodPut, fmt.Sprintf("/api/sales/%d", sale.ID),
		jsonBody(t, map[string]any{"product_id": p.ID, "quantity_sold": 5}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 5, env.quantity(t, p.ID))

	// failing update rolls back the restore as well
	resp = do(t, env.server, http.MethodPut, fmt.Sprintf("/api/sales/%d", sale.ID),
		jsonBody(t, map[string]any{"product_id": p.ID, "quantity_sold": 11}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 5, env.quantity(t, p.ID))

	resp = do(t, env.server, http.MethodDelete, fmt.Sprintf("/api/sales/%d", sale.ID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 10, env.quantity(t, p.ID))

	resp = do(t, env.server, http.MethodGet, fmt.Sprintf("/api/sales/%d", sale.ID), nil, env.token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_ConcurrentSalesNeverOversell(t *testing.T) {
	env := setupTestEnv(t)
	p := env.createWidget(t, "RACE-1", 10)

	const workers = 12
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, _ := json.Marshal(map[string]any{"product_id": p.ID, "quantity_sold": 2})
			req, _ := http.NewRequest(http.MethodPost, env.server.URL+"/api/sales", bytes.NewReader(b))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+env.token)
			resp, err := env.server.Client().Do(req)
			if err != nil {
				return
			}
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 0, env.quantity(t, p.ID))
}

func TestE2E_CatalogConflictsAndReports(t *testing.T) {
	env := setupTestEnv(t)
	p := env.createWidget(t, "REP-1", 4)

	resp := do(t, env.server, http.MethodPost, "/api/categories", jsonBody(t, map[string]any{"name": "TOOLS REP-1"}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Category already exists", detail(t, resp))

	resp = do(t, env.server, http.MethodPost, "/api/products", jsonBody(t, map[string]any{
		"name": "Gadget", "sku": "rep-1", "price": 1, "quantity": 1, "category_id": 1, "supplier_id": 1,
	}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodPost, "/api/products", jsonBody(t, map[string]any{
		"name": "Gadget", "sku": "G-1", "price": 1, "quantity": 1, "category_id": 9999, "supplier_id": 1,
	}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid category", detail(t, resp))

	resp = do(t, env.server, http.MethodGet, "/api/reports/inventory", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv struct {
		Count int `json:"count"`
		Data  []struct {
			ID       uint   `json:"id"`
			Category string `json:"category"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &inv)
	require.Equal(t, 1, inv.Count)
	assert.Equal(t, p.ID, inv.Data[0].ID)
	assert.Equal(t, "Tools rep-1", inv.Data[0].Category)

	resp = do(t, env.server, http.MethodGet, "/api/reports/inventory.pdf", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()
}

func (env *testEnv) inventoryIDs(t *testing.T) []uint {
	t.Helper()
	resp := do(t, env.server, http.MethodGet, "/api/reports/inventory", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv struct {
		Count int `json:"count"`
		Data  []struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &inv)
	require.Equal(t, len(inv.Data), inv.Count)
	ids := make([]uint, 0, len(inv.Data))
	for _, row := range inv.Data {
		ids = append(ids, row.ID)
	}
	return ids
}

func (env *testEnv) product(t *testing.T, id uint) product {
	t.Helper()
	resp := do(t, env.server, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p product
	decodeJSON(t, resp, &p)
	return p
}

func TestE2E_DeletedCatalogEntriesLeaveDanglingProducts(t *testing.T) {
	env := setupTestEnv(t)
	byCategory := env.createWidget(t, "DANGLE-C", 2)
	bySupplier := env.createWidget(t, "DANGLE-S", 2)
	require.ElementsMatch(t, []uint{byCategory.ID, bySupplier.ID}, env.inventoryIDs(t))

	resp := do(t, env.server, http.MethodDelete, fmt.Sprintf("/api/categories/%d", byCategory.CategoryID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	got := env.product(t, byCategory.ID)
	assert.Equal(t, byCategory.CategoryID, got.CategoryID)
	assert.Equal(t, []uint{bySupplier.ID}, env.inventoryIDs(t))

	resp = do(t, env.server, http.MethodDelete, fmt.Sprintf("/api/suppliers/%d", bySupplier.SupplierID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	got = env.product(t, bySupplier.ID)
	assert.Equal(t, bySupplier.SupplierID, got.SupplierID)
	assert.Empty(t, env.inventoryIDs(t))

	// both still show up in the plain product listing
	resp = do(t, env.server, http.MethodGet, "/api/products", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []product
	decodeJSON(t, resp, &all)
	assert.Len(t, all, 2)
}

func TestE2E_UILoginAndPages(t *testing.T) {
	env := setupTestEnv(t)
	env.createWidget(t, "UI-1", 3)

	client := env.server.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	resp, err := client.PostForm(env.server.URL+"/ui/login", url.Values{"username": {"alice"}, "password": {"s3cret"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/ui/products", nil)
	req.AddCookie(cookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	assert.Contains(t, body.String(), "UI-1")
}
