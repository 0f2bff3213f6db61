package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/infra"
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: status %d", e.Code)
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Detail)
}

// ForwardedForHeader carries the browser's address on UI → API auth calls.
const ForwardedForHeader = "X-Forwarded-For"

// IsTooManyRequests reports whether the API rejected the call with 429.
func IsTooManyRequests(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusTooManyRequests
}

// IsTransport reports whether err means the API could not be reached at all
// (connection failure, timeout or open breaker) rather than answering with an
// error status.
func IsTransport(err error) bool {
	var se *StatusError
	return err != nil && !errors.As(err, &se)
}

// APIClient calls the JSON API on behalf of the UI, forwarding the user's
// bearer token. Transport failures and 5xx answers count against a circuit
// breaker; 4xx answers do not.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *infra.CircuitBreaker
}

func NewAPIClient(baseURL string, timeout time.Duration, breaker *infra.CircuitBreaker) *APIClient {
	if breaker == nil {
		breaker = infra.NewCircuitBreaker(infra.DefaultCBConfig("ui-api"))
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

// ── Auth ──────────────────────────────────────────────────────────────────────

// Login posts form-encoded credentials and returns the access token.
// clientIP is the browser's address, forwarded so the API's login limiter
// counts attempts per browser rather than per UI process.
func (c *APIClient) Login(ctx context.Context, username, password, clientIP string) (string, error) {
	var out dto.LoginResponse
	form := url.Values{"username": {username}, "password": {password}}
	if err := c.postForm(ctx, "/auth/login", form, clientIP, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *APIClient) Register(ctx context.Context, username, password, clientIP string) error {
	form := url.Values{"username": {username}, "password": {password}}
	return c.postForm(ctx, "/auth/register", form, clientIP, nil)
}

// ── Categories / Suppliers ────────────────────────────────────────────────────

func (c *APIClient) ListCategories(ctx context.Context, token, search string) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/categories"+query("search", search), token, nil, &out)
	return out, err
}

func (c *APIClient) CreateCategory(ctx context.Context, token, name string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/categories", token, dto.CatalogRequest{Name: name}, nil)
}

func (c *APIClient) UpdateCategory(ctx context.Context, token string, id uint, name string) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), token, dto.CatalogRequest{Name: name}, nil)
}

func (c *APIClient) DeleteCategory(ctx context.Context, token string, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), token, nil, nil)
}

func (c *APIClient) ListSuppliers(ctx context.Context, token, search string) ([]dto.SupplierResponse, error) {
	var out []dto.SupplierResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/suppliers"+query("search", search), token, nil, &out)
	return out, err
}

func (c *APIClient) CreateSupplier(ctx context.Context, token, name string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/suppliers", token, dto.CatalogRequest{Name: name}, nil)
}

func (c *APIClient) UpdateSupplier(ctx context.Context, token string, id uint, name string) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/suppliers/%d", id), token, dto.CatalogRequest{Name: name}, nil)
}

func (c *APIClient) DeleteSupplier(ctx context.Context, token string, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/suppliers/%d", id), token, nil, nil)
}

// ── Products ──────────────────────────────────────────────────────────────────

func (c *APIClient) ListProducts(ctx context.Context, token string, f dto.ProductFilter) ([]dto.ProductResponse, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.CategoryID != 0 {
		q.Set("category_id", strconv.FormatUint(uint64(f.CategoryID), 10))
	}
	if f.SupplierID != 0 {
		q.Set("supplier_id", strconv.FormatUint(uint64(f.SupplierID), 10))
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []dto.ProductResponse
	err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

func (c *APIClient) CreateProduct(ctx context.Context, token string, req dto.ProductRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/products", token, req, nil)
}

func (c *APIClient) UpdateProduct(ctx context.Context, token string, id uint, req dto.ProductRequest) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), token, req, nil)
}

func (c *APIClient) DeleteProduct(ctx context.Context, token string, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), token, nil, nil)
}

// ── Sales ─────────────────────────────────────────────────────────────────────

func (c *APIClient) ListSales(ctx context.Context, token string) ([]dto.SaleResponse, error) {
	var out []dto.SaleResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/sales", token, nil, &out)
	return out, err
}

func (c *APIClient) CreateSale(ctx context.Context, token string, req dto.SaleRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/sales", token, req, nil)
}

func (c *APIClient) UpdateSale(ctx context.Context, token string, id uint, req dto.SaleRequest) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/sales/%d", id), token, req, nil)
}

func (c *APIClient) DeleteSale(ctx context.Context, token string, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/sales/%d", id), token, nil, nil)
}

// ── Transport ─────────────────────────────────────────────────────────────────

func query(key, value string) string {
	if value == "" {
		return ""
	}
	return "?" + url.Values{key: {value}}.Encode()
}

func (c *APIClient) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal body: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.send(req, out)
}

func (c *APIClient) postForm(ctx context.Context, path string, form url.Values, clientIP string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if clientIP != "" {
		req.Header.Set(ForwardedForHeader, clientIP)
	}
	return c.send(req, out)
}

func (c *APIClient) send(req *http.Request, out any) error {
	var statusErr *StatusError
	err := c.breaker.Execute(func() error {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			statusErr = &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
			if resp.StatusCode >= 500 {
				return statusErr
			}
			return nil
		}
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if statusErr != nil {
		return statusErr
	}
	return nil
}

func readDetail(body io.Reader) string {
	var e struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&e)
	return e.Detail
}
