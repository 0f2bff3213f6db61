// Package ui serves the HTML pages under /ui. Every page talks to the JSON
// API over HTTP with the bearer token kept in the access_token cookie.
package ui

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	CookieName  = "access_token"
	tokenCtxKey = "ui_token"
	loginPath   = "/ui/login"
)

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type Handler struct {
	api          *APIClient
	tokens       middleware.TokenParser
	cookieSecure bool
	cookieMaxAge int
}

// NewHandler wires the UI. cookieMaxAge is in seconds and should match the
// token lifetime.
func NewHandler(api *APIClient, tokens middleware.TokenParser, cookieSecure bool, cookieMaxAge int) *Handler {
	return &Handler{api: api, tokens: tokens, cookieSecure: cookieSecure, cookieMaxAge: cookieMaxAge}
}

// Register mounts every /ui route on g.
func (h *Handler) Register(g *gin.RouterGroup) {
	g.GET("/login", h.LoginPage)
	g.POST("/login", h.Login)
	g.GET("/register", h.RegisterPage)
	g.POST("/register", h.RegisterUser)
	g.POST("/logout", h.Logout)

	p := g.Group("", h.RequireUser())
	p.GET("/categories", h.Categories)
	p.POST("/categories/add", h.AddCategory)
	p.POST("/categories/update/:id", h.UpdateCategory)
	p.POST("/categories/delete/:id", h.DeleteCategory)

	p.GET("/suppliers", h.Suppliers)
	p.POST("/suppliers/add", h.AddSupplier)
	p.POST("/suppliers/update/:id", h.UpdateSupplier)
	p.POST("/suppliers/delete/:id", h.DeleteSupplier)

	p.GET("/products", h.Products)
	p.POST("/products/add", h.AddProduct)
	p.POST("/products/update/:id", h.UpdateProduct)
	p.POST("/products/delete/:id", h.DeleteProduct)

	p.GET("/sales", h.Sales)
	p.POST("/sales/add", h.AddSale)
	p.POST("/sales/update/:id", h.UpdateSale)
	p.POST("/sales/delete/:id", h.DeleteSale)
}

// RequireUser redirects to the login page unless the cookie holds a valid token.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		if _, err := h.tokens.Parse(token); err != nil {
			h.clearCookie(c)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Set(tokenCtxKey, token)
		c.Next()
	}
}

func (h *Handler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", h.cookieSecure, true)
}

func token(c *gin.Context) string { return c.GetString(tokenCtxKey) }

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// optionalUint parses a form or query value; empty or malformed input is 0.
func optionalUint(s string) uint {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// logFailure records a failed API call made on behalf of a page.
func logFailure(c *gin.Context, action string, err error) {
	log.Warn().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("action", action).
		Msg("ui api call failed")
}

// renderUnavailable answers an add action whose API call never got a response.
func renderUnavailable(c *gin.Context, back string) {
	c.HTML(http.StatusBadGateway, "error.html", gin.H{
		"Title":   "Service unavailable",
		"Message": "The inventory API could not be reached. Please try again.",
		"Back":    back,
	})
}
