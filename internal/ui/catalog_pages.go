package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ── Categories ────────────────────────────────────────────────────────────────

func (h *Handler) Categories(c *gin.Context) {
	search := c.Query("search")
	list, err := h.api.ListCategories(c.Request.Context(), token(c), search)
	if err != nil {
		logFailure(c, "list categories", err)
		list = nil
	}
	c.HTML(http.StatusOK, "catalog.html", gin.H{
		"Title":  "Categories",
		"Base":   "/ui/categories",
		"Items":  list,
		"Search": search,
	})
}

func (h *Handler) AddCategory(c *gin.Context) {
	if err := h.api.CreateCategory(c.Request.Context(), token(c), c.PostForm("name")); err != nil {
		logFailure(c, "add category", err)
		if IsTransport(err) {
			renderUnavailable(c, "/ui/categories")
			return
		}
	}
	c.Redirect(http.StatusFound, "/ui/categories")
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	if id, ok := pathID(c); ok {
		if err := h.api.UpdateCategory(c.Request.Context(), token(c), id, c.PostForm("name")); err != nil {
			logFailure(c, "update category", err)
		}
	}
	c.Redirect(http.StatusFound, "/ui/categories")
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if id, ok := pathID(c); ok {
		if err := h.api.DeleteCategory(c.Request.Context(), token(c), id); err != nil {
			logFailure(c, "delete category", err)
		}
	}
	c.Redirect(http.StatusFound, "/ui/categories")
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (h *Handler) Suppliers(c *gin.Context) {
	search := c.Query("search")
	list, err := h.api.ListSuppliers(c.Request.Context(), token(c), search)
	if err != nil {
		logFailure(c, "list suppliers", err)
		list = nil
	}
	c.HTML(http.StatusOK, "catalog.html", gin.H{
		"Title":  "Suppliers",
		"Base":   "/ui/suppliers",
		"Items":  list,
		"Search": search,
	})
}

func (h *Handler) AddSupplier(c *gin.Context) {
	if err := h.api.CreateSupplier(c.Request.Context(), token(c), c.PostForm("name")); err != nil {
		logFailure(c, "add supplier", err)
		if IsTransport(err) {
			renderUnavailable(c, "/ui/suppliers")
			return
		}
	}
	c.Redirect(http.StatusFound, "/ui/suppliers")
}

func (h *Handler) UpdateSupplier(c *gin.Context) {
	if id, ok := pathID(c); ok {
		if err := h.api.UpdateSupplier(c.Request.Context(), token(c), id, c.PostForm("name")); err != nil {
			logFailure(c, "update supplier", err)
		}
	}
	c.Redirect(http.StatusFound, "/ui/suppliers")
}

func (h *Handler) DeleteSupplier(c *gin.Context) {
	if id, ok := pathID(c); ok {
		if err := h.api.DeleteSupplier(c.Request.Context(), token(c), id); err != nil {
			logFailure(c, "delete supplier", err)
		}
	}
	c.Redirect(http.StatusFound, "/ui/suppliers")
}
