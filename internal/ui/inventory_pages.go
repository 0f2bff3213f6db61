package ui

import (
	"net/http"
	"strconv"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ── Products ──────────────────────────────────────────────────────────────────

func (h *Handler) Products(c *gin.Context) {
	ctx, tok := c.Request.Context(), token(c)
	filter := dto.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: optionalUint(c.Query("category_id")),
		SupplierID: optionalUint(c.Query("supplier_id")),
	}

	// each section degrades to an empty list on its own
	products, err := h.api.ListProducts(ctx, tok, filter)
	if err != nil {
		logFailure(c, "list products", err)
	}
	categories, err := h.api.ListCategories(ctx, tok, "")
	if err != nil {
		logFailure(c, "list categories", err)
	}
	suppliers, err := h.api.ListSuppliers(ctx, tok, "")
	if err != nil {
		logFailure(c, "list suppliers", err)
	}

	c.HTML(http.StatusOK, "products.html", gin.H{
		"Title":      "Products",
		"Products":   products,
		"Categories": categories,
		"Suppliers":  suppliers,
		"Filter":     filter,
	})
}

// productForm reads the product fields posted by the add/update forms.
// Unparseable numbers are sent as zero and left to the API to reject.
func productForm(c *gin.Context) dto.ProductRequest {
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		price = decimal.Zero
	}
	qty, _ := strconv.Atoi(c.PostForm("quantity"))
	return dto.ProductRequest{
		Name:       c.PostForm("name"),
		SKU:        c.PostForm("sku"),
		Price:      price,
		Quantity:   qty,
		CategoryID: optionalUint(c.PostForm("category_id")),
		SupplierID: optionalUint(c.PostForm("supplier_id")),
	}
}

func (h *Handler) AddProduct(c *gin.Context) {
	if err := h.api.CreateProduct(c.Request.Context(), token(c), productForm(c)); err != nil {
		logFailure(c, "add product", err)
		if IsTransport(err) {
			renderUnavailable(c, "/ui/products")
			return
		}
	}
	c.Redirect(http.StatusFound, "/ui/products")
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	if id, ok := pathID(c); ok {
		if err := h.api.UpdateProduct(c.Request.Context(), token(c), id, productForm(c)); err != nil {
			logFailure(c, "update product", err)
		}
	}
	c.Redirect(http.StatusFound, "/ui/products")
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if id, ok := pathID(c); ok {
		if err := h.api.DeleteProduct(c.Request.Context(), token(c), id); err != nil {
			logFailure(c, "delete product", err)
		}
	}
	c.Redirect(http.StatusFound, "/ui/products")
}

// ── Sales ─────────────────────────────────────────────────────────────────────

func (h *Handler) Sales(c *gin.Context) {
	ctx, tok := c.Request.Context(), token(c)

	products, err := h.api.ListProducts(ctx, tok, dto.ProductFilter{})
	if err != nil {
		logFailure(c, "list products", err)
	}
	sales, err := h.api.ListSales(ctx, tok)
	if err != nil {
		logFailure(c, "list sales", err)
	}

	c.HTML(http.StatusOK, "sales.html", gin.H{
		"Title":    "Sales",
		"Sales":    sales,
		"Products": products,
		"Error":    c.Query("error"),
	})
}

func saleForm(c *gin.Context) dto.SaleRequest {
	qty, _ := strconv.Atoi(c.PostForm("quantity_sold"))
	return dto.SaleRequest{
		ProductID:    optionalUint(c.PostForm("product_id")),
		QuantitySold: qty,
	}
}

func (h *Handler) AddSale(c *gin.Context) {
	if err := h.api.CreateSale(c.Request.Context(), token(c), saleForm(c)); err != nil {
		logFailure(c, "add sale", err)
		if IsTransport(err) {
			renderUnavailable(c, "/ui/sales")
			return
		}
	}
	c.Redirect(http.StatusFound, "/ui/sales")
}

func (h *Handler) UpdateSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/ui/sales?error=update_failed")
		return
	}
	if err := h.api.UpdateSale(c.Request.Context(), token(c), id, saleForm(c)); err != nil {
		logFailure(c, "update sale", err)
		c.Redirect(http.StatusFound, "/ui/sales?error=update_failed")
		return
	}
	c.Redirect(http.StatusFound, "/ui/sales")
}

func (h *Handler) DeleteSale(c *gin.Context) {
	if id, ok := pathID(c); ok {
		if err := h.api.DeleteSale(c.Request.Context(), token(c), id); err != nil {
			logFailure(c, "delete sale", err)
		}
	}
	c.Redirect(http.StatusFound, "/ui/sales")
}
