package handler

import (
	"net/http"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/apierror"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Create godoc
// @Summary      Create a product
// @Description  Category and supplier must exist; SKU must be unique.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ProductRequest true "Product"
// @Success      200 {object} dto.ProductResponse
// @Failure      400 {object} apierror.APIError
// @Failure      422 {object} apierror.ValidationError
// @Router       /api/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary   List products, newest first
// @Tags      products
// @Produce   json
// @Security  BearerAuth
// @Param     search      query string false "Case-insensitive substring of name or SKU"
// @Param     category_id query int    false "Exact category"
// @Param     supplier_id query int    false "Exact supplier"
// @Success   200 {array} dto.ProductResponse
// @Router    /api/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get GET /api/products/:id
func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Replace a product
// @Description  Whole-record replace, quantity included. SKU and references are not re-checked.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                true "Product ID"
// @Param        body body dto.ProductRequest true "Product"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/products/{id} [put]
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /api/products/:id
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.NewMessage("Product deleted"))
}
