package handler

import (
	"net/http"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/apierror"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Create godoc
// @Summary      Record a sale
// @Description  Decrements the product's stock and records the sale in one transaction.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaleRequest true "Sale"
// @Success      200 {object} dto.SaleResponse
// @Failure      400 {object} apierror.APIError "Insufficient stock"
// @Failure      404 {object} apierror.APIError "Product not found"
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.SaleRequest
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
// @Summary   List sales, newest first, with current product name and price
// @Tags      sales
// @Produce   json
// @Security  BearerAuth
// @Success   200 {array} dto.SaleResponse
// @Router    /api/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get GET /api/sales/:id
func (h *SalesHandler) Get(c *gin.Context) {
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
// @Summary      Change a sale's product or quantity
// @Description  Returns the old quantity to its product, then takes the new quantity from the target product.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int             true "Sale ID"
// @Param        body body dto.SaleRequest true "Sale"
// @Success      200 {object} dto.SaleResponse
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /api/sales/{id} [put]
func (h *SalesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SaleRequest
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

// Delete godoc
// @Summary   Delete a sale and return its quantity to stock
// @Tags      sales
// @Produce   json
// @Security  BearerAuth
// @Param     id path int true "Sale ID"
// @Success   200 {object} apierror.Message
// @Failure   404 {object} apierror.APIError
// @Router    /api/sales/{id} [delete]
func (h *SalesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.NewMessage("Sale deleted"))
}
