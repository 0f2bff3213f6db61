package handler

import (
	"net/http"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/apierror"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// Create godoc
// @Summary   Create a category
// @Tags      categories
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body dto.CatalogRequest true "Category"
// @Success   201 {object} dto.CategoryResponse
// @Failure   400 {object} apierror.APIError
// @Failure   422 {object} apierror.ValidationError
// @Router    /api/categories [post]
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CatalogRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary   List categories, newest first
// @Tags      categories
// @Produce   json
// @Security  BearerAuth
// @Param     search query string false "Case-insensitive name substring"
// @Success   200 {array} dto.CategoryResponse
// @Router    /api/categories [get]
func (h *CategoriesHandler) List(c *gin.Context) {
	var filter dto.CatalogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get GET /api/categories/:id
func (h *CategoriesHandler) Get(c *gin.Context) {
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
// @Summary   Rename a category
// @Tags      categories
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path int                true "Category ID"
// @Param     body body dto.CatalogRequest true "Category"
// @Success   200 {object} dto.CategoryResponse
// @Failure   404 {object} apierror.APIError
// @Router    /api/categories/{id} [put]
func (h *CategoriesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CatalogRequest
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
// @Summary   Delete a category
// @Tags      categories
// @Produce   json
// @Security  BearerAuth
// @Param     id path int true "Category ID"
// @Success   200 {object} apierror.Message
// @Failure   404 {object} apierror.APIError
// @Router    /api/categories/{id} [delete]
func (h *CategoriesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.NewMessage("Category deleted successfully"))
}
