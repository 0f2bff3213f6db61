package handler

import (
	"net/http"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler { return &ReportsHandler{svc: svc} }

// Inventory godoc
// @Summary   Products with category and supplier names
// @Tags      reports
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} dto.ReportResponse[dto.InventoryReportRow]
// @Router    /api/reports/inventory [get]
func (h *ReportsHandler) Inventory(c *gin.Context) {
	resp, err := h.svc.Inventory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InventoryPDF godoc
// @Summary   Inventory report as PDF
// @Tags      reports
// @Produce   application/pdf
// @Security  BearerAuth
// @Success   200 {file} binary
// @Router    /api/reports/inventory.pdf [get]
func (h *ReportsHandler) InventoryPDF(c *gin.Context) {
	doc, err := h.svc.InventoryPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="inventory.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Sales godoc
// @Summary   Raw sale rows
// @Tags      reports
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} dto.ReportResponse[dto.SalesReportRow]
// @Router    /api/reports/sales [get]
func (h *ReportsHandler) Sales(c *gin.Context) {
	resp, err := h.svc.Sales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
