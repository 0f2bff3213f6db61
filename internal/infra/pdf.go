package infra

// Inventory report export using go-pdf/fpdf.
// A4 portrait table with:
//   - Title and generation timestamp
//   - One row per product (name, SKU, category, supplier, quantity, price)
//   - Footer with product count and total units on hand

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"

	"github.com/go-pdf/fpdf"
)

// WriteInventoryPDF renders rows as a PDF table and writes it to w.
func WriteInventoryPDF(w io.Writer, rows []dto.InventoryReportRow, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	renderInventory(pdf, rows, generatedAt)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write inventory report: %w", err)
	}
	return nil
}

func renderInventory(pdf *fpdf.Fpdf, rows []dto.InventoryReportRow, generatedAt time.Time) {
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	// core fonts are cp1252; user text arrives as UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Inventory Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	cols := []struct {
		title string
		width float64
		align string
	}{
		{"Product", contentW * 0.28, "L"},
		{"SKU", contentW * 0.14, "L"},
		{"Category", contentW * 0.17, "L"},
		{"Supplier", contentW * 0.17, "L"},
		{"Qty", contentW * 0.10, "R"},
		{"Price", contentW * 0.14, "R"},
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range cols {
			ln := 0
			if i == len(cols)-1 {
				ln = 1
			}
			pdf.CellFormat(c.width, 6, c.title, "1", ln, c.align, true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	// ── Rows ─────────────────────────────────────────────────────────────────
	units := 0
	for _, r := range rows {
		if pdf.GetY() > 275 {
			pdf.AddPage()
			header()
		}
		values := []string{
			tr(truncate(r.Name, 32)),
			tr(truncate(r.SKU, 16)),
			tr(truncate(r.Category, 20)),
			tr(truncate(r.Supplier, 20)),
			fmt.Sprintf("%d", r.Quantity),
			r.Price.StringFixed(2),
		}
		for i, c := range cols {
			ln := 0
			if i == len(cols)-1 {
				ln = 1
			}
			pdf.CellFormat(c.width, 5, values[i], "1", ln, c.align, false, 0, "")
		}
		units += r.Quantity
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%d products, %d units on hand", len(rows), units), "", 1, "R", false, 0, "")
}

// truncate shortens s to at most n runes, marking the cut with "..".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-2]) + ".."
}
