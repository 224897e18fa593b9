package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/odyssey-erp/stockledger/internal/shared"
)

const (
	fontFamily  = "Helvetica"
	lineHeight  = 6.0
	blockHeight = 7*lineHeight + 3
)

// FPDFRenderer lays the report out locally with fpdf.
type FPDFRenderer struct {
	Title string
}

// NewFPDFRenderer returns a renderer that prints title on the first page.
func NewFPDFRenderer(title string) *FPDFRenderer {
	return &FPDFRenderer{Title: title}
}

// Render implements Renderer.
func (r *FPDFRenderer) Render(ctx context.Context, rep Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pdf := r.document(rep)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *FPDFRenderer) title() string {
	if r.Title == "" {
		return "Sales Report"
	}
	return r.Title
}

func (r *FPDFRenderer) document(rep Report) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.title(), true)
	pdf.SetCreator("stockledger", true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	line := func(text string) {
		pdf.CellFormat(0, lineHeight, tr(text), "", 1, "L", false, 0, "")
	}

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 10, tr(r.title()), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(fontFamily, "", 11)
	line(fmt.Sprintf("Date range: %s to %s", rep.StartDate.Format(dateLayout), rep.EndDate.Format(dateLayout)))
	line("Total Revenue: $" + shared.FormatCurrency(rep.TotalRevenue))
	line(fmt.Sprintf("Total Items Sold: %d", rep.TotalItemsSold))
	line("Total Profit: $" + shared.FormatCurrency(rep.TotalProfit))
	line(fmt.Sprintf("Total Sales: %d", rep.TotalSales))
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 13)
	line("Sales Details")
	pdf.Ln(1)

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i, d := range rep.SalesDetails {
		// keep each sale on a single page
		if pdf.GetY()+blockHeight > pageHeight-bottom {
			pdf.AddPage()
		}
		pdf.SetFont(fontFamily, "B", 11)
		line(fmt.Sprintf("%d. %s", i+1, d.ProductName))
		pdf.SetFont(fontFamily, "", 10)
		line(fmt.Sprintf("Quantity: %d", d.Quantity))
		line("Buying Price: $" + shared.FormatCurrency(d.BuyingPrice))
		line("Sales Price: $" + shared.FormatCurrency(d.SalesPrice))
		line("Total Price: $" + shared.FormatCurrency(d.TotalPrice))
		line("Profit: $" + shared.FormatCurrency(d.Profit))
		line("Date: " + d.SaleDate.UTC().Format("2006-01-02 15:04:05 UTC"))
		pdf.Ln(3)
	}
	return pdf
}
