package infra

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"bizpos/internal/model"
)

// ReceiptPDF renders a sale as an 80mm thermal-style ticket.
type ReceiptPDF struct {
	business string
}

func NewReceiptPDF(business string) *ReceiptPDF {
	return &ReceiptPDF{business: business}
}

// Render produces the PDF bytes for one sale. Items must be preloaded
// with their products.
func (r *ReceiptPDF) Render(sale *model.Sale) ([]byte, error) {
	// 80mm wide, height grows with the item count.
	height := 60.0 + float64(len(sale.Items))*5.0
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetMargins(5, 5, 5)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(70, 6, r.business, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(70, 4, sale.SaleDate.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.CellFormat(70, 4, "Sale "+sale.ID.String()[:8], "", 1, "C", false, 0, "")
	if sale.User != nil {
		pdf.CellFormat(70, 4, "Served by "+sale.User.Name, "", 1, "C", false, 0, "")
	}
	if sale.Customer != nil {
		pdf.CellFormat(70, 4, "Customer: "+sale.Customer.FullName(), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(34, 4, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(8, 4, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(14, 4, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(14, 4, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range sale.Items {
		name := "-"
		if item.Product != nil {
			name = item.Product.Name
		}
		if len(name) > 20 {
			name = name[:20]
		}
		pdf.CellFormat(34, 4, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(8, 4, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(14, 4, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(14, 4, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(42, 5, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(28, 5, sale.TotalAmount.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(70, 4, "Thank you for your purchase", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
