package printing

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/diewo77/glasspro/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	pageMargin = 15.0
	qrSize     = 28.0
)

var columns = []struct {
	title string
	width float64
	align string
}{
	{"#", 10, "C"},
	{"Description", 72, "L"},
	{"Size (in)", 28, "C"},
	{"Qty", 20, "R"},
	{"Rate", 25, "R"},
	{"Total", 25, "R"},
}

// DocumentPDF renders the printable invoice or quotation.
// The QR code encodes the document number.
func DocumentPDF(doc models.Document, shop models.Settings, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Number, false)
	pdf.SetCreator(shop.ShopName, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	// shop identity
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(contentW-qrSize, 9, tr(shop.ShopName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentW-qrSize, 5, tr(strings.ToUpper(shop.Tagline)), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(contentW-qrSize, 5, tr(shop.Address), "", 1, "L", false, 0, "")
	contact := "Cell: " + shop.Phone
	if shop.TaxID != "" {
		contact += " | NTN: " + shop.TaxID
	}
	pdf.CellFormat(contentW-qrSize, 5, tr(contact), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	qr, err := qrcode.Encode(doc.Number, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("qr", pageW-pageMargin-qrSize, pageMargin, qrSize, qrSize, false, opts, 0, "")

	// title block
	pdf.SetY(pageMargin + qrSize + 4)
	pdf.SetLineWidth(0.8)
	pdf.Line(pageMargin, pdf.GetY(), pageW-pageMargin, pdf.GetY())
	pdf.Ln(4)
	y := pdf.GetY()
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(contentW/2, 5, "BILL TO", "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(contentW/2, 7, tr(doc.ClientName), "", 2, "L", false, 0, "")
	if doc.ClientEmail != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(contentW/2, 5, tr(doc.ClientEmail), "", 2, "L", false, 0, "")
	}
	pdf.SetXY(pageMargin+contentW/2, y)
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(contentW/2, 8, string(doc.Type), "", 2, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(5, 150, 105)
	pdf.CellFormat(contentW/2, 6, doc.Number, "", 2, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(contentW/2, 5, tr("Date: "+doc.Date), "", 2, "R", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Status: "+string(doc.Status), "", 2, "R", false, 0, "")
	pdf.SetX(pageMargin)
	pdf.Ln(6)

	// line items
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range columns {
		pdf.CellFormat(c.width, 8, c.title, "", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 9)
	for i := range doc.Items {
		item := &doc.Items[i]
		size := "-"
		if w, h := item.Dimensions(); w > 0 && h > 0 {
			size = fmt.Sprintf("%s x %s", Quantity(w), Quantity(h))
		}
		cells := []string{
			fmt.Sprint(i + 1),
			tr(item.Description),
			size,
			Quantity(item.Quantity),
			Money("", item.UnitPrice),
			Money("", item.Total()),
		}
		for j, c := range columns {
			pdf.CellFormat(c.width, 7, cells[j], "B", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	// totals
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 12)
	labelW := contentW - 50
	pdf.CellFormat(labelW, 9, "GRAND TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(50, 9, Money(currency, doc.Amount), "", 1, "R", false, 0, "")

	if shop.InvoiceFooterNotice != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(contentW, 5, "OFFICE NOTICE:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(contentW, 4, tr(shop.InvoiceFooterNotice), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.Number, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
