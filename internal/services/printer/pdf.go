package printer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// PDF receipt geometry, sized for an 80mm thermal roll
const (
	pdfPageWidth  = 80.0
	pdfMargin     = 4.0
	pdfLineHeight = 3.6
	pdfQRSize     = 22.0
)

// RenderPDF renders the receipt as a PDF for previewing or archiving. The
// body is the same fixed-width text the ESC/POS path prints, followed by a
// QR code carrying the order number for pickup lookups.
func RenderPDF(order *models.Order, shop ShopInfo, copy Copy) ([]byte, error) {
	lines := strings.Split(strings.TrimRight(RenderText(order, shop, copy), "\n"), "\n")

	// Page height depends on receipt length
	height := pdfMargin*2 + float64(len(lines))*pdfLineHeight + pdfQRSize + pdfLineHeight*3

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: pdfPageWidth, Ht: height},
	})
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Courier keeps the 32-column alignment intact
	pdf.SetFont("Courier", "", 8)

	y := pdfMargin
	for _, line := range lines {
		pdf.SetXY(pdfMargin, y)
		pdf.CellFormat(pdfPageWidth-pdfMargin*2, pdfLineHeight, line, "", 0, "L", false, 0, "")
		y += pdfLineHeight
	}

	// QR code with the order number for quick lookup at pickup
	qrContent := fmt.Sprintf("NOTA/%d", order.OrderNumber)
	qrPng, err := qrcode.Encode(qrContent, qrcode.Low, 256)
	if err != nil {
		return nil, err
	}

	imgOptions := gofpdf.ImageOptions{
		ImageType: "PNG",
		ReadDpi:   true,
	}
	reader := bytes.NewReader(qrPng)
	_ = pdf.RegisterImageOptionsReader("qr_order", imgOptions, reader)

	qrX := (pdfPageWidth - pdfQRSize) / 2
	pdf.ImageOptions("qr_order", qrX, y+pdfLineHeight, pdfQRSize, pdfQRSize, false, imgOptions, 0, "")

	pdf.SetXY(pdfMargin, y+pdfLineHeight+pdfQRSize)
	pdf.SetFontSize(7)
	pdf.CellFormat(pdfPageWidth-pdfMargin*2, pdfLineHeight, fmt.Sprintf("Nota #%d", order.OrderNumber), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
