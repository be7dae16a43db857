package printer

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/shopspring/decimal"
)

var testShop = ShopInfo{
	Name:    "IFA CELL & LAUNDRY",
	Address: "Jl. Bumi Tamalanrea Permai No.18, Makassar",
}

func testOrder() *models.Order {
	in := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	out := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)
	return &models.Order{
		OrderNumber:  17,
		CustomerName: "Budi Santoso",
		Phone:        "081234567890",
		InDate:       &in,
		OutDate:      &out,
		Items: []models.OrderItem{
			{Service: "Cuci Kering", Weight: decimal.NewFromInt(2), Price: decimal.NewFromInt(10000)},
			{Service: "Setrika", Weight: decimal.NewFromInt(1), Price: decimal.NewFromInt(5000), Note: "Jangan pakai pewangi"},
		},
		Subtotal: decimal.NewFromInt(25000),
		Discount: decimal.NewFromInt(2500),
		Total:    decimal.NewFromInt(22500),
		Payment:  models.PaymentCash,
	}
}

func TestRenderTextFitsPaper(t *testing.T) {
	text := RenderText(testOrder(), testShop, CopyCustomer)
	for i, line := range strings.Split(text, "\n") {
		if len(line) > paperWidth {
			t.Errorf("Line %d exceeds %d columns (%d): %q", i, paperWidth, len(line), line)
		}
	}
}

func TestRenderTextCustomerCopy(t *testing.T) {
	text := RenderText(testOrder(), testShop, CopyCustomer)

	if strings.Contains(text, "SALINAN UNTUK OWNER") {
		t.Error("Customer copy must not carry the owner banner")
	}
	for _, want := range []string{
		"IFA CELL & LAUNDRY",
		divider,
		"Budi Santoso",
		"081234567890",
		"1/9/2026",
		"3/9/2026",
		"Pesanan:",
		"2kg Cuci Kering",
		"1kg Setrika",
		"  - Jangan pakai pewangi",
		"Rp25.000",
		"Rp2.500",
		"Rp22.500",
		"Metode Bayar: cash",
		"Terima kasih",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Receipt missing %q:\n%s", want, text)
		}
	}
}

func TestRenderTextSubtotalIsTotalPlusDiscount(t *testing.T) {
	order := testOrder()
	text := RenderText(order, testShop, CopyCustomer)

	// The printed subtotal is reconstructed from total + discount, so the
	// three amounts always agree even if the stored subtotal drifted.
	order.Subtotal = decimal.NewFromInt(999)
	if RenderText(order, testShop, CopyCustomer) != text {
		t.Error("Printed subtotal should not depend on the stored subtotal column")
	}
}

func TestRenderTextDiscountLineOnlyWhenDiscounted(t *testing.T) {
	order := testOrder()
	order.Discount = decimal.Zero
	order.Total = decimal.NewFromInt(25000)

	text := RenderText(order, testShop, CopyCustomer)
	if strings.Contains(text, "Diskon") {
		t.Error("Diskon line printed for an undiscounted order")
	}
	if !strings.Contains(text, "Rp25.000") {
		t.Error("Expected total Rp25.000 on the receipt")
	}
}

func TestRenderTextOwnerCopy(t *testing.T) {
	text := RenderText(testOrder(), testShop, CopyOwner)

	lines := strings.Split(text, "\n")
	if !strings.Contains(lines[0], "SALINAN UNTUK OWNER") {
		t.Errorf("Owner copy must open with the owner banner, got %q", lines[0])
	}
	if !strings.Contains(text, "Dicetak oleh sistem Laundry") {
		t.Error("Owner copy missing the system footer")
	}
	if strings.Contains(text, "Subtotal") || strings.Contains(text, "Terima kasih") {
		t.Error("Owner copy should carry the condensed summary only")
	}
	if !strings.Contains(text, "Rp22.500") {
		t.Error("Owner copy missing the total")
	}
}

func TestRenderTextMissingDates(t *testing.T) {
	order := testOrder()
	order.InDate = nil
	order.OutDate = nil
	order.Phone = ""

	text := RenderText(order, testShop, CopyCustomer)
	for _, label := range []string{"Telp", "Tanggal Masuk", "Tanggal Keluar"} {
		found := false
		for _, line := range strings.Split(text, "\n") {
			if strings.HasPrefix(line, label) && strings.HasSuffix(line, "-") {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %q line to fall back to '-':\n%s", label, text)
		}
	}
}

func TestRenderTextNonASCIIWidths(t *testing.T) {
	shop := ShopInfo{
		Name:    "Café Laundré",
		Address: "Jl. Ménara Kencana No.7, Médan",
	}
	order := testOrder()
	order.CustomerName = "Étienne Müller"
	order.Items = []models.OrderItem{
		{Service: "Séntuhan Wangi", Weight: decimal.NewFromInt(2), Price: decimal.NewFromInt(10000)},
	}

	text := RenderText(order, shop, CopyCustomer)
	for i, line := range strings.Split(text, "\n") {
		if w := utf8.RuneCountInString(line); w > paperWidth {
			t.Errorf("Line %d is %d cells wide (max %d): %q", i, w, paperWidth, line)
		}
	}

	// Two-column lines stay fully justified when the value has accents
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "Customer") {
			if w := utf8.RuneCountInString(line); w != paperWidth {
				t.Errorf("Customer line is %d cells wide, want %d: %q", w, paperWidth, line)
			}
			if !strings.HasSuffix(line, "Étienne Müller") {
				t.Errorf("Customer name mangled: %q", line)
			}
		}
	}

	// Centering measures runes, so an accented name is padded like its
	// ASCII twin of the same length
	if center("Café") != center("Cafe") {
		t.Error("center should pad accented and plain text of equal length identically")
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{2500, "Rp2.500"},
		{22500, "Rp22.500"},
		{1250000, "Rp1.250.000"},
		{-7000, "-Rp7.000"},
	}
	for _, c := range cases {
		if got := formatRupiah(decimal.NewFromInt(c.in)); got != c.want {
			t.Errorf("formatRupiah(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	pdf, err := RenderPDF(testOrder(), testShop, CopyCustomer)
	if err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("RenderPDF returned no bytes")
	}
	if !strings.HasPrefix(string(pdf[:5]), "%PDF-") {
		t.Errorf("Output does not look like a PDF: %q", pdf[:8])
	}
}
