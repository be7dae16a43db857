package printer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/shopspring/decimal"
)

// Receipts target 32-column thermal paper. The column widths mirror the
// layout the shop's Bluetooth printer has always used.
const (
	paperWidth = 32
	labelWidth = 15

	qtyColWidth  = 5
	descColWidth = 15
)

// Copy selects which rendition of the receipt is produced
type Copy string

const (
	CopyCustomer Copy = "customer" // handed to the customer
	CopyOwner    Copy = "owner"    // kept by the shop
)

// ShopInfo is the header identity printed on every receipt
type ShopInfo struct {
	Name    string
	Address string
}

var divider = strings.Repeat("=", paperWidth)

// RenderText renders the receipt as fixed-width text, one line per print
// command, ready to be streamed to an ESC/POS device.
func RenderText(order *models.Order, shop ShopInfo, copy Copy) string {
	var b strings.Builder

	if copy == CopyOwner {
		b.WriteString(center("SALINAN UNTUK OWNER") + "\n")
	}
	b.WriteString(center(shop.Name) + "\n")
	for _, line := range wrap(shop.Address, paperWidth) {
		b.WriteString(center(line) + "\n")
	}
	b.WriteString(divider + "\n")

	b.WriteString(twoCol("Customer", order.CustomerName) + "\n")
	b.WriteString(twoCol("Telp", orDash(order.Phone)) + "\n")
	b.WriteString(twoCol("Tanggal Masuk", formatDate(order.InDate)) + "\n")
	b.WriteString(twoCol("Tanggal Keluar", formatDate(order.OutDate)) + "\n")
	b.WriteString(divider + "\n")

	b.WriteString("Pesanan:\n")
	for _, item := range order.Items {
		desc := fmt.Sprintf("%skg %s", item.Weight.String(), item.Service)
		b.WriteString(threeCol("1x", desc, formatRupiah(item.Price)) + "\n")
		if item.Note != "" {
			b.WriteString("  - " + item.Note + "\n")
		}
	}
	b.WriteString(divider + "\n")

	if copy == CopyOwner {
		b.WriteString(twoCol("Total", formatRupiah(order.Total)) + "\n")
		b.WriteString("\n" + center("Dicetak oleh sistem Laundry") + "\n")
		return b.String()
	}

	subtotal := order.Total.Add(order.Discount)
	b.WriteString(twoCol("Subtotal", formatRupiah(subtotal)) + "\n")
	if order.Discount.GreaterThan(decimal.Zero) {
		b.WriteString(twoCol("Diskon", formatRupiah(order.Discount)) + "\n")
	}
	b.WriteString(twoCol("Total", formatRupiah(order.Total)) + "\n")
	b.WriteString("\nMetode Bayar: " + string(order.Payment) + "\n")

	b.WriteString("\n")
	for _, line := range wrap("Terima kasih telah menggunakan layanan kami.", paperWidth) {
		b.WriteString(center(line) + "\n")
	}
	return b.String()
}

// formatRupiah formats a whole-rupiah amount with id-ID thousands dots,
// e.g. 22500 -> "Rp22.500".
func formatRupiah(amount decimal.Decimal) string {
	s := amount.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "Rp" + strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// formatDate prints d/m/yyyy, "-" when the date is unset
func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Column math counts runes, not bytes: accented shop names and customer
// names occupy one printer cell per character.

// truncate cuts s down to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// center pads a line to the paper width. Lines longer than the paper are
// returned as-is; the printer wraps them.
func center(s string) string {
	w := utf8.RuneCountInString(s)
	if w >= paperWidth {
		return s
	}
	pad := (paperWidth - w) / 2
	return strings.Repeat(" ", pad) + s
}

// twoCol prints a left-aligned label and a right-aligned value
func twoCol(label, value string) string {
	label = truncate(label, labelWidth)
	value = truncate(value, paperWidth-labelWidth)
	gap := paperWidth - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	return label + strings.Repeat(" ", gap) + value
}

// threeCol prints quantity, description and a right-aligned price
func threeCol(qty, desc, price string) string {
	qty = truncate(qty, qtyColWidth)
	desc = truncate(desc, descColWidth)
	rest := paperWidth - qtyColWidth - descColWidth
	price = truncate(price, rest)
	return qty + strings.Repeat(" ", qtyColWidth-utf8.RuneCountInString(qty)) +
		desc + strings.Repeat(" ", descColWidth-utf8.RuneCountInString(desc)) +
		strings.Repeat(" ", rest-utf8.RuneCountInString(price)) + price
}

// wrap splits text into lines no longer than width runes, breaking on spaces
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
