package message

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cantacomigo/zapmenu/model"
)

// ReceiptWidth is the column budget of the thermal printers the receipt
// targets.
const ReceiptWidth = 40

// PadText lays a left and a right fragment out on one receipt line, filling
// the gap with fill so the line is exactly width characters. When the two
// fragments do not fit, the line degrades to their concatenation truncated
// to width instead of failing.
func PadText(left, right string, fill rune, width int) string {
	leftLen := utf8.RuneCountInString(left)
	rightLen := utf8.RuneCountInString(right)
	if leftLen+rightLen >= width {
		return truncate(left+right, width)
	}
	return left + strings.Repeat(string(fill), width-leftLen-rightLen) + right
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

// Receipt renders the fixed-width printable ticket for an order. Unlike the
// chat message, addon prices are itemized row by row here.
func Receipt(restaurant model.Restaurant, order model.Order) string {
	separator := strings.Repeat("-", ReceiptWidth)
	doubleSeparator := strings.Repeat("=", ReceiptWidth)

	var lines []string
	lines = append(lines,
		truncate(restaurant.Name, ReceiptWidth),
		"Pedido "+OrderRef(order),
		order.CreatedAt.Format(timeLayout),
	)
	if order.ScheduledTime != nil {
		lines = append(lines, "Agendado para "+order.ScheduledTime.Format(timeLayout))
	}

	lines = append(lines, separator,
		truncate("Cliente: "+order.CustomerName, ReceiptWidth),
		truncate("Telefone: "+order.CustomerPhone, ReceiptWidth),
		truncate("Endereço: "+order.CustomerAddress, ReceiptWidth),
		separator,
	)

	for _, item := range order.Items {
		qty := float64(item.Quantity)
		label := fmt.Sprintf("%dx %s", item.Quantity, item.Name)
		lines = append(lines, PadText(label, FormatBRL(item.UnitPrice*qty), ' ', ReceiptWidth))
		for _, addon := range item.Addons {
			lines = append(lines, PadText("  + "+addon.Name, FormatBRL(addon.Price*qty), ' ', ReceiptWidth))
		}
	}

	lines = append(lines, separator,
		PadText("SUBTOTAL:", FormatBRL(order.Subtotal()), ' ', ReceiptWidth))
	if restaurant.DeliveryFee > 0 {
		lines = append(lines, PadText("ENTREGA:", FormatBRL(restaurant.DeliveryFee), ' ', ReceiptWidth))
	}
	lines = append(lines, doubleSeparator,
		PadText("TOTAL GERAL:", FormatBRL(order.Total), ' ', ReceiptWidth))
	if change, ok := changeDue(order); ok && change > 0 {
		lines = append(lines, PadText("TROCO PARA:", FormatBRL(change), ' ', ReceiptWidth))
	}
	lines = append(lines, separator,
		"Pagamento: "+order.PaymentMethod.Label())

	return strings.Join(lines, "\n")
}
