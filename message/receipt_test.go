package message

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/cantacomigo/zapmenu/model"
)

func TestPadText(t *testing.T) {
	line := PadText("TOTAL GERAL:", "R$ 68,80", ' ', 40)

	assert.Equal(t, 40, utf8.RuneCountInString(line))
	assert.True(t, strings.HasPrefix(line, "TOTAL GERAL:"))
	assert.True(t, strings.HasSuffix(line, "R$ 68,80"))
	assert.Equal(t, "TOTAL GERAL:                    R$ 68,80", line)
}

func TestPadTextFillChar(t *testing.T) {
	line := PadText("AB", "CD", '.', 10)
	assert.Equal(t, "AB......CD", line)
}

func TestPadTextOverflowTruncates(t *testing.T) {
	left := strings.Repeat("X", 30)
	right := strings.Repeat("Y", 30)

	line := PadText(left, right, ' ', 40)

	assert.Equal(t, 40, utf8.RuneCountInString(line))
	assert.Equal(t, left+strings.Repeat("Y", 10), line)
}

func TestPadTextExactWidthTruncates(t *testing.T) {
	line := PadText(strings.Repeat("X", 20), strings.Repeat("Y", 20), ' ', 40)
	assert.Equal(t, 40, utf8.RuneCountInString(line))
}

func receiptOrder() (model.Restaurant, model.Order) {
	restaurant := model.Restaurant{Name: "Cantina da Esquina", DeliveryFee: 5.00}
	restaurant.ID = 1

	change := 100.0
	order := model.Order{
		PublicID:        "0b54c4e1-9f2e-4e15-b0a3-77f2a1b2c3d4",
		CustomerName:    "Maria Silva",
		CustomerPhone:   "11988887777",
		CustomerAddress: "Rua das Flores, 123",
		PaymentMethod:   model.PaymentCash,
		ChangeFor:       &change,
		Total:           68.80,
		Status:          model.StatusPending,
		Items: []model.OrderItem{
			{
				Name:      "X-Burger",
				UnitPrice: 28.90,
				Quantity:  2,
				Addons: []model.OrderItemAddon{
					{Name: "Bacon", Price: 3.00},
				},
			},
		},
	}
	order.CreatedAt = time.Date(2025, 6, 10, 12, 30, 0, 0, time.Local)
	return restaurant, order
}

func TestReceiptLayout(t *testing.T) {
	restaurant, order := receiptOrder()

	receipt := Receipt(restaurant, order)
	lines := strings.Split(receipt, "\n")

	for _, line := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), ReceiptWidth, "line exceeds budget: %q", line)
	}

	assert.Equal(t, "Cantina da Esquina", lines[0])
	assert.Contains(t, receipt, "Pedido #B2C3D4")
	assert.Contains(t, receipt, "10/06/2025 12:30")
	assert.Contains(t, receipt, "Cliente: Maria Silva")

	// Item row: per-unit price times quantity; addon itemized separately.
	assert.Contains(t, receipt, PadText("2x X-Burger", "R$ 57,80", ' ', ReceiptWidth))
	assert.Contains(t, receipt, PadText("  + Bacon", "R$ 6,00", ' ', ReceiptWidth))

	assert.Contains(t, receipt, PadText("SUBTOTAL:", "R$ 63,80", ' ', ReceiptWidth))
	assert.Contains(t, receipt, PadText("ENTREGA:", "R$ 5,00", ' ', ReceiptWidth))
	assert.Contains(t, receipt, strings.Repeat("=", ReceiptWidth))
	assert.Contains(t, receipt, PadText("TOTAL GERAL:", "R$ 68,80", ' ', ReceiptWidth))
	assert.Contains(t, receipt, PadText("TROCO PARA:", "R$ 100,00", ' ', ReceiptWidth))
	assert.Contains(t, receipt, "Pagamento: Dinheiro")
}

func TestReceiptOmitsZeroDeliveryFeeAndChange(t *testing.T) {
	restaurant, order := receiptOrder()
	restaurant.DeliveryFee = 0
	order.ChangeFor = nil
	order.PaymentMethod = model.PaymentPix
	order.Total = 63.80

	receipt := Receipt(restaurant, order)

	assert.NotContains(t, receipt, "ENTREGA:")
	assert.NotContains(t, receipt, "TROCO PARA:")
	assert.Contains(t, receipt, "Pagamento: Pix")
}

func TestReceiptLegacyChangeParsing(t *testing.T) {
	restaurant, order := receiptOrder()
	order.ChangeFor = nil
	order.PaymentDetails = "Troco para R$ 50,00"

	receipt := Receipt(restaurant, order)

	assert.Contains(t, receipt, PadText("TROCO PARA:", "R$ 50,00", ' ', ReceiptWidth))
}

func TestReceiptScheduledLine(t *testing.T) {
	restaurant, order := receiptOrder()
	scheduled := time.Date(2025, 6, 11, 19, 0, 0, 0, time.Local)
	order.ScheduledTime = &scheduled

	receipt := Receipt(restaurant, order)

	assert.Contains(t, receipt, "Agendado para 11/06/2025 19:00")
}
