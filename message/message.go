// Package message turns orders into customer- and merchant-facing text: the
// WhatsApp chat payloads, their deep links and the printable receipt.
package message

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cantacomigo/zapmenu/model"
)

const (
	deepLinkBase = "https://api.whatsapp.com/send"
	timeLayout   = "02/01/2006 15:04"
)

// DeepLink builds the messaging URL for a pre-filled chat. Every non-digit
// character is stripped from the phone before use.
func DeepLink(phone, text string) string {
	return deepLinkBase + "?phone=" + onlyDigits(phone) + "&text=" + url.QueryEscape(text)
}

func onlyDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// OrderText composes the merchant chat message for a new order. Addon
// prices are folded into each line's unit total and not itemized here; the
// printed receipt breaks them out instead.
func OrderText(restaurant model.Restaurant, order model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Novo pedido - %s*\n\n", restaurant.Name)
	fmt.Fprintf(&b, "*Cliente:* %s\n", order.CustomerName)
	fmt.Fprintf(&b, "*Telefone:* %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "*Endereço:* %s\n", order.CustomerAddress)
	if order.ScheduledTime != nil {
		fmt.Fprintf(&b, "*Agendado para:* %s\n", order.ScheduledTime.Format(timeLayout))
	}

	b.WriteString("\n*Itens:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s (%s)\n", item.Quantity, item.Name, FormatBRL(item.UnitTotal()))
		for _, addon := range item.Addons {
			fmt.Fprintf(&b, "  + %s\n", addon.Name)
		}
	}

	b.WriteString("\n")
	if restaurant.DeliveryFee > 0 {
		fmt.Fprintf(&b, "*Taxa de entrega:* %s\n", FormatBRL(restaurant.DeliveryFee))
	}
	fmt.Fprintf(&b, "*Total:* %s\n", FormatBRL(order.Total))
	fmt.Fprintf(&b, "*Pagamento:* %s\n", order.PaymentMethod.Label())
	if order.PaymentMethod == model.PaymentCash {
		if change, ok := changeDue(order); ok && change > 0 {
			fmt.Fprintf(&b, "*Troco para:* %s\n", FormatBRL(change))
		}
	}

	fmt.Fprintf(&b, "\nPedido em %s", order.CreatedAt.Format(timeLayout))
	return b.String()
}

// OrderLink is the merchant deep link for a freshly placed order.
func OrderLink(restaurant model.Restaurant, order model.Order) string {
	return DeepLink(restaurant.Phone, OrderText(restaurant, order))
}

// StatusText composes the customer notification paired with a status
// transition. Unknown statuses fall back to a generic update line.
func StatusText(restaurant model.Restaurant, order model.Order, status model.OrderStatus) string {
	ref := OrderRef(order)
	switch status {
	case model.StatusPaid:
		return fmt.Sprintf("Pedido %s confirmado! Já estamos preparando tudo. - %s", ref, restaurant.Name)
	case model.StatusShipped:
		return fmt.Sprintf("Boas notícias! Seu pedido %s saiu para entrega. - %s", ref, restaurant.Name)
	case model.StatusCompleted:
		return fmt.Sprintf("Pedido %s entregue. Obrigado pela preferência! - %s", ref, restaurant.Name)
	case model.StatusCancelled:
		return fmt.Sprintf("Infelizmente seu pedido %s foi cancelado. Entre em contato para mais detalhes. - %s", ref, restaurant.Name)
	}
	return fmt.Sprintf("Atualização do pedido %s. - %s", ref, restaurant.Name)
}

// StatusLink is the customer deep link paired with a status transition.
func StatusLink(restaurant model.Restaurant, order model.Order, status model.OrderStatus) string {
	return DeepLink(order.CustomerPhone, StatusText(restaurant, order, status))
}

// ReceiptConfirmationText is the informational "we got your order" message.
// Sending it does not move the order out of pending.
func ReceiptConfirmationText(restaurant model.Restaurant, order model.Order) string {
	return fmt.Sprintf("Recebemos seu pedido %s! Em breve confirmaremos o pagamento. - %s",
		OrderRef(order), restaurant.Name)
}

// ReceiptConfirmationLink is the customer deep link for the confirmation.
func ReceiptConfirmationLink(restaurant model.Restaurant, order model.Order) string {
	return DeepLink(order.CustomerPhone, ReceiptConfirmationText(restaurant, order))
}

// OrderRef is the short human-readable order reference: a hash sign plus
// the last six characters of the public id, uppercased.
func OrderRef(order model.Order) string {
	id := order.PublicID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return "#" + strings.ToUpper(id)
}

func changeDue(order model.Order) (float64, bool) {
	if order.ChangeFor != nil {
		return *order.ChangeFor, true
	}
	return ParseChangeDue(order.PaymentDetails)
}
