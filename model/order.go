package model

import (
	"time"

	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentCash   PaymentMethod = "cash"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentPix, PaymentCredit, PaymentDebit, PaymentCash:
		return true
	}
	return false
}

// Label returns the customer-facing name of the payment method.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentPix:
		return "Pix"
	case PaymentCredit:
		return "Cartão de crédito"
	case PaymentDebit:
		return "Cartão de débito"
	case PaymentCash:
		return "Dinheiro"
	}
	return string(p)
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a manager may move an order from one status
// to another. Completed and cancelled orders are terminal.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	PublicID        string        `json:"public_id" gorm:"uniqueIndex"`
	RestaurantID    uint          `json:"restaurant_id"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerAddress string        `json:"customer_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	PaymentDetails  string        `json:"payment_details"`
	ChangeFor       *float64      `json:"change_for"`
	ScheduledTime   *time.Time    `json:"scheduled_time"`
	Total           float64       `json:"total"`
	Status          OrderStatus   `json:"status"`
	Items           []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is a snapshot of a cart line at checkout time. Name and prices
// are copied from the catalog so later edits never change a placed order.
type OrderItem struct {
	gorm.Model
	OrderID    uint             `json:"order_id"`
	SourceKind string           `json:"source_kind"`
	SourceID   uint             `json:"source_id"`
	Name       string           `json:"name"`
	UnitPrice  float64          `json:"unit_price"`
	Quantity   int              `json:"quantity"`
	Addons     []OrderItemAddon `json:"addons" gorm:"foreignKey:OrderItemID"`
}

type OrderItemAddon struct {
	gorm.Model
	OrderItemID uint    `json:"order_item_id"`
	AddonID     uint    `json:"addon_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
}

// UnitTotal is the price of a single unit with its addons folded in.
func (i OrderItem) UnitTotal() float64 {
	total := i.UnitPrice
	for _, a := range i.Addons {
		total += a.Price
	}
	return total
}

func (i OrderItem) LineTotal() float64 {
	return i.UnitTotal() * float64(i.Quantity)
}

// Subtotal is the order total before the delivery fee.
func (o Order) Subtotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	return total
}
