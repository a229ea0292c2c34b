// Package checkout validates and finalizes a cart into a persisted order.
package checkout

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cantacomigo/zapmenu/cart"
	"github.com/cantacomigo/zapmenu/message"
	"github.com/cantacomigo/zapmenu/model"
	"github.com/cantacomigo/zapmenu/schedule"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrBelowMinOrder   = errors.New("order is below the minimum order value")
	ErrMissingCustomer = errors.New("customer name, phone and address are required")
	ErrStoreClosed     = errors.New("store is closed, the order must be scheduled")
	ErrInvalidPayment  = errors.New("invalid payment method")
)

// OrderStore is the persistence surface the gate depends on. CreateOrder
// must succeed or its error propagates to the submitter; DecrementStock is
// best-effort and its failures are logged and swallowed.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	DecrementStock(ctx context.Context, itemID uint, qty int) error
}

// Input carries everything the customer supplies at checkout besides the
// cart itself.
type Input struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   model.PaymentMethod
	ChangeFor       *float64
	ScheduledTime   *time.Time
}

type Gate struct {
	store OrderStore
	now   func() time.Time
}

func NewGate(store OrderStore) *Gate {
	return &Gate{store: store, now: time.Now}
}

// NewGateAt builds a gate with an injected clock, for tests and for
// replaying scheduled evaluations.
func NewGateAt(store OrderStore, now func() time.Time) *Gate {
	return &Gate{store: store, now: now}
}

// Submit validates the preconditions in order, persists the order and
// applies the best-effort stock decrement. The cart is cleared only after
// the order write succeeded. A stock decrement failure never rolls the
// order back.
func (g *Gate) Submit(ctx context.Context, restaurant model.Restaurant, c *cart.Cart, in Input) (*model.Order, error) {
	if c.Empty() {
		return nil, ErrEmptyCart
	}
	if c.Subtotal() < restaurant.MinOrderValue {
		return nil, ErrBelowMinOrder
	}
	if strings.TrimSpace(in.CustomerName) == "" ||
		strings.TrimSpace(in.CustomerPhone) == "" ||
		strings.TrimSpace(in.CustomerAddress) == "" {
		return nil, ErrMissingCustomer
	}
	if in.ScheduledTime == nil && !schedule.IsOpen(restaurant.OpeningTime, restaurant.ClosingTime, g.now()) {
		return nil, ErrStoreClosed
	}
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPayment
	}

	order := &model.Order{
		PublicID:        uuid.NewString(),
		RestaurantID:    restaurant.ID,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		PaymentMethod:   in.PaymentMethod,
		ScheduledTime:   in.ScheduledTime,
		Total:           c.Total(restaurant.DeliveryFee),
		Status:          model.StatusPending,
		Items:           orderItems(c),
	}
	order.CreatedAt = g.now()
	if in.PaymentMethod == model.PaymentCash && in.ChangeFor != nil {
		order.ChangeFor = in.ChangeFor
		// Legacy readers still parse the change amount out of this text.
		order.PaymentDetails = "Troco para " + message.FormatBRL(*in.ChangeFor)
	}

	if err := g.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	for _, line := range c.Lines() {
		if line.Source.Kind != cart.SourceItem {
			continue
		}
		if err := g.store.DecrementStock(ctx, line.Source.ID, line.Quantity); err != nil {
			log.Printf("stock decrement failed for item %d: %v", line.Source.ID, err)
		}
	}

	c.Clear()
	return order, nil
}

func orderItems(c *cart.Cart) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(c.Lines()))
	for _, line := range c.Lines() {
		item := model.OrderItem{
			SourceKind: string(line.Source.Kind),
			SourceID:   line.Source.ID,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
		}
		for _, addon := range line.Addons {
			item.Addons = append(item.Addons, model.OrderItemAddon{
				AddonID: addon.ID,
				Name:    addon.Name,
				Price:   addon.Price,
			})
		}
		items = append(items, item)
	}
	return items
}
