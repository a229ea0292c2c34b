package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cantacomigo/zapmenu/cart"
	"github.com/cantacomigo/zapmenu/model"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockStore) DecrementStock(ctx context.Context, itemID uint, qty int) error {
	args := m.Called(ctx, itemID, qty)
	return args.Error(0)
}

func testRestaurant() model.Restaurant {
	restaurant := model.Restaurant{
		Name:        "Cantina da Esquina",
		Phone:       "+55 11 98765-4321",
		DeliveryFee: 5.00,
		OpeningTime: "08:00",
		ClosingTime: "22:00",
	}
	restaurant.ID = 1
	return restaurant
}

func testCart() *cart.Cart {
	item := model.MenuItem{Name: "X-Burger", Price: 28.90}
	item.ID = 4
	addon := model.Addon{Name: "Bacon", Price: 3.00}
	addon.ID = 9

	c := cart.New()
	c.AddItem(item, []model.Addon{addon})
	c.AddItem(item, []model.Addon{addon})
	return c
}

func validInput() Input {
	return Input{
		CustomerName:    "Maria Silva",
		CustomerPhone:   "11988887777",
		CustomerAddress: "Rua das Flores, 123",
		PaymentMethod:   model.PaymentPix,
	}
}

func duringOpenHours() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
	}
}

func afterClosing() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 10, 23, 30, 0, 0, time.Local)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	store := new(mockStore)
	gate := NewGateAt(store, duringOpenHours())

	order, err := gate.Submit(context.Background(), testRestaurant(), cart.New(), validInput())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
	store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestSubmitMissingCustomerFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"no name", func(in *Input) { in.CustomerName = "" }},
		{"blank name", func(in *Input) { in.CustomerName = "   " }},
		{"no phone", func(in *Input) { in.CustomerPhone = "" }},
		{"no address", func(in *Input) { in.CustomerAddress = "" }},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := new(mockStore)
			gate := NewGateAt(store, duringOpenHours())

			in := validInput()
			testCase.mutate(&in)

			_, err := gate.Submit(context.Background(), testRestaurant(), testCart(), in)

			assert.ErrorIs(t, err, ErrMissingCustomer)
			store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitBelowMinimumOrderValue(t *testing.T) {
	store := new(mockStore)
	gate := NewGateAt(store, duringOpenHours())

	restaurant := testRestaurant()
	restaurant.MinOrderValue = 100.00

	order, err := gate.Submit(context.Background(), restaurant, testCart(), validInput())

	assert.ErrorIs(t, err, ErrBelowMinOrder)
	assert.Nil(t, order)
	store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestSubmitAtOrAboveMinimumOrderValue(t *testing.T) {
	store := new(mockStore)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	store.On("DecrementStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	gate := NewGateAt(store, duringOpenHours())

	// Subtotal is 63.80; the delivery fee does not count toward the minimum.
	restaurant := testRestaurant()
	restaurant.MinOrderValue = 50.00

	_, err := gate.Submit(context.Background(), restaurant, testCart(), validInput())

	assert.NoError(t, err)
}

func TestSubmitBlockedWhenClosedAndUnscheduled(t *testing.T) {
	store := new(mockStore)
	gate := NewGateAt(store, afterClosing())

	order, err := gate.Submit(context.Background(), testRestaurant(), testCart(), validInput())

	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.Nil(t, order)
	store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestSubmitAllowedWhenClosedButScheduled(t *testing.T) {
	store := new(mockStore)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	store.On("DecrementStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	gate := NewGateAt(store, afterClosing())

	scheduled := time.Date(2025, 6, 11, 12, 0, 0, 0, time.Local)
	in := validInput()
	in.ScheduledTime = &scheduled

	order, err := gate.Submit(context.Background(), testRestaurant(), testCart(), in)

	assert.NoError(t, err)
	assert.NotNil(t, order.ScheduledTime)
	assert.Equal(t, scheduled, *order.ScheduledTime)
}

func TestSubmitInvalidPayment(t *testing.T) {
	store := new(mockStore)
	gate := NewGateAt(store, duringOpenHours())

	in := validInput()
	in.PaymentMethod = "bitcoin"

	_, err := gate.Submit(context.Background(), testRestaurant(), testCart(), in)

	assert.ErrorIs(t, err, ErrInvalidPayment)
	store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestSubmitSuccess(t *testing.T) {
	store := new(mockStore)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	store.On("DecrementStock", mock.Anything, uint(4), 2).Return(nil)
	gate := NewGateAt(store, duringOpenHours())

	c := testCart()
	order, err := gate.Submit(context.Background(), testRestaurant(), c, validInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, order.PublicID)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, uint(1), order.RestaurantID)
	// 2x (28.90 + 3.00) + 5.00 delivery = 68.80.
	assert.InDelta(t, 68.80, order.Total, 0.001)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "X-Burger", order.Items[0].Name)
	assert.Len(t, order.Items[0].Addons, 1)
	assert.Equal(t, "Bacon", order.Items[0].Addons[0].Name)

	assert.True(t, c.Empty(), "cart must be cleared after a successful checkout")
	store.AssertExpectations(t)
}

func TestSubmitCashWithChange(t *testing.T) {
	store := new(mockStore)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	store.On("DecrementStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	gate := NewGateAt(store, duringOpenHours())

	change := 100.0
	in := validInput()
	in.PaymentMethod = model.PaymentCash
	in.ChangeFor = &change

	order, err := gate.Submit(context.Background(), testRestaurant(), testCart(), in)

	assert.NoError(t, err)
	assert.NotNil(t, order.ChangeFor)
	assert.Equal(t, 100.0, *order.ChangeFor)
	assert.Equal(t, "Troco para R$ 100,00", order.PaymentDetails)
}

func TestSubmitChangeIgnoredForNonCash(t *testing.T) {
	store := new(mockStore)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	store.On("DecrementStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	gate := NewGateAt(store, duringOpenHours())

	change := 100.0
	in := validInput()
	in.ChangeFor = &change

	order, err := gate.Submit(context.Background(), testRestaurant(), testCart(), in)

	assert.NoError(t, err)
	assert.Nil(t, order.ChangeFor)
	assert.Empty(t, order.PaymentDetails)
}

func TestSubmitOrderWriteFailurePropagates(t *testing.T) {
	store := new(mockStore)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(assert.AnError)
	gate := NewGateAt(store, duringOpenHours())

	c := testCart()
	order, err := gate.Submit(context.Background(), testRestaurant(), c, validInput())

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.False(t, c.Empty(), "cart must survive a failed order write so the user can retry")
	store.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitStockFailureDoesNotFailOrder(t *testing.T) {
	store := new(mockStore)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	store.On("DecrementStock", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	gate := NewGateAt(store, duringOpenHours())

	c := testCart()
	order, err := gate.Submit(context.Background(), testRestaurant(), c, validInput())

	assert.NoError(t, err, "an order that reached the merchant outweighs a stock counter")
	assert.NotNil(t, order)
	assert.True(t, c.Empty())
}

func TestSubmitSkipsStockForPromotionLines(t *testing.T) {
	store := new(mockStore)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	gate := NewGateAt(store, duringOpenHours())

	promo := model.Promotion{Title: "Combo", DiscountedPrice: 19.90}
	promo.ID = 3
	c := cart.New()
	c.AddPromotion(promo)

	order, err := gate.Submit(context.Background(), testRestaurant(), c, validInput())

	assert.NoError(t, err)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, string(cart.SourcePromotion), order.Items[0].SourceKind)
	store.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}
