package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cantacomigo/zapmenu/model"
)

func itemWithAddons() model.MenuItem {
	bacon := model.Addon{Name: "Bacon", Price: 3.00, Available: true}
	bacon.ID = 10
	cheddar := model.Addon{Name: "Cheddar", Price: 2.50, Available: true}
	cheddar.ID = 11
	soldOut := model.Addon{Name: "Catupiry", Price: 4.00, Available: false}
	soldOut.ID = 12

	item := model.MenuItem{Name: "X-Burger", Price: 28.90, Available: true}
	item.ID = 1
	item.Addons = []model.Addon{bacon, cheddar, soldOut}
	return item
}

func TestSelectAddonsKeepsSubmittedOrder(t *testing.T) {
	selected, err := selectAddons(itemWithAddons(), []uint{11, 10})

	assert.NoError(t, err)
	assert.Len(t, selected, 2)
	assert.Equal(t, "Cheddar", selected[0].Name)
	assert.Equal(t, "Bacon", selected[1].Name)
}

func TestSelectAddonsEmptySelection(t *testing.T) {
	selected, err := selectAddons(itemWithAddons(), nil)

	assert.NoError(t, err)
	assert.Nil(t, selected)
}

func TestSelectAddonsRejectsDuplicates(t *testing.T) {
	selected, err := selectAddons(itemWithAddons(), []uint{10, 10})

	assert.Error(t, err)
	assert.Nil(t, selected)
	assert.Contains(t, err.Error(), "more than once")
}

func TestSelectAddonsRejectsUnattached(t *testing.T) {
	_, err := selectAddons(itemWithAddons(), []uint{99})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not attached")
}

func TestSelectAddonsRejectsUnavailable(t *testing.T) {
	_, err := selectAddons(itemWithAddons(), []uint{12})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}
