package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cantacomigo/zapmenu/model"
)

func burger() model.MenuItem {
	item := model.MenuItem{Name: "X-Burger", Price: 28.90}
	item.ID = 1
	return item
}

func bacon() model.Addon {
	addon := model.Addon{Name: "Bacon", Price: 3.00}
	addon.ID = 10
	return addon
}

func cheddar() model.Addon {
	addon := model.Addon{Name: "Cheddar", Price: 2.50}
	addon.ID = 11
	return addon
}

func TestAddItemMergesSameAddonSet(t *testing.T) {
	c := New()
	for i := 0; i < 3; i++ {
		c.AddItem(burger(), []model.Addon{bacon(), cheddar()})
	}

	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, 3, c.Lines()[0].Quantity)
}

func TestAddItemMergesRegardlessOfAddonOrder(t *testing.T) {
	c := New()
	c.AddItem(burger(), []model.Addon{bacon(), cheddar()})
	c.AddItem(burger(), []model.Addon{cheddar(), bacon()})

	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestAddItemDistinctAddonSetsStayDistinct(t *testing.T) {
	c := New()
	c.AddItem(burger(), []model.Addon{bacon()})
	c.AddItem(burger(), []model.Addon{cheddar()})
	c.AddItem(burger(), nil)

	assert.Len(t, c.Lines(), 3)
	for _, line := range c.Lines() {
		assert.Equal(t, 1, line.Quantity)
	}
}

func TestAddItemDuplicatedAddonIsNotTheSameLine(t *testing.T) {
	// {bacon, cheddar} and {bacon, bacon} have the same size and the same
	// membership, but different selections; merging them would charge the
	// second customer for a cheddar they never picked.
	c := New()
	c.AddItem(burger(), []model.Addon{bacon(), cheddar()})
	c.AddItem(burger(), []model.Addon{bacon(), bacon()})

	assert.Len(t, c.Lines(), 2)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
	assert.Equal(t, 1, c.Lines()[1].Quantity)
	assert.InDelta(t, 28.90+3.00+2.50, c.Lines()[0].Total(), 0.001)
	assert.InDelta(t, 28.90+3.00+3.00, c.Lines()[1].Total(), 0.001)
}

func TestAddPromotionBuildsSyntheticLine(t *testing.T) {
	promo := model.Promotion{Title: "Combo da Semana", DiscountedPrice: 19.90}
	promo.ID = 7

	c := New()
	c.AddPromotion(promo)
	c.AddPromotion(promo)

	assert.Len(t, c.Lines(), 1)
	line := c.Lines()[0]
	assert.Equal(t, SourcePromotion, line.Source.Kind)
	assert.Equal(t, uint(7), line.Source.ID)
	assert.Equal(t, "Combo da Semana", line.Name)
	assert.Equal(t, 19.90, line.UnitPrice)
	assert.Equal(t, 2, line.Quantity)
	assert.Empty(t, line.Addons)
}

func TestPromotionAndItemWithSameIDAreDistinct(t *testing.T) {
	promo := model.Promotion{Title: "Promo", DiscountedPrice: 10}
	promo.ID = 1

	c := New()
	c.AddItem(burger(), nil)
	c.AddPromotion(promo)

	assert.Len(t, c.Lines(), 2)
}

func TestTotals(t *testing.T) {
	// 2x (28.90 + 3.00) = 63.80; plus 5.00 delivery = 68.80.
	c := New()
	c.AddItem(burger(), []model.Addon{bacon()})
	c.AddItem(burger(), []model.Addon{bacon()})

	assert.InDelta(t, 63.80, c.Subtotal(), 0.001)
	assert.InDelta(t, 68.80, c.Total(5.00), 0.001)
	assert.InDelta(t, 63.80, c.Total(0), 0.001)
}

func TestRemoveLineDropsWholeLine(t *testing.T) {
	c := New()
	c.AddItem(burger(), nil)
	c.AddItem(burger(), nil)
	c.AddItem(burger(), []model.Addon{bacon()})

	assert.True(t, c.RemoveLine(0))
	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, []Addon{{ID: 10, Name: "Bacon", Price: 3.00}}, c.Lines()[0].Addons)

	assert.False(t, c.RemoveLine(5))
	assert.False(t, c.RemoveLine(-1))
}

func TestIncrementDecrement(t *testing.T) {
	c := New()
	c.AddItem(burger(), nil)

	assert.True(t, c.Increment(0))
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	assert.True(t, c.Decrement(0))
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	// Decrementing a quantity-1 line removes it; no line survives at zero.
	assert.True(t, c.Decrement(0))
	assert.True(t, c.Empty())

	assert.False(t, c.Increment(0))
	assert.False(t, c.Decrement(0))
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(burger(), nil)
	c.Clear()

	assert.True(t, c.Empty())
	assert.Zero(t, c.Subtotal())
}

func TestSnapshotPriceIgnoresLaterCatalogEdits(t *testing.T) {
	item := burger()
	c := New()
	c.AddItem(item, nil)

	item.Price = 99.99
	item.Name = "Renamed"

	assert.Equal(t, 28.90, c.Lines()[0].UnitPrice)
	assert.Equal(t, "X-Burger", c.Lines()[0].Name)
}
