// Package cart implements the in-memory cart used by the storefront
// checkout. Lines snapshot the catalog price at add time, so editing an
// item mid-session never changes what the customer already picked.
package cart

import (
	"github.com/cantacomigo/zapmenu/model"
)

type SourceKind string

const (
	SourceItem      SourceKind = "item"
	SourcePromotion SourceKind = "promotion"
)

// Source identifies where a line came from: a menu item or a promotion.
type Source struct {
	Kind SourceKind `json:"kind"`
	ID   uint       `json:"id"`
}

type Addon struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Line is one distinct (source, addon-set) combination with a quantity.
// Quantity is always at least 1; a line that would reach 0 is removed.
type Line struct {
	Source    Source  `json:"source"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Addons    []Addon `json:"addons"`
}

// UnitTotal is the price of one unit with addon prices folded in.
func (l Line) UnitTotal() float64 {
	total := l.UnitPrice
	for _, a := range l.Addons {
		total += a.Price
	}
	return total
}

func (l Line) Total() float64 {
	return l.UnitTotal() * float64(l.Quantity)
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem inserts one unit of a menu item with the selected addons. If a
// line with the same item and the same addon set (in any order) already
// exists, its quantity is incremented instead of appending a new line.
func (c *Cart) AddItem(item model.MenuItem, selected []model.Addon) {
	addons := make([]Addon, 0, len(selected))
	for _, a := range selected {
		addons = append(addons, Addon{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	c.add(Line{
		Source:    Source{Kind: SourceItem, ID: item.ID},
		Name:      item.Name,
		Image:     item.Image,
		UnitPrice: item.Price,
		Quantity:  1,
		Addons:    addons,
	})
}

// AddPromotion inserts one unit of a promotion as a synthetic line: the
// title becomes the name, the discounted price becomes the unit price and
// no addons can be attached. The promotion record itself is not touched.
func (c *Cart) AddPromotion(p model.Promotion) {
	c.add(Line{
		Source:    Source{Kind: SourcePromotion, ID: p.ID},
		Name:      p.Title,
		Image:     p.Image,
		UnitPrice: p.DiscountedPrice,
		Quantity:  1,
	})
}

func (c *Cart) add(line Line) {
	for i := range c.lines {
		if sameLine(c.lines[i], line) {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, line)
}

// sameLine matches on source identity plus addon selection, ignoring order.
// Occurrence counts matter: a selection listing the same addon twice is not
// the same line as one listing it once alongside another addon.
func sameLine(a, b Line) bool {
	if a.Source != b.Source || len(a.Addons) != len(b.Addons) {
		return false
	}
	counts := make(map[uint]int, len(a.Addons))
	for _, addon := range a.Addons {
		counts[addon.ID]++
	}
	for _, addon := range b.Addons {
		counts[addon.ID]--
		if counts[addon.ID] < 0 {
			return false
		}
	}
	return true
}

func (c *Cart) Lines() []Line {
	return c.lines
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// RemoveLine drops the whole line regardless of its quantity.
func (c *Cart) RemoveLine(index int) bool {
	if index < 0 || index >= len(c.lines) {
		return false
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return true
}

func (c *Cart) Increment(index int) bool {
	if index < 0 || index >= len(c.lines) {
		return false
	}
	c.lines[index].Quantity++
	return true
}

// Decrement lowers a line's quantity by one, removing the line entirely
// when it would reach zero.
func (c *Cart) Decrement(index int) bool {
	if index < 0 || index >= len(c.lines) {
		return false
	}
	if c.lines[index].Quantity <= 1 {
		return c.RemoveLine(index)
	}
	c.lines[index].Quantity--
	return true
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Subtotal is recomputed from the lines on every call; carts are small
// enough that recomputing beats keeping a cached value correct.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Total()
	}
	return total
}

func (c *Cart) Total(deliveryFee float64) float64 {
	return c.Subtotal() + deliveryFee
}
