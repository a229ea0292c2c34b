package model

import "gorm.io/gorm"

type MenuItem struct {
	gorm.Model
	RestaurantID uint    `json:"restaurant_id"`
	CategoryID   uint    `json:"category_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	Available    bool    `json:"available"`
	Stock        *int    `json:"stock"`
	Addons       []Addon `json:"addons" gorm:"many2many:menu_item_addons;"`
}

// ApplyStockDecrement reduces stock by qty, flooring at zero, and flips
// Available off when stock runs out. Items without stock tracking are left
// untouched; the return value reports whether anything changed.
func (m *MenuItem) ApplyStockDecrement(qty int) bool {
	if m.Stock == nil {
		return false
	}
	remaining := *m.Stock - qty
	if remaining < 0 {
		remaining = 0
	}
	m.Stock = &remaining
	if remaining == 0 {
		m.Available = false
	}
	return true
}
