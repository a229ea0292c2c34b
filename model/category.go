package model

import "gorm.io/gorm"

// Category groups menu items. A category may sit under a parent category,
// but only one level deep: a parent must itself be a root category.
type Category struct {
	gorm.Model
	RestaurantID uint   `json:"restaurant_id"`
	ParentID     *uint  `json:"parent_id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
}
