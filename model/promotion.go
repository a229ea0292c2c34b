package model

import "gorm.io/gorm"

type Promotion struct {
	gorm.Model
	RestaurantID    uint     `json:"restaurant_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	DiscountedPrice float64  `json:"discounted_price"`
	OriginalPrice   *float64 `json:"original_price"`
	IsActive        bool     `json:"is_active"`
}
