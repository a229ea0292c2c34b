package model

import "gorm.io/gorm"

type Addon struct {
	gorm.Model
	RestaurantID uint    `json:"restaurant_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Available    bool    `json:"available"`
}
