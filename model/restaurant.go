package model

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Slug          string  `json:"slug" gorm:"uniqueIndex"`
	Login         string  `json:"login" gorm:"uniqueIndex"`
	Password      string  `json:"-"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Logo          string  `json:"logo"`
	DeliveryFee   float64 `json:"delivery_fee"`
	MinOrderValue float64 `json:"min_order_value"`
	OpeningTime   string  `json:"opening_time"`
	ClosingTime   string  `json:"closing_time"`
	IsActive      bool    `json:"is_active"`
}
