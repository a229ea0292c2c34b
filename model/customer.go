package model

import "gorm.io/gorm"

// Customer is a storefront account. The phone number doubles as the login
// identifier and is unique across all restaurants.
type Customer struct {
	gorm.Model
	Name     string `json:"name"`
	Phone    string `json:"phone" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Address  string `json:"address"`
}
