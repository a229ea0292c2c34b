package model

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	Admin UserRole = "admin"
)

// User is a platform operator account for the back office.
type User struct {
	gorm.Model
	Name        string   `json:"name"`
	Email       string   `json:"email" gorm:"index"`
	PhoneNumber string   `json:"phone_number"`
	Role        UserRole `json:"role"`
	Password    string   `json:"-"`
}
