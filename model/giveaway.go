package model

import (
	"time"

	"gorm.io/gorm"
)

type Giveaway struct {
	gorm.Model
	RestaurantID uint       `json:"restaurant_id"`
	Title        string     `json:"title"`
	Prize        string     `json:"prize"`
	DrawDate     time.Time  `json:"draw_date"`
	IsActive     bool       `json:"is_active"`
	WinnerName   string     `json:"winner_name"`
	WinnerPhone  string     `json:"winner_phone"`
	DrawnAt      *time.Time `json:"drawn_at"`
}

// Drawn reports whether a winner has already been picked. A drawn giveaway
// is terminal: it stays inactive and cannot be drawn again.
func (g *Giveaway) Drawn() bool {
	return g.WinnerName != ""
}
