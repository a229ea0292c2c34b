package controller

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cantacomigo/zapmenu/database"
	"github.com/cantacomigo/zapmenu/model"
	"github.com/cantacomigo/zapmenu/schedule"
)

// activeRestaurantBySlug resolves the tenant behind a public menu URL,
// rejecting disabled storefronts.
func activeRestaurantBySlug(c *gin.Context) (model.Restaurant, bool) {
	var restaurant model.Restaurant
	err := database.DB.Where("slug = ?", c.Param("slug")).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Restaurant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch restaurant"})
		}
		return model.Restaurant{}, false
	}
	if !restaurant.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Restaurant not found"})
		return model.Restaurant{}, false
	}
	return restaurant, true
}

// GetMenu returns the whole public storefront payload for one restaurant:
// profile, categories with their items and addons, active promotions and
// giveaways, and whether the store is open right now. The open flag is a
// point-in-time answer; clients that want a live indicator re-fetch it.
func GetMenu(c *gin.Context) {
	restaurant, ok := activeRestaurantBySlug(c)
	if !ok {
		return
	}

	type CategoryWithItems struct {
		model.Category
		Items []model.MenuItem `gorm:"-" json:"items"`
	}

	// Catalog reads soft-fail: a transient database error renders an empty
	// menu section rather than taking the whole storefront down.
	var categories []model.Category
	if err := database.DB.Where("restaurant_id = ?", restaurant.ID).Find(&categories).Error; err != nil {
		log.Printf("failed to load categories for restaurant %d: %v", restaurant.ID, err)
		categories = nil
	}

	var items []model.MenuItem
	if err := database.DB.Preload("Addons").Where("restaurant_id = ?", restaurant.ID).Find(&items).Error; err != nil {
		log.Printf("failed to load items for restaurant %d: %v", restaurant.ID, err)
		items = nil
	}

	itemsByCategory := make(map[uint][]model.MenuItem)
	for _, item := range items {
		itemsByCategory[item.CategoryID] = append(itemsByCategory[item.CategoryID], item)
	}

	menu := make([]CategoryWithItems, 0, len(categories))
	for _, category := range categories {
		menu = append(menu, CategoryWithItems{
			Category: category,
			Items:    itemsByCategory[category.ID],
		})
	}

	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"restaurant": restaurant,
			"is_open":    schedule.IsOpen(restaurant.OpeningTime, restaurant.ClosingTime, time.Now()),
			"menu":       menu,
			"promotions": loadActivePromotions(ctx, restaurant.ID),
			"giveaways":  loadActiveGiveaways(ctx, restaurant.ID),
		},
	})
}

// GetMenuStatus answers whether the storefront is open right now.
func GetMenuStatus(c *gin.Context) {
	restaurant, ok := activeRestaurantBySlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"is_open":      schedule.IsOpen(restaurant.OpeningTime, restaurant.ClosingTime, time.Now()),
			"opening_time": restaurant.OpeningTime,
			"closing_time": restaurant.ClosingTime,
		},
	})
}
