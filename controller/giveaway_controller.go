package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cantacomigo/zapmenu/cache"
	"github.com/cantacomigo/zapmenu/database"
	"github.com/cantacomigo/zapmenu/model"
)

// loadActiveGiveaways mirrors loadActivePromotions: DB first, cache on
// failure, empty list when both are unreachable.
func loadActiveGiveaways(ctx context.Context, restaurantID uint) []model.Giveaway {
	var giveaways []model.Giveaway
	err := database.DB.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).Find(&giveaways).Error
	if err == nil {
		if cache.Store != nil {
			if cacheErr := cache.Store.SetGiveaways(ctx, restaurantID, giveaways); cacheErr != nil {
				log.Printf("failed to refresh giveaway cache for restaurant %d: %v", restaurantID, cacheErr)
			}
		}
		return giveaways
	}

	log.Printf("failed to load giveaways for restaurant %d: %v", restaurantID, err)
	if cache.Store != nil {
		if cached, cacheErr := cache.Store.GetGiveaways(ctx, restaurantID); cacheErr == nil {
			return cached
		}
	}
	return nil
}

func refreshGiveawayCache(ctx context.Context, restaurantID uint) {
	if cache.Store == nil {
		return
	}
	var giveaways []model.Giveaway
	if err := database.DB.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).Find(&giveaways).Error; err != nil {
		return
	}
	if err := cache.Store.SetGiveaways(ctx, restaurantID, giveaways); err != nil {
		log.Printf("failed to refresh giveaway cache for restaurant %d: %v", restaurantID, err)
	}
}

func AddGiveaway(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	type Request struct {
		Title    string    `json:"title" binding:"required"`
		Prize    string    `json:"prize" binding:"required"`
		DrawDate time.Time `json:"draw_date" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Title, prize and draw date are required"})
		return
	}

	giveaway := model.Giveaway{
		RestaurantID: userID.(uint),
		Title:        req.Title,
		Prize:        req.Prize,
		DrawDate:     req.DrawDate,
		IsActive:     true,
	}
	if err := database.DB.Create(&giveaway).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to create giveaway: %v", err)})
		return
	}

	refreshGiveawayCache(c.Request.Context(), giveaway.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Giveaway added successfully",
		"data":    giveaway,
	})
}

func UpdateGiveaway(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var giveaway model.Giveaway
	if err := database.DB.First(&giveaway, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Giveaway not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch giveaway: %v", err)})
		}
		return
	}

	if giveaway.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to update this giveaway"})
		return
	}

	if giveaway.Drawn() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Giveaway has already been drawn"})
		return
	}

	type Request struct {
		Title    *string    `json:"title"`
		Prize    *string    `json:"prize"`
		DrawDate *time.Time `json:"draw_date"`
		IsActive *bool      `json:"is_active"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if req.Title != nil {
		giveaway.Title = *req.Title
	}
	if req.Prize != nil {
		giveaway.Prize = *req.Prize
	}
	if req.DrawDate != nil {
		giveaway.DrawDate = *req.DrawDate
	}
	if req.IsActive != nil {
		giveaway.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&giveaway).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update giveaway: %v", err)})
		return
	}

	refreshGiveawayCache(c.Request.Context(), giveaway.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Giveaway updated successfully",
		"data":    giveaway,
	})
}

func DeleteGiveaway(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var giveaway model.Giveaway
	if err := database.DB.First(&giveaway, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Giveaway not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch giveaway: %v", err)})
		}
		return
	}

	if giveaway.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to delete this giveaway"})
		return
	}

	if err := database.DB.Delete(&giveaway).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to delete giveaway: %v", err)})
		return
	}

	refreshGiveawayCache(c.Request.Context(), giveaway.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Giveaway deleted successfully",
		"data":    gin.H{"giveaway_id": id},
	})
}

func GetMyGiveaways(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var giveaways []model.Giveaway
	if err := database.DB.Where("restaurant_id = ?", userID.(uint)).Find(&giveaways).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to retrieve giveaways: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Giveaways retrieved successfully",
		"data":    giveaways,
	})
}

// DrawGiveaway picks a random customer among the restaurant's orders as the
// winner. A giveaway is drawn at most once: the winner fields are write-once
// and the record goes inactive permanently.
func DrawGiveaway(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var giveaway model.Giveaway
	if err := database.DB.First(&giveaway, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Giveaway not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch giveaway: %v", err)})
		}
		return
	}

	if giveaway.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to draw this giveaway"})
		return
	}

	if giveaway.Drawn() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Giveaway has already been drawn"})
		return
	}

	type entrant struct {
		CustomerName  string
		CustomerPhone string
	}
	var entrants []entrant
	err := database.DB.Model(&model.Order{}).
		Distinct("customer_name", "customer_phone").
		Where("restaurant_id = ?", giveaway.RestaurantID).
		Find(&entrants).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to load entrants: %v", err)})
		return
	}
	if len(entrants) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No customers to draw from"})
		return
	}

	winner := entrants[rand.Intn(len(entrants))]
	now := time.Now()
	giveaway.WinnerName = winner.CustomerName
	giveaway.WinnerPhone = winner.CustomerPhone
	giveaway.DrawnAt = &now
	giveaway.IsActive = false

	if err := database.DB.Save(&giveaway).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to save draw result: %v", err)})
		return
	}

	refreshGiveawayCache(c.Request.Context(), giveaway.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Giveaway drawn successfully",
		"data":    giveaway,
	})
}
