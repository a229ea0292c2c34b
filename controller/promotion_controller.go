package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cantacomigo/zapmenu/cache"
	"github.com/cantacomigo/zapmenu/database"
	"github.com/cantacomigo/zapmenu/model"
)

// loadActivePromotions reads a restaurant's active promotions, refreshing
// the cache on success and serving from it when the database read failed.
// When both fail the result is an empty list, not an error; the menu must
// still render.
func loadActivePromotions(ctx context.Context, restaurantID uint) []model.Promotion {
	var promotions []model.Promotion
	err := database.DB.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).Find(&promotions).Error
	if err == nil {
		if cache.Store != nil {
			if cacheErr := cache.Store.SetPromotions(ctx, restaurantID, promotions); cacheErr != nil {
				log.Printf("failed to refresh promotion cache for restaurant %d: %v", restaurantID, cacheErr)
			}
		}
		return promotions
	}

	log.Printf("failed to load promotions for restaurant %d: %v", restaurantID, err)
	if cache.Store != nil {
		if cached, cacheErr := cache.Store.GetPromotions(ctx, restaurantID); cacheErr == nil {
			return cached
		}
	}
	return nil
}

// refreshPromotionCache rewrites the cached active-promotion list after a
// mutation. Best effort only.
func refreshPromotionCache(ctx context.Context, restaurantID uint) {
	if cache.Store == nil {
		return
	}
	var promotions []model.Promotion
	if err := database.DB.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).Find(&promotions).Error; err != nil {
		return
	}
	if err := cache.Store.SetPromotions(ctx, restaurantID, promotions); err != nil {
		log.Printf("failed to refresh promotion cache for restaurant %d: %v", restaurantID, err)
	}
}

func AddPromotion(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	discounted, err := strconv.ParseFloat(c.PostForm("discounted_price"), 64)
	if err != nil || discounted < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or missing discounted price"})
		return
	}

	promotion := model.Promotion{
		RestaurantID:    userID.(uint),
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		DiscountedPrice: discounted,
		IsActive:        true,
	}
	if promotion.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Promotion title is required"})
		return
	}

	if original := c.PostForm("original_price"); original != "" {
		originalFloat, err := strconv.ParseFloat(original, 64)
		if err != nil || originalFloat < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid original price"})
			return
		}
		promotion.OriginalPrice = &originalFloat
	}

	image, err := saveImageUpload(c, "image", "promotion", promotion.RestaurantID, "")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	promotion.Image = image

	if err := database.DB.Create(&promotion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to create promotion: %v", err)})
		return
	}

	refreshPromotionCache(c.Request.Context(), promotion.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promotion added successfully",
		"data":    promotion,
	})
}

func UpdatePromotion(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var promotion model.Promotion
	if err := database.DB.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Promotion not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch promotion: %v", err)})
		}
		return
	}

	if promotion.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to update this promotion"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		promotion.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		promotion.Description = description
	}
	if discounted := c.PostForm("discounted_price"); discounted != "" {
		discountedFloat, err := strconv.ParseFloat(discounted, 64)
		if err != nil || discountedFloat < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid discounted price"})
			return
		}
		promotion.DiscountedPrice = discountedFloat
	}
	if original, set := c.GetPostForm("original_price"); set {
		if original == "" {
			promotion.OriginalPrice = nil
		} else {
			originalFloat, err := strconv.ParseFloat(original, 64)
			if err != nil || originalFloat < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid original price"})
				return
			}
			promotion.OriginalPrice = &originalFloat
		}
	}

	image, err := saveImageUpload(c, "image", "promotion", promotion.RestaurantID, promotion.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if image != "" {
		promotion.Image = image
	}

	if err := database.DB.Save(&promotion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update promotion: %v", err)})
		return
	}

	refreshPromotionCache(c.Request.Context(), promotion.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promotion updated successfully",
		"data":    promotion,
	})
}

// TogglePromotion flips a promotion's active flag.
func TogglePromotion(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var promotion model.Promotion
	if err := database.DB.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Promotion not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch promotion: %v", err)})
		}
		return
	}

	if promotion.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to update this promotion"})
		return
	}

	promotion.IsActive = !promotion.IsActive
	if err := database.DB.Save(&promotion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update promotion: %v", err)})
		return
	}

	refreshPromotionCache(c.Request.Context(), promotion.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promotion toggled successfully",
		"data":    promotion,
	})
}

func DeletePromotion(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var promotion model.Promotion
	if err := database.DB.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Promotion not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch promotion: %v", err)})
		}
		return
	}

	if promotion.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to delete this promotion"})
		return
	}

	if err := removeImage(promotion.Image); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to delete image: %v", err)})
		return
	}

	if err := database.DB.Delete(&promotion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to delete promotion: %v", err)})
		return
	}

	refreshPromotionCache(c.Request.Context(), promotion.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promotion deleted successfully",
		"data":    gin.H{"promotion_id": id},
	})
}

func GetMyPromotions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var promotions []model.Promotion
	if err := database.DB.Where("restaurant_id = ?", userID.(uint)).Find(&promotions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to retrieve promotions: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promotions retrieved successfully",
		"data":    promotions,
	})
}
