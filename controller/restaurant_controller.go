package controller

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cantacomigo/zapmenu/database"
	"github.com/cantacomigo/zapmenu/model"
	"github.com/cantacomigo/zapmenu/schedule"
	"github.com/cantacomigo/zapmenu/utils"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// LoginManager authenticates a restaurant manager. The token carries the
// restaurant id, which scopes every manager query.
func LoginManager(c *gin.Context) {
	type Request struct {
		Login    string `form:"login" json:"login" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login and password are required"})
		return
	}

	var restaurant model.Restaurant
	if err := database.DB.Where("login = ?", req.Login).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login credentials"})
		return
	}

	if !restaurant.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Restaurant is disabled"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(restaurant.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login credentials"})
		return
	}

	access, refresh, err := utils.GenerateTokens("manager", restaurant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func RefreshTokenFunc(c *gin.Context) {
	oldRefreshToken := c.PostForm("refresh_token")
	if oldRefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is required"})
		return
	}

	newAccessToken, newRefreshToken, err := utils.RefreshTokens(oldRefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}

func GetMyRestaurant(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized access"})
		return
	}

	var restaurant model.Restaurant
	if err := database.DB.First(&restaurant, userID.(uint)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Restaurant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch restaurant"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": restaurant})
}

// UpdateMyRestaurant lets a manager edit the storefront profile, including
// the opening window. Opening and closing times must be set together.
func UpdateMyRestaurant(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized access"})
		return
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unexpected error occurred"})
		}
	}()

	var restaurant model.Restaurant
	if err := tx.First(&restaurant, userID.(uint)).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Restaurant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch restaurant: " + err.Error()})
		}
		return
	}

	logo, err := saveImageUpload(c, "logo", "restaurant", restaurant.ID, restaurant.Logo)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Logo upload failed: " + err.Error()})
		return
	}
	if logo != "" {
		restaurant.Logo = logo
	}

	if name := c.PostForm("name"); name != "" {
		restaurant.Name = name
	}
	if phone := c.PostForm("phone"); phone != "" {
		restaurant.Phone = phone
	}
	if address := c.PostForm("address"); address != "" {
		restaurant.Address = address
	}

	if fee := c.PostForm("delivery_fee"); fee != "" {
		feeFloat, err := strconv.ParseFloat(fee, 64)
		if err != nil || feeFloat < 0 {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid delivery fee"})
			return
		}
		restaurant.DeliveryFee = feeFloat
	}
	if minOrder := c.PostForm("min_order_value"); minOrder != "" {
		minFloat, err := strconv.ParseFloat(minOrder, 64)
		if err != nil || minFloat < 0 {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid minimum order value"})
			return
		}
		restaurant.MinOrderValue = minFloat
	}

	opening, hasOpening := c.GetPostForm("opening_time")
	closing, hasClosing := c.GetPostForm("closing_time")
	if hasOpening || hasClosing {
		if (opening == "") != (closing == "") {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Opening and closing times must be set together"})
			return
		}
		if opening != "" && (!schedule.ValidClock(opening) || !schedule.ValidClock(closing)) {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Times must be in HH:MM format"})
			return
		}
		restaurant.OpeningTime = opening
		restaurant.ClosingTime = closing
	}

	if newPassword := c.PostForm("password"); newPassword != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to hash password: " + err.Error()})
			return
		}
		restaurant.Password = string(hashedPassword)
	}

	if err := tx.Save(&restaurant).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update restaurant: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Transaction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant updated successfully",
		"data":    restaurant,
	})
}

// CreateRestaurant provisions a new tenant (operator only).
func CreateRestaurant(c *gin.Context) {
	type Request struct {
		Slug     string `json:"slug" binding:"required"`
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Slug, login, password, name and phone are required"})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Slug must be lowercase letters, digits and hyphens"})
		return
	}

	var existing model.Restaurant
	if err := database.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Slug already in use"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to hash password"})
		return
	}

	restaurant := model.Restaurant{
		Slug:     slug,
		Login:    req.Login,
		Password: string(hashedPassword),
		Name:     req.Name,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := database.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to create restaurant: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant created successfully",
		"data":    restaurant,
	})
}

func ListRestaurants(c *gin.Context) {
	var restaurants []model.Restaurant
	if err := database.DB.Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fetched restaurants successfully",
		"data":    restaurants,
	})
}

// SetRestaurantActive soft-enables or -disables a tenant (operator only).
func SetRestaurantActive(c *gin.Context) {
	id := c.Param("id")

	type Request struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "is_active is required"})
		return
	}

	var restaurant model.Restaurant
	if err := database.DB.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Restaurant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch restaurant"})
		}
		return
	}

	restaurant.IsActive = *req.IsActive
	if err := database.DB.Save(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update restaurant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant updated successfully",
		"data":    restaurant,
	})
}
