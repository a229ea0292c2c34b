package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cantacomigo/zapmenu/database"
	"github.com/cantacomigo/zapmenu/model"
)

func AddAddon(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or missing price"})
		return
	}

	addon := model.Addon{
		RestaurantID: userID.(uint),
		Name:         c.PostForm("name"),
		Price:        price,
		Available:    true,
	}
	if addon.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Addon name is required"})
		return
	}

	if err := database.DB.Create(&addon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to create addon: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Addon added successfully",
		"data":    addon,
	})
}

func UpdateAddon(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var addon model.Addon
	if err := database.DB.First(&addon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Addon not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch addon: %v", err)})
		}
		return
	}

	if addon.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to update this addon"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		addon.Name = name
	}
	if price := c.PostForm("price"); price != "" {
		priceFloat, err := strconv.ParseFloat(price, 64)
		if err != nil || priceFloat < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or negative price"})
			return
		}
		addon.Price = priceFloat
	}
	if available, set := c.GetPostForm("available"); set {
		addon.Available = available == "true"
	}

	if err := database.DB.Save(&addon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update addon: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Addon updated successfully",
		"data":    addon,
	})
}

func DeleteAddon(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var addon model.Addon
	if err := database.DB.First(&addon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Addon not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch addon: %v", err)})
		}
		return
	}

	if addon.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to delete this addon"})
		return
	}

	if err := database.DB.Select(clause.Associations).Delete(&addon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to delete addon: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Addon deleted successfully",
		"data":    gin.H{"addon_id": id},
	})
}

func GetMyAddons(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var addons []model.Addon
	if err := database.DB.Where("restaurant_id = ?", userID.(uint)).Find(&addons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to retrieve addons: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Addons retrieved successfully",
		"data":    addons,
	})
}

// AttachAddon links an addon to a menu item; DetachAddon removes the link.
func AttachAddon(c *gin.Context) {
	manageItemAddonLink(c, true)
}

func DetachAddon(c *gin.Context) {
	manageItemAddonLink(c, false)
}

func manageItemAddonLink(c *gin.Context, attach bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var item model.MenuItem
	if err := database.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), userID.(uint)).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		return
	}

	var addon model.Addon
	if err := database.DB.Where("id = ? AND restaurant_id = ?", c.Param("addon_id"), userID.(uint)).First(&addon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Addon not found"})
		return
	}

	assoc := database.DB.Model(&item).Association("Addons")
	var err error
	var message string
	if attach {
		err = assoc.Append(&addon)
		message = "Addon attached successfully"
	} else {
		err = assoc.Delete(&addon)
		message = "Addon detached successfully"
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update item addons: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    gin.H{"item_id": item.ID, "addon_id": addon.ID},
	})
}
