package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cantacomigo/zapmenu/database"
	"github.com/cantacomigo/zapmenu/model"
)

// parseParentID validates an optional parent category: it must belong to
// the same restaurant and be a root category, keeping nesting to one level.
func parseParentID(tx *gorm.DB, raw string, restaurantID uint) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	parentID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.New("invalid parent category ID format")
	}
	var parent model.Category
	if err := tx.Where("id = ? AND restaurant_id = ?", parentID, restaurantID).First(&parent).Error; err != nil {
		return nil, errors.New("parent category not found")
	}
	if parent.ParentID != nil {
		return nil, errors.New("categories can only be nested one level deep")
	}
	id := uint(parentID)
	return &id, nil
}

func AddCategory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var category model.Category
	category.RestaurantID = userID.(uint)
	category.Name = c.PostForm("name")
	if category.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Category name is required"})
		return
	}

	parentID, err := parseParentID(database.DB, c.PostForm("parent_id"), category.RestaurantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	category.ParentID = parentID

	image, err := saveImageUpload(c, "image", "category", category.RestaurantID, "")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	category.Image = image

	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to create category: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category added successfully",
		"data":    category,
	})
}

func UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var category model.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch category: %v", err)})
		}
		return
	}

	if category.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to update this category"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		category.Name = name
	}

	if raw, set := c.GetPostForm("parent_id"); set {
		parentID, err := parseParentID(database.DB, raw, category.RestaurantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		if parentID != nil && *parentID == category.ID {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "A category cannot be its own parent"})
			return
		}
		category.ParentID = parentID
	}

	image, err := saveImageUpload(c, "image", "category", category.RestaurantID, category.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if image != "" {
		category.Image = image
	}

	if err := database.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update category: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
		"data":    category,
	})
}

func DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var category model.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch category: %v", err)})
		}
		return
	}

	if category.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to delete this category"})
		return
	}

	if err := removeImage(category.Image); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to delete image: %v", err)})
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to delete category: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
		"data":    gin.H{"category_id": id},
	})
}

func GetMyCategories(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var categories []model.Category
	if err := database.DB.Where("restaurant_id = ?", userID.(uint)).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to retrieve categories: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}
