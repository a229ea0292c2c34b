package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/cantacomigo/zapmenu/database"
	"github.com/cantacomigo/zapmenu/model"
)

// loadAddons resolves a set of addon ids, all of which must belong to the
// restaurant.
func loadAddons(tx *gorm.DB, ids []uint, restaurantID uint) ([]model.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var addons []model.Addon
	if err := tx.Where("id IN ? AND restaurant_id = ?", ids, restaurantID).Find(&addons).Error; err != nil {
		return nil, err
	}
	if len(addons) != len(ids) {
		return nil, errors.New("one or more addons not found")
	}
	return addons, nil
}

func parseAddonIDs(c *gin.Context) ([]uint, error) {
	var ids []uint
	for _, raw := range c.PostFormArray("addon_ids") {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, errors.New("invalid addon ID format")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func AddItem(c *gin.Context) {
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

	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category ID format"})
		return
	}

	var item model.MenuItem
	item.RestaurantID = userID.(uint)
	item.Price = price
	item.CategoryID = uint(categoryID)
	item.Name = c.PostForm("name")
	item.Description = c.PostForm("description")
	item.Available = true

	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Item name is required"})
		return
	}

	if rawStock := c.PostForm("stock"); rawStock != "" {
		stock, err := strconv.Atoi(rawStock)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid stock value"})
			return
		}
		item.Stock = &stock
		if stock == 0 {
			item.Available = false
		}
	}

	var category model.Category
	if err := database.DB.Where("id = ? AND restaurant_id = ?", categoryID, item.RestaurantID).First(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category or you don't have permission"})
		return
	}

	addonIDs, err := parseAddonIDs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	addons, err := loadAddons(database.DB, addonIDs, item.RestaurantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	item.Addons = addons

	image, err := saveImageUpload(c, "image", "item", item.RestaurantID, "")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	item.Image = image

	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to create item: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item added successfully",
		"data":    item,
	})
}

// BulkAddItems imports menu items from a spreadsheet. Expected columns:
// category_id, price, name, description, stock (optional).
func BulkAddItems(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unable to open Excel file"})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to parse Excel file"})
		return
	}

	rows, err := xl.GetRows("Sheet1")
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel must have at least one row of data"})
		return
	}

	var items []model.MenuItem
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}

		categoryID, err := strconv.ParseUint(row[0], 10, 32)
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(row[1], 64)
		if err != nil || price < 0 {
			continue
		}
		if row[2] == "" {
			continue
		}

		item := model.MenuItem{
			RestaurantID: userID.(uint),
			CategoryID:   uint(categoryID),
			Price:        price,
			Name:         row[2],
			Available:    true,
		}
		if len(row) > 3 {
			item.Description = row[3]
		}
		if len(row) > 4 && row[4] != "" {
			stock, err := strconv.Atoi(row[4])
			if err == nil && stock >= 0 {
				item.Stock = &stock
				if stock == 0 {
					item.Available = false
				}
			}
		}

		items = append(items, item)
	}

	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No valid rows found"})
		return
	}

	if err := database.DB.Create(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to insert items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk item upload successful",
		"count":   len(items),
	})
}

func UpdateItem(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var item model.MenuItem
	if err := database.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch item: %v", err)})
		}
		return
	}

	if item.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to update this item"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		item.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		item.Description = description
	}

	if price := c.PostForm("price"); price != "" {
		priceFloat, err := strconv.ParseFloat(price, 64)
		if err != nil || priceFloat < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or negative price"})
			return
		}
		item.Price = priceFloat
	}

	if rawStock, set := c.GetPostForm("stock"); set {
		if rawStock == "" {
			item.Stock = nil
		} else {
			stock, err := strconv.Atoi(rawStock)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid stock value"})
				return
			}
			item.Stock = &stock
			item.Available = stock > 0
		}
	}

	if categoryID := c.PostForm("category_id"); categoryID != "" {
		categoryIDUint, err := strconv.ParseUint(categoryID, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category ID format"})
			return
		}
		var category model.Category
		if err := database.DB.Where("id = ? AND restaurant_id = ?", categoryIDUint, userID.(uint)).First(&category).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category or you don't have permission"})
			return
		}
		item.CategoryID = uint(categoryIDUint)
	}

	image, err := saveImageUpload(c, "image", "item", item.RestaurantID, item.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if image != "" {
		item.Image = image
	}

	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update item: %v", err)})
		return
	}

	if _, set := c.GetPostForm("addon_ids"); set {
		addonIDs, err := parseAddonIDs(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		addons, err := loadAddons(database.DB, addonIDs, item.RestaurantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		if err := database.DB.Model(&item).Association("Addons").Replace(addons); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update addons: %v", err)})
			return
		}
		item.Addons = addons
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item updated successfully",
		"data":    item,
	})
}

// SetItemAvailability toggles whether an item can be ordered, independent
// of its stock counter.
func SetItemAvailability(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	type Request struct {
		Available *bool `json:"available" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "available is required"})
		return
	}

	var item model.MenuItem
	if err := database.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch item: %v", err)})
		}
		return
	}

	if item.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to update this item"})
		return
	}

	item.Available = *req.Available
	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update item: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item availability updated",
		"data":    item,
	})
}

func DeleteItem(c *gin.Context) {
	id := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var item model.MenuItem
	if err := database.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch item: %v", err)})
		}
		return
	}

	if item.RestaurantID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have permission to delete this item"})
		return
	}

	if err := removeImage(item.Image); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to delete image: %v", err)})
		return
	}

	if err := database.DB.Select("Addons").Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to delete item: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item deleted successfully",
		"data":    gin.H{"item_id": id},
	})
}

func GetMyItems(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	searchQuery := c.Query("search")

	var items []model.MenuItem
	query := database.DB.Preload("Addons").Where("restaurant_id = ?", userID.(uint))

	if searchQuery != "" {
		query = query.Where("name ILIKE ?", "%"+searchQuery+"%")
	}

	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch items: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Items retrieved successfully",
		"data":    items,
	})
}

func GetItemByID(c *gin.Context) {
	itemID := c.Param("id")

	itemIDUint, err := strconv.ParseUint(itemID, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid item ID format"})
		return
	}

	var item model.MenuItem
	if err := database.DB.Preload("Addons").First(&item, uint(itemIDUint)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch item: %v", err)})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item retrieved successfully",
		"data":    item,
	})
}
