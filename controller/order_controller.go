package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cantacomigo/zapmenu/cart"
	"github.com/cantacomigo/zapmenu/checkout"
	"github.com/cantacomigo/zapmenu/database"
	"github.com/cantacomigo/zapmenu/message"
	"github.com/cantacomigo/zapmenu/model"
)

type checkoutLine struct {
	ItemID      uint   `json:"item_id"`
	PromotionID uint   `json:"promotion_id"`
	Quantity    int    `json:"quantity"`
	AddonIDs    []uint `json:"addon_ids"`
}

type checkoutRequest struct {
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerAddress string         `json:"customer_address"`
	PaymentMethod   string         `json:"payment_method"`
	ChangeFor       *float64       `json:"change_for"`
	ScheduledTime   *time.Time     `json:"scheduled_time"`
	Items           []checkoutLine `json:"items"`
}

// Checkout places an order against the storefront identified by slug. The
// cart is rebuilt server-side from the submitted lines so merging and
// totals always follow the catalog, then handed to the checkout gate. The
// response carries the order and the merchant deep link; opening the link
// is the client's job, and returning the URL doubles as the copy fallback
// when a popup is blocked.
func Checkout(c *gin.Context) {
	restaurant, ok := activeRestaurantBySlug(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	basket := cart.New()
	for _, line := range req.Items {
		if line.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Line quantity must be at least 1"})
			return
		}

		switch {
		case line.ItemID != 0:
			var item model.MenuItem
			err := database.DB.Preload("Addons").
				Where("id = ? AND restaurant_id = ?", line.ItemID, restaurant.ID).
				First(&item).Error
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Item %d not found", line.ItemID)})
				return
			}
			if !item.Available {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Item %q is not available", item.Name)})
				return
			}
			selected, err := selectAddons(item, line.AddonIDs)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
				return
			}
			for i := 0; i < line.Quantity; i++ {
				basket.AddItem(item, selected)
			}

		case line.PromotionID != 0:
			var promotion model.Promotion
			err := database.DB.
				Where("id = ? AND restaurant_id = ? AND is_active = ?", line.PromotionID, restaurant.ID, true).
				First(&promotion).Error
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Promotion %d not found", line.PromotionID)})
				return
			}
			for i := 0; i < line.Quantity; i++ {
				basket.AddPromotion(promotion)
			}

		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Each line needs an item_id or a promotion_id"})
			return
		}
	}

	gate := checkout.NewGate(database.NewOrderStore(database.DB))
	order, err := gate.Submit(c.Request.Context(), restaurant, basket, checkout.Input{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		ChangeFor:       req.ChangeFor,
		ScheduledTime:   req.ScheduledTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrBelowMinOrder),
			errors.Is(err, checkout.ErrMissingCustomer),
			errors.Is(err, checkout.ErrInvalidPayment):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, checkout.ErrStoreClosed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to place order: %v", err)})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Order placed successfully",
		"data":          order,
		"whatsapp_link": message.OrderLink(restaurant, *order),
	})
}

// selectAddons keeps the selection a duplicate-free subset of the item's
// attached addons.
func selectAddons(item model.MenuItem, addonIDs []uint) ([]model.Addon, error) {
	if len(addonIDs) == 0 {
		return nil, nil
	}
	attached := make(map[uint]model.Addon, len(item.Addons))
	for _, addon := range item.Addons {
		attached[addon.ID] = addon
	}
	seen := make(map[uint]bool, len(addonIDs))
	selected := make([]model.Addon, 0, len(addonIDs))
	for _, id := range addonIDs {
		if seen[id] {
			return nil, fmt.Errorf("addon %d selected more than once", id)
		}
		seen[id] = true
		addon, ok := attached[id]
		if !ok {
			return nil, fmt.Errorf("addon %d is not attached to item %q", id, item.Name)
		}
		if !addon.Available {
			return nil, fmt.Errorf("addon %q is not available", addon.Name)
		}
		selected = append(selected, addon)
	}
	return selected, nil
}

func GetMyOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	query := database.DB.Preload("Items.Addons").
		Where("restaurant_id = ?", userID.(uint)).
		Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch orders: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// managerOrder loads an order scoped to the authenticated restaurant.
func managerOrder(c *gin.Context) (model.Order, model.Restaurant, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return model.Order{}, model.Restaurant{}, false
	}

	var order model.Order
	err := database.DB.Preload("Items.Addons").
		Where("id = ? AND restaurant_id = ?", c.Param("id"), userID.(uint)).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to fetch order: %v", err)})
		}
		return model.Order{}, model.Restaurant{}, false
	}

	var restaurant model.Restaurant
	if err := database.DB.First(&restaurant, order.RestaurantID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch restaurant"})
		return model.Order{}, model.Restaurant{}, false
	}

	return order, restaurant, true
}

// UpdateOrderStatus applies a manager-triggered transition and returns the
// paired customer notification link. The status write and the message send
// are not atomic: the link may never be opened and the status still stands.
func UpdateOrderStatus(c *gin.Context) {
	order, restaurant, ok := managerOrder(c)
	if !ok {
		return
	}

	type Request struct {
		Status string `json:"status" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "status is required"})
		return
	}

	target := model.OrderStatus(req.Status)
	if !model.CanTransition(order.Status, target) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Cannot transition order from %s to %s", order.Status, target),
		})
		return
	}

	order.Status = target
	if err := database.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Failed to update order: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Order status updated",
		"data":          order,
		"whatsapp_link": message.StatusLink(restaurant, order, target),
	})
}

// ConfirmOrderReceipt returns the informational "order received" message
// link without touching the order status. Only meaningful while pending.
func ConfirmOrderReceipt(c *gin.Context) {
	order, restaurant, ok := managerOrder(c)
	if !ok {
		return
	}

	if order.Status != model.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Receipt confirmation only applies to pending orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Receipt confirmation ready",
		"data":          order,
		"whatsapp_link": message.ReceiptConfirmationLink(restaurant, order),
	})
}

// GetOrderReceipt renders the printable fixed-width ticket as plain text.
func GetOrderReceipt(c *gin.Context) {
	order, restaurant, ok := managerOrder(c)
	if !ok {
		return
	}

	c.String(http.StatusOK, message.Receipt(restaurant, order))
}
