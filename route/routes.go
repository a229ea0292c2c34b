package route

import (
	"github.com/gin-gonic/gin"

	"github.com/cantacomigo/zapmenu/auth"
	"github.com/cantacomigo/zapmenu/controller"
	"github.com/cantacomigo/zapmenu/utils"
)

func StorefrontRoutes(router *gin.Engine) {
	// Public storefront, keyed by the restaurant's slug.
	router.GET("/menu/:slug", controller.GetMenu)
	router.GET("/menu/:slug/status", controller.GetMenuStatus)
	router.GET("/items/:id", controller.GetItemByID)
	router.POST("/menu/:slug/checkout", controller.Checkout)

	// Customer accounts.
	router.POST("/customer/register", auth.RegisterCustomer)
	router.POST("/customer/login", auth.LoginCustomer)

	// Manager auth.
	router.POST("/manager/auth/login", controller.LoginManager)
	router.POST("/manager/refresh-token", controller.RefreshTokenFunc)

	managerGroup := router.Group("/manager")
	managerGroup.Use(utils.RoleMiddleware("manager"))
	{
		managerGroup.GET("/restaurant", controller.GetMyRestaurant)
		managerGroup.PUT("/restaurant", controller.UpdateMyRestaurant)

		managerGroup.GET("/categories", controller.GetMyCategories)
		managerGroup.POST("/categories", controller.AddCategory)
		managerGroup.PUT("/categories/:id", controller.UpdateCategory)
		managerGroup.DELETE("/categories/:id", controller.DeleteCategory)

		managerGroup.GET("/items", controller.GetMyItems)
		managerGroup.POST("/items", controller.AddItem)
		managerGroup.POST("/items/bulk", controller.BulkAddItems)
		managerGroup.PUT("/items/:id", controller.UpdateItem)
		managerGroup.PATCH("/items/:id/availability", controller.SetItemAvailability)
		managerGroup.DELETE("/items/:id", controller.DeleteItem)
		managerGroup.POST("/items/:id/addons/:addon_id", controller.AttachAddon)
		managerGroup.DELETE("/items/:id/addons/:addon_id", controller.DetachAddon)

		managerGroup.GET("/addons", controller.GetMyAddons)
		managerGroup.POST("/addons", controller.AddAddon)
		managerGroup.PUT("/addons/:id", controller.UpdateAddon)
		managerGroup.DELETE("/addons/:id", controller.DeleteAddon)

		managerGroup.GET("/promotions", controller.GetMyPromotions)
		managerGroup.POST("/promotions", controller.AddPromotion)
		managerGroup.PUT("/promotions/:id", controller.UpdatePromotion)
		managerGroup.PATCH("/promotions/:id/toggle", controller.TogglePromotion)
		managerGroup.DELETE("/promotions/:id", controller.DeletePromotion)

		managerGroup.GET("/giveaways", controller.GetMyGiveaways)
		managerGroup.POST("/giveaways", controller.AddGiveaway)
		managerGroup.PUT("/giveaways/:id", controller.UpdateGiveaway)
		managerGroup.POST("/giveaways/:id/draw", controller.DrawGiveaway)
		managerGroup.DELETE("/giveaways/:id", controller.DeleteGiveaway)

		managerGroup.GET("/orders", controller.GetMyOrders)
		managerGroup.PATCH("/orders/:id/status", controller.UpdateOrderStatus)
		managerGroup.POST("/orders/:id/confirm-receipt", controller.ConfirmOrderReceipt)
		managerGroup.GET("/orders/:id/receipt", controller.GetOrderReceipt)
	}

	// Platform back office.
	router.POST("/admin/auth/login", auth.LoginOperator)

	adminGroup := router.Group("/admin")
	adminGroup.Use(utils.RoleMiddleware("admin"))
	{
		adminGroup.GET("/restaurants", controller.ListRestaurants)
		adminGroup.POST("/restaurants", controller.CreateRestaurant)
		adminGroup.PATCH("/restaurants/:id/active", controller.SetRestaurantActive)
	}
}
