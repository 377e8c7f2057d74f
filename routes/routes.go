package routes

import (
	"github.com/savoraddis/cafe-backend/controllers"
	"github.com/savoraddis/cafe-backend/middleware"
	"github.com/savoraddis/cafe-backend/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every storefront and admin endpoint.
func RegisterRoutes(
	r *gin.Engine,
	cart *controllers.CartController,
	checkout *controllers.CheckoutController,
	menu *controllers.MenuController,
	order *controllers.OrderController,
	payment *controllers.PaymentController,
	admin *controllers.AdminController,
	auth *services.AuthService,
) {
	api := r.Group("/api")

	// Public storefront
	api.GET("/menu", menu.ListMenus)
	api.POST("/admin/login", admin.Login)

	// Gateway callback; the gateway has no session header
	api.POST("/payment/callback", payment.Callback)
	api.GET("/payment/verify", payment.VerifyRedirect)

	// Session-scoped cart and checkout
	session := api.Group("")
	session.Use(middleware.SessionMiddleware())
	{
		session.GET("/cart", cart.GetCart)
		session.POST("/cart/items", cart.AddItem)
		session.PATCH("/cart/items/:item_id", cart.ChangeQuantity)
		session.DELETE("/cart/items/:item_id", cart.RemoveLine)
		session.DELETE("/cart", cart.ClearCart)
		session.POST("/checkout", checkout.StartCheckout)
		session.DELETE("/checkout", checkout.AbandonCheckout)
	}

	// Admin console
	adminRoutes := api.Group("")
	adminRoutes.Use(middleware.AdminAuthMiddleware(auth))
	{
		adminRoutes.POST("/menu", menu.AddItem)
		adminRoutes.PUT("/menu/:id", menu.UpdateItem)
		adminRoutes.DELETE("/menu/:id", menu.DeleteItem)
		adminRoutes.PUT("/cafes/:name/settings", menu.UpdateCafeSettings)

		adminRoutes.GET("/orders", order.GetOrders)
		adminRoutes.GET("/orders/:id", order.GetOrderByID)
		adminRoutes.PUT("/orders/:id/status", order.UpdateStatus)
		adminRoutes.PUT("/orders/:id/delivered", order.MarkDelivered)
		adminRoutes.DELETE("/orders/:id", order.DeleteOrder)
	}
}
