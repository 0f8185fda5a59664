package routes

import (
	"tavolo/availability"
	"tavolo/cart"
	"tavolo/checkout"
	"tavolo/feed"
	"tavolo/middleware"
	"tavolo/orders"
	"tavolo/payments"
	"tavolo/ratelim"
	"tavolo/settings"

	"github.com/julienschmidt/httprouter"
)

func AddCartRoutes(router *httprouter.Router, h *cart.Handlers) {
	router.GET("/api/cart", h.GetCart)
	router.POST("/api/cart/items", h.AddItem)
	router.PUT("/api/cart/items/:lineid/quantity", h.SetQuantity)
	router.PUT("/api/cart/items/:lineid/notes", h.SetNotes)
	router.DELETE("/api/cart/items/:lineid", h.RemoveItem)
	router.DELETE("/api/cart", h.ClearCart)
}

func AddAvailabilityRoutes(router *httprouter.Router, h *availability.Handlers) {
	router.GET("/api/restaurants/:restaurantid/availability", h.GetAvailability)
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *checkout.Handlers) {
	router.POST("/api/restaurants/:restaurantid/checkout", rl.Limit(h.Submit))
}

func AddPaymentRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *payments.Handlers) {
	router.POST("/api/orders/:orderid/payment-session", rl.Limit(h.CreateSession))
	router.POST("/api/orders/:orderid/verify-payment", rl.Limit(h.VerifyPayment))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handlers) {
	router.GET("/api/restaurants/:restaurantid/orders", middleware.Authenticate(h.ListOrders))
	router.GET("/api/restaurants/:restaurantid/orders/:orderid", middleware.Authenticate(h.GetOrder))
	router.POST("/api/restaurants/:restaurantid/orders/:orderid/advance", middleware.Authenticate(h.AdvanceOrder))
	router.POST("/api/restaurants/:restaurantid/orders/:orderid/cancel", middleware.Authenticate(h.CancelOrder))
}

func AddSettingsRoutes(router *httprouter.Router, h *settings.Handlers) {
	router.GET("/api/restaurants/:restaurantid/ordering-settings", middleware.Authenticate(h.GetSettings))
	router.PUT("/api/restaurants/:restaurantid/ordering-settings", middleware.Authenticate(h.UpdateSettings))
}

func AddFeedRoutes(router *httprouter.Router, hub *feed.Hub) {
	router.GET("/ws/restaurants/:restaurantid/orders", feed.WebSocketHandler(hub))
}
