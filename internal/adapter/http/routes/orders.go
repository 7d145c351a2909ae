package routes

import (
	"order_ledger/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathGateways  = "/gateways"
	PathOrders    = "/orders/current"
	PathEvents    = "/events"
	PathPurchases = "/purchases"
)

func addGatewayRoutes(rg *gin.RouterGroup, h *handlers.GatewayHandler) {
	rg.GET(PathGateways, h.List)
}

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("", h.GetCurrent)
		orders.PUT("/cart", h.UpdateCart)
		orders.POST("/checkout", h.Checkout)
		orders.POST("/shipmethod", h.ShipMethod)
		orders.POST("/confirm", h.Confirm)
	}
}

func addEventRoutes(rg *gin.RouterGroup, h *handlers.EventHandler) {
	rg.POST(PathEvents, h.AddEvent)
}

func addPurchaseRoutes(rg *gin.RouterGroup, h *handlers.PurchaseHandler, admin gin.HandlerFunc) {
	purchases := rg.Group(PathPurchases)
	{
		purchases.GET("/:id", h.GetPurchase)
		purchases.GET("/:id/events", h.ListEvents)

		// Money-moving commands need an admin token.
		commands := purchases.Group("/:id", admin)
		commands.POST("/capture", h.Capture)
		commands.POST("/refund", h.Refund)
		commands.POST("/void", h.Void)
	}
}
