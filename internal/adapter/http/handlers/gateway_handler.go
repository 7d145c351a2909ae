package handlers

import (
	"net/http"

	response "order_ledger/internal/adapter/http/dto/response"
	"order_ledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

type GatewayHandler struct {
	registry usecase.IGatewayRegistry
}

func NewGatewayHandler(registry usecase.IGatewayRegistry) *GatewayHandler {
	return &GatewayHandler{registry: registry}
}

// List godoc
// @Summary      Activated gateways and the payment options they offer
// @Tags         gateways
// @Produce      json
// @Success      200  {object}  response.GatewaysResponse
// @Router       /gateways [get]
func (h *GatewayHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, response.GatewaysResponse{
		Activated:  h.registry.Activated(),
		PayOptions: h.registry.PayOptions(),
		PayCards:   h.registry.PayCards(),
		Secure:     h.registry.RequiresSecureTransport(),
	})
}

// Ping godoc
// @Summary  Health check
// @Tags     health
// @Success  200
// @Router   /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
