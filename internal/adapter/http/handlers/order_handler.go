package handlers

import (
	"net/http"

	request "order_ledger/internal/adapter/http/dto/request"
	response "order_ledger/internal/adapter/http/dto/response"
	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase"
	"order_ledger/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errSessionUnavailable = pkg.NewDomainErrorSimple("SESSION_UNAVAILABLE", "The order session could not be loaded", http.StatusServiceUnavailable)
	errInvalidCart        = pkg.NewDomainErrorSimple("INVALID_CART", "Invalid cart payload", http.StatusBadRequest)
)

// OrderHandler exposes the shopper's current order.
type OrderHandler struct {
	usecase  usecase.IOrderUseCase
	sessions *Sessions
	logger   *zap.Logger
}

func NewOrderHandler(uc usecase.IOrderUseCase, sessions *Sessions, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{usecase: uc, sessions: sessions, logger: logger.Named("order.handler")}
}

// GetCurrent godoc
// @Summary      Current order
// @Tags         orders
// @Produce      json
// @Param        X-Session-ID  header  string  false  "order session"
// @Success      200  {object}  response.OrderResponse
// @Router       /orders/current [get]
func (h *OrderHandler) GetCurrent(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// UpdateCart godoc
// @Summary      Replace the cart of the current order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        cart  body  request.CartRequest  true  "cart contents"
// @Success      200  {object}  response.OrderResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /orders/current/cart [put]
func (h *OrderHandler) UpdateCart(c *gin.Context) {
	var payload request.CartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidCart)
		return
	}
	cart, err := payload.ToCart()
	if err != nil {
		writeError(c, pkg.NewDomainError(errInvalidCart.Code, err.Error(), err, http.StatusBadRequest))
		return
	}
	order, ok := h.load(c)
	if !ok {
		return
	}
	switch order.State {
	case entities.OrderStateProcessing, entities.OrderStateAuthorizing, entities.OrderStateCapturing:
		writeError(c, mapOrderError(usecase.ErrInvalidTransition))
		return
	}
	order.Cart = cart
	if cart.Empty() {
		order.State = entities.OrderStateEmpty
	} else {
		order.State = entities.OrderStateCheckout
	}
	order.Confirm, order.Confirmed = false, false
	if !h.save(c, order) {
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// Checkout godoc
// @Summary      Submit the checkout form
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        form  body  request.CheckoutRequest  true  "checkout form"
// @Success      200  {object}  response.CheckoutResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /orders/current/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var payload request.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	order, ok := h.load(c)
	if !ok {
		return
	}
	res, err := h.usecase.Checkout(c.Request.Context(), order, payload.ToForm(c.ClientIP()))
	h.respond(c, order, res, err)
}

// ShipMethod godoc
// @Summary      Change the shipping method
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        method  body  request.ShipMethodRequest  true  "shipping method"
// @Success      200  {object}  response.CheckoutResponse
// @Router       /orders/current/shipmethod [post]
func (h *OrderHandler) ShipMethod(c *gin.Context) {
	var payload request.ShipMethodRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	order, ok := h.load(c)
	if !ok {
		return
	}
	res, err := h.usecase.ShipMethod(c.Request.Context(), order, payload.Method)
	h.respond(c, order, res, err)
}

// Confirm godoc
// @Summary      Confirm the order and process payment
// @Tags         orders
// @Produce      json
// @Success      200  {object}  response.CheckoutResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /orders/current/confirm [post]
func (h *OrderHandler) Confirm(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	res, err := h.usecase.Confirmed(c.Request.Context(), order)
	h.respond(c, order, res, err)
}

// respond persists the order even when the step failed, so failure state and
// reasons survive to the next request.
func (h *OrderHandler) respond(c *gin.Context, order *entities.OrderContext, res usecase.CheckoutResult, err error) {
	if !h.save(c, order) {
		return
	}
	if err != nil {
		h.logger.Warn("order step failed", zap.String("session_id", order.SessionID), zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckout(res, order))
}

func (h *OrderHandler) load(c *gin.Context) (*entities.OrderContext, bool) {
	order, err := h.sessions.Load(c)
	if err != nil {
		h.logger.Error("session load failed", zap.Error(err))
		writeError(c, errSessionUnavailable)
		return nil, false
	}
	return order, true
}

func (h *OrderHandler) save(c *gin.Context, order *entities.OrderContext) bool {
	if err := h.sessions.Save(c, order); err != nil {
		h.logger.Error("session save failed", zap.String("session_id", order.SessionID), zap.Error(err))
		writeError(c, errSessionUnavailable)
		return false
	}
	return true
}
