package handlers

import (
	"net/http"

	request "order_ledger/internal/adapter/http/dto/request"
	response "order_ledger/internal/adapter/http/dto/response"
	"order_ledger/internal/adapter/http/middleware"
	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PurchaseHandler struct {
	usecase usecase.ITransactionUseCase
	logger  *zap.Logger
}

func NewPurchaseHandler(uc usecase.ITransactionUseCase, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{usecase: uc, logger: logger.Named("purchase.handler")}
}

// GetPurchase godoc
// @Summary      Purchase with its running balance
// @Tags         purchases
// @Produce      json
// @Param        id   path  string  true  "purchase id"
// @Success      200  {object}  response.PurchaseResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	summary, err := h.usecase.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	summary.Events = nil
	c.JSON(http.StatusOK, response.FromPurchaseSummary(summary))
}

// ListEvents godoc
// @Summary      Events of a purchase, oldest first
// @Tags         purchases
// @Produce      json
// @Param        id   path  string  true  "purchase id"
// @Success      200  {array}   response.EventResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /purchases/{id}/events [get]
func (h *PurchaseHandler) ListEvents(c *gin.Context) {
	summary, err := h.usecase.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEvents(summary.Events))
}

// Capture godoc
// @Summary      Capture an authorized purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id       path  string                  true  "purchase id"
// @Param        capture  body  request.CaptureRequest  true  "amount"
// @Success      200  {object}  response.EventResponse
// @Failure      409  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /purchases/{id}/capture [post]
func (h *PurchaseHandler) Capture(c *gin.Context) {
	var payload request.CaptureRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	amount, err := request.ParseAmount(payload.Amount)
	if err != nil {
		writeError(c, mapOrderError(usecase.ErrInvalidAmount))
		return
	}
	e, err := h.usecase.Capture(c.Request.Context(), c.Param("id"), amount, middleware.User(c))
	h.commandResult(c, "capture", e, err)
}

// Refund godoc
// @Summary      Refund a charged purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id      path  string                 true  "purchase id"
// @Param        refund  body  request.RefundRequest  true  "amount and reason code"
// @Success      200  {object}  response.EventResponse
// @Failure      422  {object}  pkg.HTTPError
// @Router       /purchases/{id}/refund [post]
func (h *PurchaseHandler) Refund(c *gin.Context) {
	var payload request.RefundRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	amount, err := request.ParseAmount(payload.Amount)
	if err != nil {
		writeError(c, mapOrderError(usecase.ErrInvalidAmount))
		return
	}
	e, err := h.usecase.Refund(c.Request.Context(), c.Param("id"), amount, middleware.User(c), payload.Reason)
	h.commandResult(c, "refund", e, err)
}

// Void godoc
// @Summary      Void an authorization
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string               true   "purchase id"
// @Param        void  body  request.VoidRequest  false  "reason code"
// @Success      200  {object}  response.EventResponse
// @Router       /purchases/{id}/void [post]
func (h *PurchaseHandler) Void(c *gin.Context) {
	var payload request.VoidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			writeError(c, errInvalidRequest)
			return
		}
	}
	e, err := h.usecase.Void(c.Request.Context(), c.Param("id"), middleware.User(c), payload.Reason)
	h.commandResult(c, "void", e, err)
}

func (h *PurchaseHandler) commandResult(c *gin.Context, command string, e entities.OrderEvent, err error) {
	if err != nil {
		h.logger.Warn("command failed", zap.String("command", command), zap.String("purchase_id", c.Param("id")), zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}
	h.logger.Info("command done", zap.String("command", command), zap.String("purchase_id", c.Param("id")), zap.String("event", string(e.Type)))
	c.JSON(http.StatusOK, response.FromEvent(e))
}
