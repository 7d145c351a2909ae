package handlers

import (
	"net/http"

	request "order_ledger/internal/adapter/http/dto/request"
	response "order_ledger/internal/adapter/http/dto/response"
	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventHandler ingests order events from gateway callbacks and back-office tools.
type EventHandler struct {
	ledger   usecase.IOrderEventLedger
	sessions *Sessions
	logger   *zap.Logger
}

func NewEventHandler(ledger usecase.IOrderEventLedger, sessions *Sessions, logger *zap.Logger) *EventHandler {
	return &EventHandler{ledger: ledger, sessions: sessions, logger: logger.Named("event.handler")}
}

// AddEvent godoc
// @Summary      Add an order event
// @Description  purchase_id may be null for auth, sale, authed and auth-fail events.
// @Description  An orphan authed callback settles the order named by session_id or X-Session-ID.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header  string  false  "order session"
// @Param        event  body  request.EventRequest  true  "order event"
// @Success      201  {object}  response.EventResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /events [post]
func (h *EventHandler) AddEvent(c *gin.Context) {
	var payload request.EventRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	t, ok := entities.ParseEventType(payload.Type)
	if !ok {
		writeError(c, mapOrderError(usecase.ErrInvalidEventType))
		return
	}

	order, err := h.callbackOrder(c, payload, t)
	if err != nil {
		h.logger.Error("session load failed", zap.Error(err))
		writeError(c, errSessionUnavailable)
		return
	}

	e, err := h.ledger.Append(c.Request.Context(), order, payload.Parent(), t, payload.Payload)
	if err != nil {
		h.logger.Warn("event rejected", zap.String("type", string(t)), zap.String("purchase_id", payload.Parent()), zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}
	if order != nil {
		h.logger.Info("order purchased by callback", zap.String("session_id", order.SessionID), zap.String("purchase_id", e.PurchaseID))
		order.Reset()
		if err := h.sessions.Save(c, order); err != nil {
			h.logger.Error("session save failed", zap.String("session_id", order.SessionID), zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, response.FromEvent(e))
}

// callbackOrder finds the shopper's order for an orphan authed event. Other
// events never materialize a purchase and get no order.
func (h *EventHandler) callbackOrder(c *gin.Context, payload request.EventRequest, t entities.EventType) (*entities.OrderContext, error) {
	if h.sessions == nil || t != entities.EventAuthed || payload.Parent() != "" {
		return nil, nil
	}
	id := payload.SessionID
	if id == "" {
		id = c.GetHeader(SessionHeader)
	}
	return h.sessions.Lookup(c, id)
}
