package handlers

import (
	"net/http"
	"strings"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "order_session"
)

// Sessions resolves the shopper's order from the session header or cookie. A
// request without either starts a new session and is told its id.
type Sessions struct {
	store  interfaces.ISessionStore
	maxAge int
	secure bool
}

func NewSessions(store interfaces.ISessionStore, maxAgeSeconds int, secure bool) *Sessions {
	return &Sessions{store: store, maxAge: maxAgeSeconds, secure: secure}
}

func (s *Sessions) ID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	if id, err := c.Cookie(SessionCookie); err == nil && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id)
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, s.maxAge, "/", "", s.secure, true)
	return id
}

func (s *Sessions) Load(c *gin.Context) (*entities.OrderContext, error) {
	id := s.ID(c)
	c.Header(SessionHeader, id)
	return s.store.Load(c.Request.Context(), id)
}

// Lookup loads an existing order by session id without starting a new session.
// An order with nothing in its cart is reported as absent.
func (s *Sessions) Lookup(c *gin.Context, id string) (*entities.OrderContext, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	order, err := s.store.Load(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.Cart.Empty() {
		return nil, nil
	}
	return order, nil
}

func (s *Sessions) Save(c *gin.Context, order *entities.OrderContext) error {
	return s.store.Save(c.Request.Context(), order)
}
