package session

import (
	"context"
	"encoding/json"
	"sync"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"
)

// MemoryStore is a process-local store for development and tests. Orders are
// stored encoded so callers never share a pointer.
type MemoryStore struct {
	mu     sync.Mutex
	orders map[string][]byte
}

var _ interfaces.ISessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: map[string][]byte{}}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*entities.OrderContext, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	s.mu.Lock()
	raw, ok := s.orders[sessionID]
	s.mu.Unlock()
	if !ok {
		return entities.NewOrderContext(sessionID), nil
	}
	var order entities.OrderContext
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, err
	}
	if order.Data == nil {
		order.Data = map[string]string{}
	}
	return &order, nil
}

func (s *MemoryStore) Save(_ context.Context, order *entities.OrderContext) error {
	if order == nil || order.SessionID == "" {
		return ErrEmptySessionID
	}
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.orders[order.SessionID] = raw
	s.mu.Unlock()
	return nil
}
