package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "order:session:"

var ErrEmptySessionID = errors.New("empty session id")

type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps each session order as a JSON document that expires after ttl
// without activity.
type RedisStore struct {
	rdb redisCommands
	ttl time.Duration
}

var _ interfaces.ISessionStore = (*RedisStore)(nil)

func NewRedisStore(rdb redisCommands, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*entities.OrderContext, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	raw, err := s.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.NewOrderContext(sessionID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var order entities.OrderContext
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if order.Data == nil {
		order.Data = map[string]string{}
	}
	order.SessionID = sessionID
	return &order, nil
}

func (s *RedisStore) Save(ctx context.Context, order *entities.OrderContext) error {
	if order == nil || order.SessionID == "" {
		return ErrEmptySessionID
	}
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+order.SessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
