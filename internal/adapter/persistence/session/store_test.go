package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/go-redis/redis/v8"
)

type fakeRedis struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func exerciseStore(t *testing.T, s interfaces.ISessionStore) {
	t.Helper()
	ctx := context.Background()

	fresh, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.SessionID != "s1" || fresh.State != entities.OrderStateEmpty || fresh.Data == nil {
		t.Fatalf("expected fresh order, got %+v", fresh)
	}

	fresh.Customer.Email = "ada@example.com"
	fresh.Billing.Card = "4111111111111111"
	fresh.Billing.CVV = "123"
	fresh.Data["mp_token"] = "tok"
	if err := s.Save(ctx, fresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Customer.Email != "ada@example.com" || got.Data["mp_token"] != "tok" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got.Billing.CVV != "" {
		t.Fatalf("cvv must not survive the session store")
	}
	if got == fresh {
		t.Fatalf("expected a copy of the stored order")
	}

	if _, err := s.Load(ctx, ""); !errors.Is(err, ErrEmptySessionID) {
		t.Fatalf("expected ErrEmptySessionID, got %v", err)
	}
	if err := s.Save(ctx, &entities.OrderContext{}); !errors.Is(err, ErrEmptySessionID) {
		t.Fatalf("expected ErrEmptySessionID, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	rdb := newFakeRedis()
	exerciseStore(t, NewRedisStore(rdb, time.Hour))
	if rdb.ttl[keyPrefix+"s1"] != time.Hour {
		t.Fatalf("expected session ttl, got %v", rdb.ttl)
	}

	rdb.err = errors.New("connection refused")
	if _, err := NewRedisStore(rdb, time.Hour).Load(context.Background(), "s1"); err == nil {
		t.Fatalf("expected redis error")
	}
}
